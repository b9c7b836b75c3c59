package pbxproj

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestSourceFilesForTarget_GroupsAndSourceRoot(t *testing.T) {
	p := openFixture(t, demoProject)
	base := p.BaseDir()

	got, ok := p.SourceFilesForTarget("Demo")
	if !ok {
		t.Fatal("SourceFilesForTarget(Demo) reported an unknown target")
	}
	want := []string{
		filepath.Join(base, "Demo", "AppDelegate.swift"),
		filepath.Join(base, "Sources", "ViewController.swift"),
		filepath.Join(base, "Demo", "Main File.swift"),
		// not reachable from the main group
		filepath.Join(base, "Widget.swift"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SourceFilesForTarget(Demo) = %v, want %v", got, want)
	}
}

func TestSourceFilesForTarget_EmptyAndUnknown(t *testing.T) {
	p := openFixture(t, demoProject)

	got, ok := p.SourceFilesForTarget("DemoTests")
	if !ok || got == nil || len(got) != 0 {
		t.Errorf("SourceFilesForTarget(DemoTests) = %#v, %v, want empty, true", got, ok)
	}

	got, ok = p.SourceFilesForTarget("Nope")
	if ok || got != nil {
		t.Errorf("SourceFilesForTarget(Nope) = %#v, %v, want nil, false", got, ok)
	}
}

func TestSourceFilesForTarget_SourceRootFile(t *testing.T) {
	const fixture = `// !$*UTF8*$!
{
	objects = {
		B30000000000000000000001 = {isa = PBXBuildFile; fileRef = F30000000000000000000001; };
		F30000000000000000000001 = {isa = PBXFileReference; path = "a.swift"; sourceTree = SOURCE_ROOT; };
		A30000000000000000000001 = {isa = PBXNativeTarget; name = "T"; buildPhases = (D30000000000000000000001); };
		D30000000000000000000001 = {isa = PBXSourcesBuildPhase; files = (B30000000000000000000001); };
	};
}
`
	base := t.TempDir()
	p := openFixture(t, fixture, WithBaseDir(base))
	got, ok := p.SourceFilesForTarget("T")
	want := []string{filepath.Join(base, "a.swift")}
	if !ok || !reflect.DeepEqual(got, want) {
		t.Errorf("SourceFilesForTarget(T) = %v, %v, want %v", got, ok, want)
	}
}

func makeTree(t *testing.T, base string, files ...string) {
	t.Helper()
	for _, f := range files {
		path := filepath.Join(base, filepath.FromSlash(f))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("// "+f+"\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestSourceFilesForTarget_SynchronizedGroups(t *testing.T) {
	base := t.TempDir()
	makeTree(t, base,
		"App/Main.swift",
		"App/Info.plist",
		"App/Excluded/Gone.swift",
		"App/ExcludedNot.swift",
		"App/Sub Dir/Skip.swift",
		"App/Sub Dir/Keep.swift",
		"App/Views/List.swift",
		"Nested/Inner/Hidden.swift",
	)
	p := openFixture(t, syncProject,
		WithBaseDir(base),
		WithBuildEnvironment(StaticBuildEnvironment{SDK: "/sdk", Developer: "/dev"}),
	)

	got, ok := p.SourceFilesForTarget("App")
	if !ok {
		t.Fatal("SourceFilesForTarget(App) reported an unknown target")
	}
	want := []string{
		"/sdk/usr/include/sdk.h",
		"/dev/Tools/dev.swift",
		"/abs/Abs.swift",
		filepath.Join(base, "App", "ExcludedNot.swift"),
		filepath.Join(base, "App", "Main.swift"),
		filepath.Join(base, "App", "Sub Dir", "Keep.swift"),
		filepath.Join(base, "App", "Views", "List.swift"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SourceFilesForTarget(App) =\n%v\nwant\n%v", got, want)
	}
}

func TestSourceFilesForTarget_NestedSynchronizedGroupNotDiscovered(t *testing.T) {
	base := t.TempDir()
	makeTree(t, base, "Nested/Inner/Hidden.swift")
	p := openFixture(t, syncProject, WithBaseDir(base))

	got, _ := p.SourceFilesForTarget("App")
	for _, f := range got {
		if filepath.Base(f) == "Hidden.swift" {
			t.Errorf("found %s through a group the target does not list", f)
		}
	}
}

func TestSourceFilesForTarget_UnresolvedTreesSkipped(t *testing.T) {
	p := openFixture(t, syncProject, WithBaseDir(t.TempDir()))
	got, _ := p.SourceFilesForTarget("App")
	want := []string{"/abs/Abs.swift"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SourceFilesForTarget(App) = %v, want %v", got, want)
	}
}

func TestSourceFilesForTarget_OtherTargetExceptions(t *testing.T) {
	const fixture = `// !$*UTF8*$!
{
	objects = {
		EE0000000000000000000002 = {isa = PBXFileSystemSynchronizedBuildFileExceptionSet; membershipExceptions = (Main.swift); target = A20000000000000000000001; };
		E20000000000000000000001 = {isa = PBXFileSystemSynchronizedRootGroup; exceptions = (EE0000000000000000000002); path = App; sourceTree = "<group>"; };
		A20000000000000000000001 = {isa = PBXNativeTarget; name = App; };
		A20000000000000000000002 = {isa = PBXNativeTarget; name = Other; fileSystemSynchronizedGroups = (E20000000000000000000001); };
	};
}
`
	base := t.TempDir()
	makeTree(t, base, "App/Main.swift")
	p := openFixture(t, fixture, WithBaseDir(base))
	got, _ := p.SourceFilesForTarget("Other")
	want := []string{filepath.Join(base, "App", "Main.swift")}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SourceFilesForTarget(Other) = %v, want %v", got, want)
	}
}

func TestIsExcluded(t *testing.T) {
	excluded := []string{"Info.plist", "Excluded"}
	tests := map[string]bool{
		"Info.plist":        true,
		"Excluded":          true,
		"Excluded/a.swift":  true,
		"ExcludedNot.swift": false,
		"Sub/Info.plist":    false,
	}
	for rel, want := range tests {
		if got := isExcluded(rel, excluded); got != want {
			t.Errorf("isExcluded(%q) = %v, want %v", rel, got, want)
		}
	}
}
