package pbxproj

import (
	"reflect"
	"testing"
)

func TestTargets(t *testing.T) {
	tests := []struct {
		name    string
		fixture string
		want    []string
	}{
		{"two targets", demoProject, []string{"Demo", "DemoTests"}},
		{"quoted and duplicate names", syncProject, []string{"App", "Other", "App"}},
		{"no targets", emptyProject, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := openFixture(t, tt.fixture).Targets()
			if got == nil {
				t.Fatal("Targets() = nil, want an empty slice at least")
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Targets() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFindTarget(t *testing.T) {
	p := openFixture(t, syncProject)
	target, ok := p.FindTarget("App")
	if !ok {
		t.Fatal("FindTarget(App) found nothing")
	}
	if target.UUID != "A20000000000000000000001" {
		t.Errorf("FindTarget(App).UUID = %s, want the first App target", target.UUID)
	}
	if target.Name() != "App" {
		t.Errorf("Name() = %q", target.Name())
	}

	for _, name := range []string{"app", "Ap", ""} {
		if _, ok := p.FindTarget(name); ok {
			t.Errorf("FindTarget(%q) matched", name)
		}
	}
}

func TestResolve(t *testing.T) {
	p := openFixture(t, syncProject)
	misfiled, ok := p.resolve(PBX_FILE_REFERENCE, "E2000000000000000000000B")
	if !ok {
		t.Fatal("resolve() did not find the Broken file reference")
	}
	p.ensureSection(PBX_GROUP).Set("E2000000000000000000000C", misfiled)
	tests := []struct {
		name string
		isa  string
		id   string
		want bool
	}{
		{"present", PBX_NATIVE_TARGET, "A20000000000000000000001", true},
		{"comment key", PBX_NATIVE_TARGET, "A20000000000000000000001_comment", false},
		{"missing id", PBX_NATIVE_TARGET, "A2000000000000000000000D", false},
		{"missing section", PBX_VARIANT_GROUP, "A20000000000000000000001", false},
		{"wrong section", PBX_GROUP, "A20000000000000000000001", false},
		{"wrong isa", PBX_GROUP, "E2000000000000000000000C", false},
		{"other section", PBX_GROUP, "E2000000000000000000000B", false},
		{"empty id", PBX_GROUP, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, got := p.resolve(tt.isa, tt.id); got != tt.want {
				t.Errorf("resolve(%s, %s) = %v, want %v", tt.isa, tt.id, got, tt.want)
			}
		})
	}
}

func TestGetFirstProject(t *testing.T) {
	p := openFixture(t, demoProject)
	if got := p.getFirstProject().UUID; got != demoProjectId {
		t.Errorf("getFirstProject() = %s, want %s", got, demoProjectId)
	}
	p.pbxProjectRoot.Set("rootObject", "AA000000000000000000000F")
	if got := p.getFirstProject().UUID; got != demoProjectId {
		t.Errorf("getFirstProject() with a dangling rootObject = %s, want %s", got, demoProjectId)
	}
}
