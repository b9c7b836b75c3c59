package pkgmanager

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const podfile = `platform :ios, '15.0'

target 'App' do
  use_frameworks!
  pod 'Alamofire'

  target 'AppTests' do
    inherit! :search_paths
  end
end
`

var sentryPod = Package{Name: "Sentry", Version: "8.0.0"}

func TestAddPodToTarget_Inserts(t *testing.T) {
	got, changed, err := AddPodToTarget(podfile, "App", sentryPod)
	if err != nil {
		t.Fatalf("AddPodToTarget() error = %v", err)
	}
	if !changed {
		t.Fatal("changed = false, want true")
	}
	want := "target 'App' do\n  pod 'Sentry', '~> 8.0'\n  use_frameworks!"
	if !strings.Contains(got, want) {
		t.Errorf("Podfile = %q, want it to contain %q", got, want)
	}
}

func TestAddPodToTarget_NestedTargetIndent(t *testing.T) {
	got, _, err := AddPodToTarget(podfile, "AppTests", Package{Name: "Sentry"})
	if err != nil {
		t.Fatalf("AddPodToTarget() error = %v", err)
	}
	if !strings.Contains(got, "  target 'AppTests' do\n    pod 'Sentry'\n") {
		t.Errorf("Podfile = %q, want nested indentation", got)
	}
}

func TestAddPodToTarget_Idempotent(t *testing.T) {
	once, _, err := AddPodToTarget(podfile, "App", sentryPod)
	if err != nil {
		t.Fatal(err)
	}
	twice, changed, err := AddPodToTarget(once, "App", sentryPod)
	if err != nil {
		t.Fatal(err)
	}
	if changed || twice != once {
		t.Error("second AddPodToTarget() changed the Podfile")
	}
}

func TestAddPodToTarget_UnknownTarget(t *testing.T) {
	if _, _, err := AddPodToTarget(podfile, "Widget", sentryPod); err == nil {
		t.Error("AddPodToTarget() error = nil, want unknown target error")
	}
}

func TestCocoaPods_AddDependencyRunsInstall(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, PodfileName), []byte(podfile), 0o644); err != nil {
		t.Fatal(err)
	}
	var ran []string
	pods := &CocoaPods{Run: func(_ context.Context, runDir, name string, args ...string) (string, error) {
		if runDir != dir {
			t.Errorf("command dir = %q, want %q", runDir, dir)
		}
		ran = append(ran, name+" "+strings.Join(args, " "))
		return "", nil
	}}

	if !pods.Detect(dir) {
		t.Fatal("Detect() = false with a Podfile present")
	}
	if err := pods.AddDependency(context.Background(), dir, "App", sentryPod); err != nil {
		t.Fatalf("AddDependency() error = %v", err)
	}
	if len(ran) != 1 || ran[0] != "pod install" {
		t.Errorf("commands = %v, want [pod install]", ran)
	}
	data, _ := os.ReadFile(filepath.Join(dir, PodfileName))
	if !strings.Contains(string(data), "pod 'Sentry'") {
		t.Error("Podfile was not updated")
	}
}

func TestCocoaPods_InstallFailure(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, PodfileName), []byte(podfile), 0o644); err != nil {
		t.Fatal(err)
	}
	boom := errors.New("exit status 1")
	pods := &CocoaPods{Run: func(context.Context, string, string, ...string) (string, error) {
		return "[!] CDN: trunk URL couldn't be downloaded", boom
	}}
	err := pods.AddDependency(context.Background(), dir, "App", sentryPod)
	if !errors.Is(err, boom) {
		t.Errorf("AddDependency() error = %v, want wrapped %v", err, boom)
	}
}

func TestCocoaPods_SkipInstall(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, PodfileName), []byte(podfile), 0o644); err != nil {
		t.Fatal(err)
	}
	pods := &CocoaPods{SkipInstall: true, Run: func(context.Context, string, string, ...string) (string, error) {
		t.Error("runner called with SkipInstall")
		return "", nil
	}}
	if err := pods.AddDependency(context.Background(), dir, "App", sentryPod); err != nil {
		t.Fatalf("AddDependency() error = %v", err)
	}
}

func TestCocoaPods_MissingPodfile(t *testing.T) {
	pods := &CocoaPods{SkipInstall: true}
	if err := pods.AddDependency(context.Background(), t.TempDir(), "App", sentryPod); err == nil {
		t.Error("AddDependency() error = nil, want missing Podfile error")
	}
}
