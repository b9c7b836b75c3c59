package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

const demoProject = `// !$*UTF8*$!
{
	archiveVersion = 1;
	classes = {
	};
	objectVersion = 56;
	objects = {

/* Begin PBXBuildFile section */
		B10000000000000000000001 /* DemoApp.swift in Sources */ = {isa = PBXBuildFile; fileRef = F10000000000000000000001 /* DemoApp.swift */; };
/* End PBXBuildFile section */

/* Begin PBXFileReference section */
		F10000000000000000000001 /* DemoApp.swift */ = {isa = PBXFileReference; lastKnownFileType = sourcecode.swift; path = DemoApp.swift; sourceTree = "<group>"; };
/* End PBXFileReference section */

/* Begin PBXFrameworksBuildPhase section */
		D10000000000000000000002 /* Frameworks */ = {
			isa = PBXFrameworksBuildPhase;
			buildActionMask = 2147483647;
			files = (
			);
			runOnlyForDeploymentPostprocessing = 0;
		};
/* End PBXFrameworksBuildPhase section */

/* Begin PBXGroup section */
		E10000000000000000000001 = {
			isa = PBXGroup;
			children = (
				E10000000000000000000002 /* Demo */,
			);
			sourceTree = "<group>";
		};
		E10000000000000000000002 /* Demo */ = {
			isa = PBXGroup;
			children = (
				F10000000000000000000001 /* DemoApp.swift */,
			);
			path = Demo;
			sourceTree = "<group>";
		};
/* End PBXGroup section */

/* Begin PBXNativeTarget section */
		A10000000000000000000001 /* Demo */ = {
			isa = PBXNativeTarget;
			buildConfigurationList = CC0000000000000000000002 /* Build configuration list for PBXNativeTarget "Demo" */;
			buildPhases = (
				D10000000000000000000001 /* Sources */,
				D10000000000000000000002 /* Frameworks */,
			);
			name = Demo;
			productName = Demo;
			productType = "com.apple.product-type.application";
		};
/* End PBXNativeTarget section */

/* Begin PBXProject section */
		AA0000000000000000000001 /* Project object */ = {
			isa = PBXProject;
			mainGroup = E10000000000000000000001;
			targets = (
				A10000000000000000000001 /* Demo */,
			);
		};
/* End PBXProject section */

/* Begin PBXSourcesBuildPhase section */
		D10000000000000000000001 /* Sources */ = {
			isa = PBXSourcesBuildPhase;
			buildActionMask = 2147483647;
			files = (
				B10000000000000000000001 /* DemoApp.swift in Sources */,
			);
			runOnlyForDeploymentPostprocessing = 0;
		};
/* End PBXSourcesBuildPhase section */

/* Begin XCBuildConfiguration section */
		CB0000000000000000000003 /* Debug */ = {
			isa = XCBuildConfiguration;
			buildSettings = {
				DEBUG_INFORMATION_FORMAT = dwarf;
			};
			name = Debug;
		};
		CB0000000000000000000004 /* Release */ = {
			isa = XCBuildConfiguration;
			buildSettings = {
				DEBUG_INFORMATION_FORMAT = "dwarf-with-dsym";
			};
			name = Release;
		};
/* End XCBuildConfiguration section */

/* Begin XCConfigurationList section */
		CC0000000000000000000002 /* Build configuration list for PBXNativeTarget "Demo" */ = {
			isa = XCConfigurationList;
			buildConfigurations = (
				CB0000000000000000000003 /* Debug */,
				CB0000000000000000000004 /* Release */,
			);
			defaultConfigurationIsVisible = 0;
			defaultConfigurationName = Release;
		};
/* End XCConfigurationList section */
	};
	rootObject = AA0000000000000000000001 /* Project object */;
}
`

const demoAppSource = `import SwiftUI

@main
struct DemoApp: App {
	var body: some Scene {
		WindowGroup {
			Text("Hello")
		}
	}
}
`

// newDemoProject writes the fixture app and returns the .xcodeproj path.
func newDemoProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"Demo.xcodeproj/project.pbxproj": demoProject,
		"Demo/DemoApp.swift":             demoAppSource,
	}
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return filepath.Join(dir, "Demo.xcodeproj")
}

// isolateConfig keeps the user's configuration and SENTRY_* variables out
// of a test.
func isolateConfig(t *testing.T) {
	t.Helper()
	t.Setenv("PBXWIZARD_CONFIG_HOME", t.TempDir())
	for _, key := range []string{"SENTRY_ORG", "SENTRY_PROJECT", "SENTRY_DSN", "SENTRY_URL", "SENTRY_AUTH_TOKEN"} {
		t.Setenv(key, "")
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetIn(new(bytes.Buffer))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func readProject(t *testing.T, project string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(project, "project.pbxproj"))
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}
