package pbxproj

import (
	"os"
	"path/filepath"
	"testing"
)

const (
	demoTargetId      = "A10000000000000000000001"
	demoTestsTargetId = "A10000000000000000000002"
	demoFrameworksId  = "D10000000000000000000002"
	demoProjectId     = "AA0000000000000000000001"
	orphanPhaseId     = "D1000000000000000000000F"
)

// demoProject is laid out the way Xcode saves a project, so it must
// survive a parse and write unchanged.
const demoProject = `// !$*UTF8*$!
{
	archiveVersion = 1;
	classes = {
	};
	objectVersion = 56;
	objects = {

/* Begin PBXBuildFile section */
		B10000000000000000000001 /* AppDelegate.swift in Sources */ = {isa = PBXBuildFile; fileRef = F10000000000000000000001 /* AppDelegate.swift */; };
		B10000000000000000000002 /* ViewController.swift in Sources */ = {isa = PBXBuildFile; fileRef = F10000000000000000000002 /* ViewController.swift */; };
		B10000000000000000000003 /* Main File.swift in Sources */ = {isa = PBXBuildFile; fileRef = F10000000000000000000003 /* Main File.swift */; };
		B10000000000000000000004 /* Widget.swift in Sources */ = {isa = PBXBuildFile; fileRef = F10000000000000000000004 /* Widget.swift */; };
/* End PBXBuildFile section */

/* Begin PBXFileReference section */
		F10000000000000000000001 /* AppDelegate.swift */ = {isa = PBXFileReference; lastKnownFileType = sourcecode.swift; path = AppDelegate.swift; sourceTree = "<group>"; };
		F10000000000000000000002 /* ViewController.swift */ = {isa = PBXFileReference; lastKnownFileType = sourcecode.swift; path = Sources/ViewController.swift; sourceTree = SOURCE_ROOT; };
		F10000000000000000000003 /* Main File.swift */ = {isa = PBXFileReference; lastKnownFileType = sourcecode.swift; path = "Main File.swift"; sourceTree = "<group>"; };
		F10000000000000000000004 /* Widget.swift */ = {isa = PBXFileReference; lastKnownFileType = sourcecode.swift; path = Widget.swift; sourceTree = "<group>"; };
		F1000000000000000000000A /* Demo.app */ = {isa = PBXFileReference; explicitFileType = wrapper.application; includeInIndex = 0; path = Demo.app; sourceTree = BUILT_PRODUCTS_DIR; };
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
				E10000000000000000000003 /* Products */,
			);
			sourceTree = "<group>";
		};
		E10000000000000000000002 /* Demo */ = {
			isa = PBXGroup;
			children = (
				F10000000000000000000001 /* AppDelegate.swift */,
				F10000000000000000000003 /* Main File.swift */,
			);
			path = Demo;
			sourceTree = "<group>";
		};
		E10000000000000000000003 /* Products */ = {
			isa = PBXGroup;
			children = (
				F1000000000000000000000A /* Demo.app */,
			);
			name = Products;
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
			buildRules = (
			);
			dependencies = (
			);
			name = Demo;
			productName = Demo;
			productReference = F1000000000000000000000A /* Demo.app */;
			productType = "com.apple.product-type.application";
		};
		A10000000000000000000002 /* DemoTests */ = {
			isa = PBXNativeTarget;
			buildConfigurationList = CC0000000000000000000003 /* Build configuration list for PBXNativeTarget "DemoTests" */;
			buildPhases = (
				D10000000000000000000004 /* Sources */,
			);
			buildRules = (
			);
			dependencies = (
			);
			name = DemoTests;
			productName = DemoTests;
			productType = "com.apple.product-type.bundle.unit-test";
		};
/* End PBXNativeTarget section */

/* Begin PBXProject section */
		AA0000000000000000000001 /* Project object */ = {
			isa = PBXProject;
			attributes = {
				BuildIndependentTargetsInParallel = 1;
				LastSwiftUpdateCheck = 1500;
				LastUpgradeCheck = 1500;
			};
			buildConfigurationList = CC0000000000000000000001 /* Build configuration list for PBXProject "Demo" */;
			compatibilityVersion = "Xcode 14.0";
			developmentRegion = en;
			hasScannedForEncodings = 0;
			knownRegions = (
				en,
				Base,
			);
			mainGroup = E10000000000000000000001;
			productRefGroup = E10000000000000000000003 /* Products */;
			projectDirPath = "";
			projectRoot = "";
			targets = (
				A10000000000000000000001 /* Demo */,
				A10000000000000000000002 /* DemoTests */,
			);
		};
/* End PBXProject section */

/* Begin PBXSourcesBuildPhase section */
		D10000000000000000000001 /* Sources */ = {
			isa = PBXSourcesBuildPhase;
			buildActionMask = 2147483647;
			files = (
				B10000000000000000000001 /* AppDelegate.swift in Sources */,
				B10000000000000000000002 /* ViewController.swift in Sources */,
				B10000000000000000000003 /* Main File.swift in Sources */,
				B10000000000000000000004 /* Widget.swift in Sources */,
			);
			runOnlyForDeploymentPostprocessing = 0;
		};
		D10000000000000000000004 /* Sources */ = {
			isa = PBXSourcesBuildPhase;
			buildActionMask = 2147483647;
			files = (
			);
			runOnlyForDeploymentPostprocessing = 0;
		};
/* End PBXSourcesBuildPhase section */

/* Begin XCBuildConfiguration section */
		CB0000000000000000000001 /* Debug */ = {
			isa = XCBuildConfiguration;
			buildSettings = {
				DEBUG_INFORMATION_FORMAT = dwarf;
				SDKROOT = iphoneos;
			};
			name = Debug;
		};
		CB0000000000000000000002 /* Release */ = {
			isa = XCBuildConfiguration;
			buildSettings = {
				DEBUG_INFORMATION_FORMAT = "dwarf-with-dsym";
				SDKROOT = iphoneos;
			};
			name = Release;
		};
		CB0000000000000000000003 /* Debug */ = {
			isa = XCBuildConfiguration;
			buildSettings = {
				DEBUG_INFORMATION_FORMAT = dwarf;
				OTHER_LDFLAGS = (
					"-ObjC",
					"-lz",
				);
				PRODUCT_BUNDLE_IDENTIFIER = com.example.Demo;
				PRODUCT_NAME = "$(TARGET_NAME)";
			};
			name = Debug;
		};
		CB0000000000000000000004 /* Release */ = {
			isa = XCBuildConfiguration;
			buildSettings = {
				PRODUCT_BUNDLE_IDENTIFIER = com.example.Demo;
				PRODUCT_NAME = "$(TARGET_NAME)";
			};
			name = Release;
		};
		CB0000000000000000000005 /* Debug */ = {
			isa = XCBuildConfiguration;
			buildSettings = {
				PRODUCT_NAME = "$(TARGET_NAME)";
			};
			name = Debug;
		};
		CB0000000000000000000006 /* Release */ = {
			isa = XCBuildConfiguration;
			name = Release;
		};
/* End XCBuildConfiguration section */

/* Begin XCConfigurationList section */
		CC0000000000000000000001 /* Build configuration list for PBXProject "Demo" */ = {
			isa = XCConfigurationList;
			buildConfigurations = (
				CB0000000000000000000001 /* Debug */,
				CB0000000000000000000002 /* Release */,
			);
			defaultConfigurationIsVisible = 0;
			defaultConfigurationName = Release;
		};
		CC0000000000000000000002 /* Build configuration list for PBXNativeTarget "Demo" */ = {
			isa = XCConfigurationList;
			buildConfigurations = (
				CB0000000000000000000003 /* Debug */,
				CB0000000000000000000004 /* Release */,
			);
			defaultConfigurationIsVisible = 0;
			defaultConfigurationName = Release;
		};
		CC0000000000000000000003 /* Build configuration list for PBXNativeTarget "DemoTests" */ = {
			isa = XCConfigurationList;
			buildConfigurations = (
				CB0000000000000000000005 /* Debug */,
				CB0000000000000000000006 /* Release */,
			);
			defaultConfigurationIsVisible = 0;
			defaultConfigurationName = Release;
		};
/* End XCConfigurationList section */
	};
	rootObject = AA0000000000000000000001 /* Project object */;
}
`

// syncProject exercises source trees, synchronized folders and the odd
// corners of the object graph.
const syncProject = `// !$*UTF8*$!
{
	archiveVersion = 1;
	classes = {
	};
	objectVersion = 77;
	objects = {

/* Begin PBXBuildFile section */
		B20000000000000000000001 /* sdk.h in Sources */ = {isa = PBXBuildFile; fileRef = F20000000000000000000001 /* sdk.h */; };
		B20000000000000000000002 /* dev.swift in Sources */ = {isa = PBXBuildFile; fileRef = F20000000000000000000002 /* dev.swift */; };
		B20000000000000000000003 /* Abs.swift in Sources */ = {isa = PBXBuildFile; fileRef = F20000000000000000000003 /* Abs.swift */; };
		B20000000000000000000004 /* Gen.swift in Sources */ = {isa = PBXBuildFile; fileRef = F20000000000000000000004 /* Gen.swift */; };
		B20000000000000000000005 /* Gone.swift in Sources */ = {isa = PBXBuildFile; fileRef = F2000000000000000000000F /* Gone.swift */; };
		B20000000000000000000006 /* Nameless in Sources */ = {isa = PBXBuildFile; fileRef = F20000000000000000000006 /* Nameless */; };
/* End PBXBuildFile section */

/* Begin PBXFileReference section */
		F20000000000000000000001 /* sdk.h */ = {isa = PBXFileReference; path = usr/include/sdk.h; sourceTree = SDKROOT; };
		F20000000000000000000002 /* dev.swift */ = {isa = PBXFileReference; path = Tools/dev.swift; sourceTree = DEVELOPER_DIR; };
		F20000000000000000000003 /* Abs.swift */ = {isa = PBXFileReference; path = /abs/Abs.swift; sourceTree = "<absolute>"; };
		F20000000000000000000004 /* Gen.swift */ = {isa = PBXFileReference; path = Gen.swift; sourceTree = BUILT_PRODUCTS_DIR; };
		F20000000000000000000006 /* Nameless */ = {isa = PBXFileReference; name = Nameless; sourceTree = "<group>"; };
		E2000000000000000000000B /* Broken */ = {isa = PBXFileReference; path = Broken; sourceTree = "<group>"; };
/* End PBXFileReference section */

/* Begin PBXFileSystemSynchronizedBuildFileExceptionSet section */
		EE0000000000000000000001 /* Exceptions for "App" folder in "App" target */ = {
			isa = PBXFileSystemSynchronizedBuildFileExceptionSet;
			membershipExceptions = (
				Info.plist,
				Excluded,
				"Sub Dir/Skip.swift",
			);
			target = A20000000000000000000001 /* App */;
		};
		EE0000000000000000000002 /* Exceptions for "App" folder in "Other" target */ = {
			isa = PBXFileSystemSynchronizedBuildFileExceptionSet;
			membershipExceptions = (
				Main.swift,
			);
			target = A20000000000000000000002 /* Other */;
		};
/* End PBXFileSystemSynchronizedBuildFileExceptionSet section */

/* Begin PBXFileSystemSynchronizedRootGroup section */
		E20000000000000000000001 /* App */ = {isa = PBXFileSystemSynchronizedRootGroup; exceptions = (EE0000000000000000000001 /* Exceptions for "App" folder in "App" target */, EE0000000000000000000002 /* Exceptions for "App" folder in "Other" target */, ); explicitFileTypes = {}; explicitFolders = (); path = App; sourceTree = "<group>"; };
		E20000000000000000000003 /* Inner */ = {isa = PBXFileSystemSynchronizedRootGroup; explicitFileTypes = {}; explicitFolders = (); path = Inner; sourceTree = "<group>"; };
/* End PBXFileSystemSynchronizedRootGroup section */

/* Begin PBXGroup section */
		E20000000000000000000000 = {
			isa = PBXGroup;
			children = (
				E20000000000000000000001 /* App */,
				E20000000000000000000002 /* Nested */,
			);
			sourceTree = "<group>";
		};
		E20000000000000000000002 /* Nested */ = {
			isa = PBXGroup;
			children = (
				E20000000000000000000003 /* Inner */,
			);
			path = Nested;
			sourceTree = "<group>";
		};
/* End PBXGroup section */

/* Begin PBXNativeTarget section */
		A20000000000000000000001 /* App */ = {
			isa = PBXNativeTarget;
			buildPhases = (
				D20000000000000000000001 /* Sources */,
			);
			fileSystemSynchronizedGroups = (
				E20000000000000000000001 /* App */,
				E20000000000000000000009 /* Missing */,
			);
			name = App;
		};
		A20000000000000000000002 /* Other */ = {
			isa = PBXNativeTarget;
			name = Other;
		};
		A20000000000000000000003 /* App */ = {
			isa = PBXNativeTarget;
			buildPhases = (
			);
			name = "App";
		};
/* End PBXNativeTarget section */

/* Begin PBXProject section */
		AA0000000000000000000002 /* Project object */ = {
			isa = PBXProject;
			mainGroup = E20000000000000000000000;
			targets = (
				A20000000000000000000001 /* App */,
				A20000000000000000000002 /* Other */,
				A20000000000000000000003 /* App */,
			);
		};
/* End PBXProject section */

/* Begin PBXSourcesBuildPhase section */
		D20000000000000000000001 /* Sources */ = {
			isa = PBXSourcesBuildPhase;
			buildActionMask = 2147483647;
			files = (
				B20000000000000000000001 /* sdk.h in Sources */,
				B20000000000000000000002 /* dev.swift in Sources */,
				B20000000000000000000003 /* Abs.swift in Sources */,
				B20000000000000000000004 /* Gen.swift in Sources */,
				B20000000000000000000005 /* Gone.swift in Sources */,
				B20000000000000000000006 /* Nameless in Sources */,
				B2000000000000000000000E /* Dangling in Sources */,
			);
			runOnlyForDeploymentPostprocessing = 0;
		};
/* End PBXSourcesBuildPhase section */
	};
	rootObject = AA0000000000000000000002 /* Project object */;
}
`

const emptyProject = `// !$*UTF8*$!
{
	archiveVersion = 1;
	classes = {
	};
	objectVersion = 56;
	objects = {

/* Begin PBXProject section */
		AA0000000000000000000003 /* Project object */ = {
			isa = PBXProject;
			targets = (
			);
		};
/* End PBXProject section */
	};
	rootObject = AA0000000000000000000003 /* Project object */;
}
`

// writeFixture lays fixture out as dir/Demo.xcodeproj/project.pbxproj and
// returns the bundle path.
func writeFixture(t *testing.T, dir, fixture string) string {
	t.Helper()
	bundle := filepath.Join(dir, "Demo"+PROJECT_BUNDLE_SUFFIX)
	if err := os.MkdirAll(bundle, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(bundle, PROJECT_FILE_NAME), []byte(fixture), 0o644); err != nil {
		t.Fatal(err)
	}
	return bundle
}

func openFixture(t *testing.T, fixture string, options ...Option) *XcodeProject {
	t.Helper()
	bundle := writeFixture(t, t.TempDir(), fixture)
	options = append([]Option{WithBuildEnvironment(StaticBuildEnvironment{})}, options...)
	p, err := Open(bundle, options...)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	return p
}
