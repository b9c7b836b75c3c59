/**
Licensed to the Apache Software Foundation (ASF) under one
or more contributor license agreements.  See the NOTICE file
distributed with this work for additional information
regarding copyright ownership.  The ASF licenses this file
to you under the Apache License, Version 2.0 (the
'License'); you may not use this file except in compliance
with the License.  You may obtain a copy of the License at
http://www.apache.org/licenses/LICENSE-2.0
Unless required by applicable law or agreed to in writing,
software distributed under the License is distributed on an
'AS IS' BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
KIND, either express or implied.  See the License for the
specific language governing permissions and limitations
under the License.
*/

// Package detect inspects a directory to find out what kind of Apple
// project lives there.
package detect

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// PackageManager names how dependencies are installed.
type PackageManager int

const (
	SwiftPackageManager PackageManager = iota
	CocoaPods
)

func (m PackageManager) String() string {
	switch m {
	case CocoaPods:
		return "CocoaPods"
	default:
		return "Swift Package Manager"
	}
}

// ignoredDirs hold vendored or generated projects nobody wants to edit.
var ignoredDirs = []string{
	"**/Pods/**",
	"**/build/**",
	"**/DerivedData/**",
	"**/.build/**",
	"**/Carthage/**",
	"**/node_modules/**",
}

// Info is what Detect learned about a directory.
type Info struct {
	Dir             string
	XcodeProjects   []string
	HasPodfile      bool
	HasPackageSwift bool
}

// IsAppleProject reports whether anything Apple-specific was found.
func (i Info) IsAppleProject() bool {
	return len(i.XcodeProjects) > 0 || i.HasPackageSwift
}

// PreferredPackageManager is CocoaPods when a Podfile exists.
func (i Info) PreferredPackageManager() PackageManager {
	if i.HasPodfile {
		return CocoaPods
	}
	return SwiftPackageManager
}

func Detect(dir string) (Info, error) {
	projects, err := FindXcodeProjects(dir)
	if err != nil {
		return Info{}, err
	}
	return Info{
		Dir:             dir,
		XcodeProjects:   projects,
		HasPodfile:      fileExists(filepath.Join(dir, "Podfile")),
		HasPackageSwift: fileExists(filepath.Join(dir, "Package.swift")),
	}, nil
}

// FindXcodeProjects returns every .xcodeproj bundle below dir that holds a
// project.pbxproj, skipping vendored and build output directories. Paths
// are absolute when dir is, and sorted.
func FindXcodeProjects(dir string) ([]string, error) {
	matches, err := doublestar.Glob(os.DirFS(dir), "**/*.xcodeproj")
	if err != nil {
		return nil, fmt.Errorf("searching %s for Xcode projects: %w", dir, err)
	}
	var projects []string
	for _, rel := range matches {
		if matchesAny(ignoredDirs, rel) {
			continue
		}
		path := filepath.Join(dir, filepath.FromSlash(rel))
		if !fileExists(filepath.Join(path, "project.pbxproj")) {
			continue
		}
		projects = append(projects, path)
	}
	sort.Strings(projects)
	return projects, nil
}

func matchesAny(patterns []string, rel string) bool {
	rel = filepath.ToSlash(rel)
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
	}
	return false
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
