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

// Package codetools finds an app's entry point among its source files and
// adds the SDK start call to it.
package codetools

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/soapywu/pbxwizard/pbxproj"
)

type EntryKind int

const (
	SwiftUIApp EntryKind = iota + 1
	SwiftAppDelegate
	ObjCAppDelegate
)

func (k EntryKind) String() string {
	switch k {
	case SwiftUIApp:
		return "SwiftUI App"
	case SwiftAppDelegate:
		return "Swift AppDelegate"
	case ObjCAppDelegate:
		return "Objective-C AppDelegate"
	}
	return "unknown"
}

// IsSwift reports whether the entry file is Swift source.
func (k EntryKind) IsSwift() bool {
	return k == SwiftUIApp || k == SwiftAppDelegate
}

// Entry is the file the SDK should be started from.
type Entry struct {
	Path string
	Kind EntryKind
}

var (
	swiftUIAppDecl   = regexp.MustCompile(`(?m)^\s*@main\s*\n?\s*struct\s+\w+\s*:\s*(?:SwiftUI\.)?App\b[^{]*\{[ \t]*\n`)
	swiftAppInit     = regexp.MustCompile(`(?m)^[ \t]*init\(\)\s*\{[ \t]*\n`)
	didFinishLaunch  = regexp.MustCompile(`didFinishLaunchingWithOptions[^{]*\{[ \t]*\n`)
	swiftImportLine  = regexp.MustCompile(`(?m)^import\s+\w+.*\n`)
	objcImportLine   = regexp.MustCompile(`(?m)^[#@]import\s+.*\n`)
	alreadyStartedRe = regexp.MustCompile(`SentrySDK\.start|SentrySDK\s+start`)
)

// FindEntry picks the first file that starts the application: a SwiftUI
// App, or an app delegate implementing didFinishLaunchingWithOptions.
func FindEntry(files []string) (Entry, bool) {
	var delegate Entry
	for _, path := range files {
		if !pbxproj.IsSourceCode(path) {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		src := string(data)
		kind, ok := classify(path, src)
		if !ok {
			continue
		}
		if kind == SwiftUIApp {
			return Entry{Path: path, Kind: kind}, true
		}
		if delegate.Path == "" {
			delegate = Entry{Path: path, Kind: kind}
		}
	}
	return delegate, delegate.Path != ""
}

func classify(path, src string) (EntryKind, bool) {
	swift := pbxproj.FileTypeForPath(path) == "sourcecode.swift"
	switch {
	case swift && swiftUIAppDecl.MatchString(src):
		return SwiftUIApp, true
	case swift && didFinishLaunch.MatchString(src):
		return SwiftAppDelegate, true
	case !swift && didFinishLaunch.MatchString(src):
		return ObjCAppDelegate, true
	}
	return 0, false
}

// AlreadyStarted reports whether src already starts the SDK.
func AlreadyStarted(src string) bool {
	return alreadyStartedRe.MatchString(src)
}

// InjectIntoSource returns src with the import and snippet added. changed
// is false when the SDK is already started.
func InjectIntoSource(src string, kind EntryKind, snippet string) (string, bool, error) {
	if AlreadyStarted(src) {
		return src, false, nil
	}
	if !strings.HasSuffix(snippet, "\n") {
		snippet += "\n"
	}

	var out string
	switch kind {
	case SwiftUIApp:
		if loc := swiftAppInit.FindStringIndex(src); loc != nil {
			out = src[:loc[1]] + snippet + src[loc[1]:]
			break
		}
		loc := swiftUIAppDecl.FindStringIndex(src)
		if loc == nil {
			return src, false, fmt.Errorf("no SwiftUI App declaration found")
		}
		out = src[:loc[1]] + "    init() {\n" + snippet + "    }\n\n" + src[loc[1]:]
	case SwiftAppDelegate, ObjCAppDelegate:
		loc := didFinishLaunch.FindStringIndex(src)
		if loc == nil {
			return src, false, fmt.Errorf("no didFinishLaunchingWithOptions implementation found")
		}
		out = src[:loc[1]] + snippet + src[loc[1]:]
	default:
		return src, false, fmt.Errorf("unsupported entry kind %v", kind)
	}

	if kind.IsSwift() {
		out = addImport(out, swiftImportLine, "import Sentry\n")
	} else {
		out = addImport(out, objcImportLine, "@import Sentry;\n")
	}
	return out, true, nil
}

// addImport places line after the last existing import, or at the top.
func addImport(src string, imports *regexp.Regexp, line string) string {
	if strings.Contains(src, line) {
		return src
	}
	all := imports.FindAllStringIndex(src, -1)
	if len(all) == 0 {
		return line + "\n" + src
	}
	end := all[len(all)-1][1]
	return src[:end] + line + src[end:]
}

// InjectInit edits the entry file in place.
func InjectInit(entry Entry, snippet string) (bool, error) {
	data, err := os.ReadFile(entry.Path)
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", entry.Path, err)
	}
	out, changed, err := InjectIntoSource(string(data), entry.Kind, snippet)
	if err != nil || !changed {
		return false, err
	}
	if err := os.WriteFile(entry.Path, []byte(out), 0o644); err != nil {
		return false, fmt.Errorf("writing %s: %w", entry.Path, err)
	}
	return true, nil
}
