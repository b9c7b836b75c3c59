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
package pbxproj

import (
	"path/filepath"
	"strings"

	"github.com/soapywu/pbxwizard/pbxparser"
)

const (
	SOURCE_TREE_GROUP          = "<group>"
	SOURCE_TREE_SOURCE_ROOT    = "SOURCE_ROOT"
	SOURCE_TREE_SDKROOT        = "SDKROOT"
	SOURCE_TREE_DEVELOPER_DIR  = "DEVELOPER_DIR"
	SOURCE_TREE_BUILT_PRODUCTS = "BUILT_PRODUCTS_DIR"
	SOURCE_TREE_ABSOLUTE       = "<absolute>"
	DEFAULT_FILETYPE           = "unknown"
)

var FILETYPE_BY_EXTENSION = map[string]string{
	"a":           "archive.ar",
	"app":         "wrapper.application",
	"appex":       "wrapper.app-extension",
	"bundle":      "wrapper.plug-in",
	"c":           "sourcecode.c.c",
	"cpp":         "sourcecode.cpp.cpp",
	"dylib":       "compiled.mach-o.dylib",
	"framework":   "wrapper.framework",
	"h":           "sourcecode.c.h",
	"m":           "sourcecode.c.objc",
	"mm":          "sourcecode.cpp.objcpp",
	"markdown":    "text",
	"metal":       "sourcecode.metal",
	"pch":         "sourcecode.c.h",
	"plist":       "text.plist.xml",
	"sh":          "text.script.sh",
	"storyboard":  "file.storyboard",
	"strings":     "text.plist.strings",
	"swift":       "sourcecode.swift",
	"tbd":         "sourcecode.text-based-dylib-definition",
	"xcassets":    "folder.assetcatalog",
	"xcconfig":    "text.xcconfig",
	"xcdatamodel": "wrapper.xcdatamodel",
	"xcodeproj":   "wrapper.pb-project",
	"xctest":      "wrapper.cfbundle",
	"xib":         "file.xib",
}

// FileTypeForPath returns Xcode's file type for path by its extension.
func FileTypeForPath(path string) string {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if filetype, found := FILETYPE_BY_EXTENSION[strings.ToLower(ext)]; found {
		return filetype
	}
	return DEFAULT_FILETYPE
}

// IsSourceCode reports whether path is a Swift or Objective-C source file.
func IsSourceCode(path string) bool {
	switch FileTypeForPath(path) {
	case "sourcecode.swift", "sourcecode.c.objc", "sourcecode.cpp.objcpp":
		return true
	}
	return false
}

// unquoted strips one pair of surrounding double quotes and undoes escapes.
func unquoted(text string) string {
	return pbxparser.Unquote(text)
}

// fileTreeRoot returns the directory a reference's sourceTree points at.
// ok is false when the tree cannot be resolved, and the file is skipped.
func (p *XcodeProject) fileTreeRoot(sourceTree string) (string, bool) {
	switch unquoted(sourceTree) {
	case "", SOURCE_TREE_SOURCE_ROOT:
		return p.baseDir, true
	case SOURCE_TREE_ABSOLUTE:
		return "", true
	case SOURCE_TREE_SDKROOT:
		root, err := p.buildEnv.SDKRoot()
		return root, err == nil && root != ""
	case SOURCE_TREE_DEVELOPER_DIR:
		root, err := p.buildEnv.DeveloperDir()
		return root, err == nil && root != ""
	case SOURCE_TREE_BUILT_PRODUCTS:
		// Build products are not on disk until a build runs.
		return "", false
	}
	return p.baseDir, true
}
