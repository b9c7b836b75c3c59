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

// Package templates renders the shell script and source snippets inserted
// into an Apple project. Placeholders are written {{name}}.
package templates

import (
	"embed"
	"fmt"
	"regexp"
	"strings"
)

//go:embed builtin/*
var builtinFS embed.FS

const (
	UploadScript = "upload-symbols.sh"
	SwiftInit    = "sentry-init.swift"
	ObjCInit     = "sentry-init.m"

	DefaultURL = "https://sentry.io/"
)

var placeholder = regexp.MustCompile(`\{\{([a-z_]+)\}\}`)

// Render substitutes vars into the named built-in template. A line holding
// nothing but a placeholder whose value is empty is dropped. Unknown
// placeholders are an error.
func Render(name string, vars map[string]string) (string, error) {
	data, err := builtinFS.ReadFile("builtin/" + name)
	if err != nil {
		return "", fmt.Errorf("reading builtin template %s: %w", name, err)
	}
	return RenderString(string(data), vars)
}

func RenderString(text string, vars map[string]string) (string, error) {
	var missing []string
	var out strings.Builder
	for _, line := range strings.SplitAfter(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if m := placeholder.FindStringSubmatch(trimmed); m != nil && m[0] == trimmed {
			if v, ok := vars[m[1]]; ok && v == "" {
				continue
			}
		}
		out.WriteString(placeholder.ReplaceAllStringFunc(line, func(match string) string {
			key := match[2 : len(match)-2]
			v, ok := vars[key]
			if !ok {
				missing = append(missing, key)
				return match
			}
			return v
		}))
	}
	if len(missing) > 0 {
		return "", fmt.Errorf("template has no value for %s", strings.Join(missing, ", "))
	}
	return out.String(), nil
}

// UploadOptions configures the debug symbol upload script.
type UploadOptions struct {
	Org     string
	Project string
	// URL is only exported for self-hosted installs.
	URL           string
	IncludeSource bool
	// HomebrewPath puts /opt/homebrew/bin on PATH for Apple silicon Macs.
	HomebrewPath bool
}

// UploadSymbolsScript renders the build phase script.
func UploadSymbolsScript(opts UploadOptions) (string, error) {
	vars := map[string]string{
		"org":           opts.Org,
		"project":       opts.Project,
		"url_export":    "",
		"upload_flags":  "",
		"homebrew_path": "",
	}
	if opts.URL != "" && strings.TrimSuffix(opts.URL, "/") != strings.TrimSuffix(DefaultURL, "/") {
		vars["url_export"] = "export SENTRY_URL=" + opts.URL
	}
	if opts.IncludeSource {
		vars["upload_flags"] = "--include-sources "
	}
	if opts.HomebrewPath {
		vars["homebrew_path"] = "if [[ \"$(uname -m)\" == arm64 ]]; then\nexport PATH=\"/opt/homebrew/bin:$PATH\"\nfi"
	}
	return Render(UploadScript, vars)
}

// InitSnippet renders the SDK start call for Swift or Objective-C.
func InitSnippet(swift bool, dsn string) (string, error) {
	name := ObjCInit
	if swift {
		name = SwiftInit
	}
	return Render(name, map[string]string{"dsn": dsn})
}
