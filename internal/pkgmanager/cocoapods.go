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
package pkgmanager

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

const PodfileName = "Podfile"

// CocoaPods edits the Podfile and runs pod install.
type CocoaPods struct {
	SkipInstall bool
	Run         Runner
}

func NewCocoaPods() *CocoaPods {
	return &CocoaPods{Run: ExecRunner}
}

func (c *CocoaPods) Name() string {
	return "CocoaPods"
}

func (c *CocoaPods) Detect(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, PodfileName))
	return err == nil && !info.IsDir()
}

// podRequirement turns "8.1.0" into "~> 8.1".
func podRequirement(version string) string {
	parts := strings.Split(version, ".")
	if len(parts) > 2 {
		parts = parts[:2]
	}
	return "~> " + strings.Join(parts, ".")
}

func podLine(pkg Package) string {
	if pkg.Version == "" {
		return fmt.Sprintf("pod '%s'", pkg.Name)
	}
	return fmt.Sprintf("pod '%s', '%s'", pkg.Name, podRequirement(pkg.Version))
}

// AddPodToTarget inserts the pod as the first line of the target's block.
// A Podfile that already names the pod is returned unchanged.
func AddPodToTarget(podfile, target string, pkg Package) (string, bool, error) {
	existing := regexp.MustCompile(`(?m)^\s*pod\s+['"]` + regexp.QuoteMeta(pkg.Name) + `['"/]`)
	if existing.MatchString(podfile) {
		return podfile, false, nil
	}

	block := regexp.MustCompile(`(?m)^([ \t]*)target\s+['"]` + regexp.QuoteMeta(target) + `['"]\s+do[ \t]*\n`)
	loc := block.FindStringSubmatchIndex(podfile)
	if loc == nil {
		return podfile, false, fmt.Errorf("target %q not found in Podfile", target)
	}
	indent := podfile[loc[2]:loc[3]] + "  "
	insert := indent + podLine(pkg) + "\n"
	return podfile[:loc[1]] + insert + podfile[loc[1]:], true, nil
}

func (c *CocoaPods) AddDependency(ctx context.Context, dir, target string, pkg Package) error {
	path := filepath.Join(dir, PodfileName)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("no Podfile in %s", dir)
	}
	if err != nil {
		return fmt.Errorf("reading Podfile: %w", err)
	}

	updated, changed, err := AddPodToTarget(string(data), target, pkg)
	if err != nil {
		return err
	}
	if changed {
		if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
			return fmt.Errorf("writing Podfile: %w", err)
		}
	}

	if c.SkipInstall {
		return nil
	}
	run := c.Run
	if run == nil {
		run = ExecRunner
	}
	if out, err := run(ctx, dir, "pod", "install"); err != nil {
		return fmt.Errorf("pod install: %w\n%s", err, out)
	}
	return nil
}
