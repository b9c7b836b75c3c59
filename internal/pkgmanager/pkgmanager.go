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

// Package pkgmanager adds the SDK to an Apple project through whichever
// dependency manager the project uses.
package pkgmanager

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Package identifies what to install.
type Package struct {
	// Name is the pod name or Swift package product.
	Name string
	// URL is the Swift package repository. CocoaPods ignores it.
	URL string
	// Version is the minimum version to accept.
	Version string
}

type PackageManager interface {
	Name() string
	Detect(dir string) bool
	AddDependency(ctx context.Context, dir, target string, pkg Package) error
}

// Runner executes an external command in dir and returns its combined output.
type Runner func(ctx context.Context, dir, name string, args ...string) (string, error)

// ExecRunner runs commands with os/exec.
func ExecRunner(ctx context.Context, dir, name string, args ...string) (string, error) {
	if _, err := exec.LookPath(name); err != nil {
		return "", fmt.Errorf("%s not found in PATH: %w", name, err)
	}
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		return string(out), fmt.Errorf("%s %s failed: %w", name, strings.Join(args, " "), err)
	}
	return string(out), nil
}
