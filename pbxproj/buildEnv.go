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
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// BuildEnvironment answers where the active SDK and developer tools live.
type BuildEnvironment interface {
	SDKRoot() (string, error)
	DeveloperDir() (string, error)
}

type lookupResult struct {
	value string
	err   error
	done  bool
}

// SystemBuildEnvironment reads SDKROOT and DEVELOPER_DIR from the
// environment and falls back to asking the Xcode command line tools.
// Answers are cached for the lifetime of the value.
type SystemBuildEnvironment struct {
	runCommand   func(name string, args ...string) (string, error)
	sdkRoot      lookupResult
	developerDir lookupResult
}

func NewSystemBuildEnvironment() *SystemBuildEnvironment {
	return &SystemBuildEnvironment{runCommand: runToolCommand}
}

func runToolCommand(name string, args ...string) (string, error) {
	out, err := exec.Command(name, args...).Output()
	if err != nil {
		return "", fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
	}
	return strings.TrimSpace(string(out)), nil
}

func (e *SystemBuildEnvironment) lookup(cache *lookupResult, envKey string, name string, args ...string) (string, error) {
	if cache.done {
		return cache.value, cache.err
	}
	cache.done = true
	if v := os.Getenv(envKey); v != "" {
		cache.value = v
		return v, nil
	}
	cache.value, cache.err = e.runCommand(name, args...)
	return cache.value, cache.err
}

func (e *SystemBuildEnvironment) SDKRoot() (string, error) {
	return e.lookup(&e.sdkRoot, "SDKROOT", "xcrun", "--show-sdk-path")
}

func (e *SystemBuildEnvironment) DeveloperDir() (string, error) {
	return e.lookup(&e.developerDir, "DEVELOPER_DIR", "xcode-select", "-p")
}

// StaticBuildEnvironment returns fixed directories. An empty field
// reports an error, so files under that tree are skipped.
type StaticBuildEnvironment struct {
	SDK       string
	Developer string
}

func (e StaticBuildEnvironment) SDKRoot() (string, error) {
	if e.SDK == "" {
		return "", fmt.Errorf("SDK root not configured")
	}
	return e.SDK, nil
}

func (e StaticBuildEnvironment) DeveloperDir() (string, error) {
	if e.Developer == "" {
		return "", fmt.Errorf("developer directory not configured")
	}
	return e.Developer, nil
}
