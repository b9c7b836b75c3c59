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

// Package config loads pbxwizard settings from YAML files and the
// environment.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// Dir returns the user-level configuration directory.
//
// Resolution:
//   - $PBXWIZARD_CONFIG_HOME if set
//   - $XDG_CONFIG_HOME/pbxwizard if set
//   - %AppData%/pbxwizard on Windows
//   - ~/.config/pbxwizard otherwise
func Dir() string {
	if dir := os.Getenv("PBXWIZARD_CONFIG_HOME"); dir != "" {
		return dir
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "pbxwizard")
	}
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "pbxwizard")
		}
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "pbxwizard")
}
