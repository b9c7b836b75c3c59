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
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	ProjectFileName = "pbxwizard.yaml"
	GlobalFileName  = "config.yaml"

	DefaultPackageURL     = "https://github.com/getsentry/sentry-cocoa/"
	DefaultPackageProduct = "Sentry"
	DefaultMinVersion     = "8.0.0"
	DefaultURL            = "https://sentry.io/"
)

// Config holds everything the Apple setup flow needs to know up front.
// Empty fields are asked for interactively.
type Config struct {
	Org                 string `yaml:"org"`
	Project             string `yaml:"project"`
	DSN                 string `yaml:"dsn"`
	URL                 string `yaml:"url"`
	AuthToken           string `yaml:"auth_token"`
	PackageURL          string `yaml:"package_url"`
	PackageProduct      string `yaml:"package_product"`
	MinimumVersion      string `yaml:"minimum_version"`
	UploadSource        bool   `yaml:"upload_source"`
	IncludeHomebrewPath bool   `yaml:"include_homebrew_path"`
}

func Default() Config {
	return Config{
		URL:                 DefaultURL,
		PackageURL:          DefaultPackageURL,
		PackageProduct:      DefaultPackageProduct,
		MinimumVersion:      DefaultMinVersion,
		UploadSource:        true,
		IncludeHomebrewPath: true,
	}
}

// envOverrides maps environment variables onto Config fields.
var envOverrides = []struct {
	key string
	set func(c *Config, v string)
}{
	{"SENTRY_ORG", func(c *Config, v string) { c.Org = v }},
	{"SENTRY_PROJECT", func(c *Config, v string) { c.Project = v }},
	{"SENTRY_DSN", func(c *Config, v string) { c.DSN = v }},
	{"SENTRY_URL", func(c *Config, v string) { c.URL = v }},
	{"SENTRY_AUTH_TOKEN", func(c *Config, v string) { c.AuthToken = v }},
}

// Load builds the configuration for a project directory. Later sources
// override earlier ones: defaults, Dir()/config.yaml, the project's
// pbxwizard.yaml, then SENTRY_* environment variables. Missing files are
// not an error.
func Load(projectDir string) (Config, error) {
	cfg := Default()
	files := []string{}
	if dir := Dir(); dir != "" {
		files = append(files, filepath.Join(dir, GlobalFileName))
	}
	if projectDir != "" {
		files = append(files, filepath.Join(projectDir, ProjectFileName))
	}
	for _, file := range files {
		if err := mergeFile(&cfg, file); err != nil {
			return Config{}, err
		}
	}
	ApplyEnv(&cfg)
	return cfg, nil
}

func mergeFile(cfg *Config, path string) error {
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

// ApplyEnv copies non-empty SENTRY_* variables into cfg.
func ApplyEnv(cfg *Config) {
	for _, o := range envOverrides {
		if v := os.Getenv(o.key); v != "" {
			o.set(cfg, v)
		}
	}
}

// Save writes cfg to path as YAML, leaving out the auth token.
func Save(path string, cfg Config) error {
	cfg.AuthToken = ""
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	return nil
}

// Missing lists the project identity fields that are still empty.
func (c Config) Missing() []string {
	var missing []string
	if c.Org == "" {
		missing = append(missing, "org")
	}
	if c.Project == "" {
		missing = append(missing, "project")
	}
	if c.DSN == "" {
		missing = append(missing, "dsn")
	}
	return missing
}
