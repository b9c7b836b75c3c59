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

// Package dotfiles edits the small hidden files the upload tooling reads:
// .sentryclirc, .gitignore and .env.
package dotfiles

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	CLIRC_FILE_NAME     = ".sentryclirc"
	GITIGNORE_FILE_NAME = ".gitignore"
)

func readLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	text := strings.TrimRight(string(data), "\n")
	if text == "" {
		return nil, nil
	}
	return strings.Split(text, "\n"), nil
}

func writeLines(path string, lines []string, perm os.FileMode) error {
	return os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), perm)
}

// EnsureGitignoreEntry appends entry to dir/.gitignore unless a line already
// matches it. Reports whether the file changed.
func EnsureGitignoreEntry(dir, entry string) (bool, error) {
	path := filepath.Join(dir, GITIGNORE_FILE_NAME)
	lines, err := readLines(path)
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", path, err)
	}
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == entry || line == "/"+entry {
			return false, nil
		}
	}
	if err := writeLines(path, append(lines, entry), 0o644); err != nil {
		return false, fmt.Errorf("writing %s: %w", path, err)
	}
	return true, nil
}

// WriteCLIRC writes the auth token, and the server URL when given, to
// dir/.sentryclirc. Other sections of an existing file are preserved.
func WriteCLIRC(dir, token, url string) (string, error) {
	path := filepath.Join(dir, CLIRC_FILE_NAME)
	lines, err := readLines(path)
	if err != nil {
		return path, fmt.Errorf("reading %s: %w", path, err)
	}
	lines = setIniValue(lines, "auth", "token", token)
	if url != "" {
		lines = setIniValue(lines, "defaults", "url", url)
	}
	if err := writeLines(path, lines, 0o600); err != nil {
		return path, fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

func sectionName(line string) (string, bool) {
	line = strings.TrimSpace(line)
	if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
		return strings.TrimSpace(line[1 : len(line)-1]), true
	}
	return "", false
}

// setIniValue replaces key inside [section], adding the key or the whole
// section when missing.
func setIniValue(lines []string, section, key, value string) []string {
	entry := key + "=" + value
	current := ""
	sectionEnd := -1
	for i, line := range lines {
		if name, ok := sectionName(line); ok {
			current = name
			if name == section {
				sectionEnd = i + 1
			}
			continue
		}
		if current != section || strings.TrimSpace(line) == "" {
			continue
		}
		sectionEnd = i + 1
		k, _, found := strings.Cut(line, "=")
		if found && strings.TrimSpace(k) == key {
			lines[i] = entry
			return lines
		}
	}

	if sectionEnd < 0 {
		if len(lines) > 0 {
			lines = append(lines, "")
		}
		return append(lines, "["+section+"]", entry)
	}

	result := make([]string, 0, len(lines)+1)
	result = append(result, lines[:sectionEnd]...)
	result = append(result, entry)
	return append(result, lines[sectionEnd:]...)
}

// SetEnvVar updates KEY in a dotenv file or appends it.
func SetEnvVar(path, key, value string) error {
	lines, err := readLines(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	entry := key + "=" + value
	replaced := false
	for i, line := range lines {
		k, _, found := strings.Cut(strings.TrimSpace(line), "=")
		if !found {
			continue
		}
		if strings.TrimSpace(strings.TrimPrefix(k, "export ")) == key {
			lines[i] = entry
			replaced = true
		}
	}
	if !replaced {
		lines = append(lines, entry)
	}
	if err := writeLines(path, lines, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
