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

// Package cmd holds the pbxwizard command line.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/soapywu/pbxwizard/internal/config"
	"github.com/soapywu/pbxwizard/internal/detect"
	"github.com/soapywu/pbxwizard/internal/envfile"
	"github.com/soapywu/pbxwizard/internal/logger"
	"github.com/soapywu/pbxwizard/internal/output"
	"github.com/soapywu/pbxwizard/pbxproj"
)

// Build info set via ldflags.
var (
	version = "dev"
	commit  = "none"
)

func buildVersion() string {
	if commit == "none" {
		return version
	}
	short := commit
	if len(short) > 7 {
		short = short[:7]
	}
	return fmt.Sprintf("%s (%s)", version, short)
}

// Execute runs the command line and returns the process exit code.
func Execute() int {
	err := fang.Execute(context.Background(), newRootCmd(), fang.WithVersion(buildVersion()))
	return output.GetExitCode(err)
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pbxwizard",
		Short: "Wire crash reporting into Xcode projects",
		Long: `pbxwizard edits Xcode project files in place.

It can list targets and their sources, add the debug symbol upload phase,
switch targets to dSYM builds, add Swift packages, or run the whole Apple
setup in one guided pass with "pbxwizard apple".

All commands support --json for structured output.`,
		Version:       buildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			logger.Init(debug)
			loadEnvFiles()
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if isJSONMode(cmd) {
				err := output.NewUserError("no command specified. Run 'pbxwizard --help' for usage")
				newPrinter(cmd).Error(err)
				return err
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	cmd.PersistentFlags().StringP("project", "p", "", "Path to the .xcodeproj bundle or its project.pbxproj")

	lipgloss.SetHasDarkBackground(true)

	cmd.AddGroup(&cobra.Group{ID: "inspect", Title: "Inspect Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "edit", Title: "Edit Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "setup", Title: "Setup Commands:"})

	addGroupedCommand(cmd, newTargetsCmd(), "inspect")
	addGroupedCommand(cmd, newSourcesCmd(), "inspect")
	addGroupedCommand(cmd, newUploadScriptCmd(), "edit")
	addGroupedCommand(cmd, newDebugSettingsCmd(), "edit")
	addGroupedCommand(cmd, newAddPackageCmd(), "edit")
	addGroupedCommand(cmd, newAppleCmd(), "setup")
	return cmd
}

func addGroupedCommand(parent, child *cobra.Command, groupID string) {
	child.GroupID = groupID
	parent.AddCommand(child)
}

// loadEnvFiles applies .env.local, then .env, then the global env file.
// Variables already in the environment win.
func loadEnvFiles() {
	_ = envfile.Load(".env.local")
	_ = envfile.Load(".env")
	if dir := config.Dir(); dir != "" {
		_ = envfile.Load(filepath.Join(dir, "env"))
	}
}

func isJSONMode(cmd *cobra.Command) bool {
	flag := cmd.Flags().Lookup("json")
	if flag == nil {
		flag = cmd.Root().PersistentFlags().Lookup("json")
	}
	return flag != nil && flag.Value.String() == "true"
}

func newPrinter(cmd *cobra.Command) *output.Printer {
	return output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), output.IsTTY(cmd.OutOrStdout())).
		WithStderr(cmd.ErrOrStderr())
}

// projectPath returns --project, or the only Xcode project below the
// working directory.
func projectPath(cmd *cobra.Command) (string, error) {
	if path, _ := cmd.Flags().GetString("project"); path != "" {
		return path, nil
	}
	projects, err := detect.FindXcodeProjects(".")
	if err != nil {
		return "", output.NewSystemErrorWithCause("searching for Xcode projects", err)
	}
	switch len(projects) {
	case 0:
		return "", output.NewUserError("no Xcode project found; pass --project")
	case 1:
		return projects[0], nil
	}
	return "", output.NewUserError("several Xcode projects found, pass --project: " + strings.Join(projects, ", "))
}

func openProject(cmd *cobra.Command) (*pbxproj.XcodeProject, error) {
	path, err := projectPath(cmd)
	if err != nil {
		return nil, err
	}
	project, err := pbxproj.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, output.NewUserErrorWithCause("no project at "+path, err)
		}
		return nil, output.NewSystemErrorWithCause("opening project", err)
	}
	logger.Debug("[DEBUG] opened %s\n", project.FilePath())
	return project, nil
}

// requireTarget turns an unknown target name into a user error.
func requireTarget(project *pbxproj.XcodeProject, name string) error {
	if _, ok := project.FindTarget(name); ok {
		return nil
	}
	return output.NewUserError(fmt.Sprintf("no target named %q; known targets: %s", name, strings.Join(project.Targets(), ", ")))
}

// fail prints err and hands it back for the exit code.
func fail(printer *output.Printer, err error) error {
	printer.Error(err)
	return err
}
