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
package cmd

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/soapywu/pbxwizard/internal/config"
	"github.com/soapywu/pbxwizard/internal/output"
	"github.com/soapywu/pbxwizard/internal/wizard"
	"github.com/soapywu/pbxwizard/pbxproj"
)

// editFunc changes the project in memory and describes what it did.
type editFunc func(project *pbxproj.XcodeProject) (map[string]any, error)

// runEdit opens the project, applies edit to the named target and then
// saves, or prints a diff when --dry-run is set.
func runEdit(cmd *cobra.Command, target string, edit editFunc) error {
	printer := newPrinter(cmd)
	project, err := openProject(cmd)
	if err != nil {
		return fail(printer, err)
	}
	if err := requireTarget(project, target); err != nil {
		return fail(printer, err)
	}

	before := project.Bytes()
	summary, err := edit(project)
	if err != nil {
		return fail(printer, err)
	}
	after := project.Bytes()
	summary["target"] = target
	summary["changed"] = !bytes.Equal(before, after)

	dryRun, _ := cmd.Flags().GetBool("dry-run")
	if dryRun {
		diff := wizard.UnifiedDiff(filepath.Base(filepath.Dir(project.FilePath()))+"/"+pbxproj.PROJECT_FILE_NAME, string(before), string(after))
		if printer.IsJSON() {
			summary["status"] = "dry_run"
			summary["diff"] = diff
			return printer.Success(summary)
		}
		if diff == "" {
			printer.Print("No changes.\n")
			return nil
		}
		printer.Print("%s", diff)
		return nil
	}

	if summary["changed"] == true {
		if err := project.Save(); err != nil {
			return fail(printer, output.NewSystemErrorWithCause("saving project", err))
		}
	}
	summary["status"] = "ok"
	return printer.Success(summary)
}

func newUploadScriptCmd() *cobra.Command {
	var scriptFile string
	var inputPaths []string

	cmd := &cobra.Command{
		Use:   "upload-script <target>",
		Short: "Add or update the debug symbol upload build phase",
		Long: `Add or update the debug symbol upload build phase of a target.

Without --script-file the built-in sentry-cli upload script is used, filled
in from pbxwizard.yaml and SENTRY_* variables. Running the command twice
with the same arguments leaves the project unchanged.

Examples:
  pbxwizard upload-script App
  pbxwizard upload-script App --script-file scripts/upload.sh --input-path '$(SRCROOT)/App'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			script, err := uploadScript(scriptFile)
			if err != nil {
				return fail(newPrinter(cmd), err)
			}
			if !cmd.Flags().Changed("input-path") {
				inputPaths = []string{wizard.DSYM_INPUT_PATH}
			}
			return runEdit(cmd, args[0], func(project *pbxproj.XcodeProject) (map[string]any, error) {
				project.AddOrUpdateUploadScript(args[0], script, inputPaths)
				return map[string]any{
					"message": "Upload phase is set up for " + args[0],
					"phase":   pbxproj.UPLOAD_SCRIPT_PHASE_NAME,
				}, nil
			})
		},
	}

	cmd.Flags().StringVar(&scriptFile, "script-file", "", "Read the shell script from this file")
	cmd.Flags().StringArrayVar(&inputPaths, "input-path", nil, "Input path of the phase (repeatable)")
	cmd.Flags().Bool("dry-run", false, "Print the diff instead of saving")
	return cmd
}

func uploadScript(scriptFile string) (string, error) {
	if scriptFile != "" {
		data, err := os.ReadFile(scriptFile)
		if err != nil {
			return "", output.NewUserErrorWithCause("reading script file", err)
		}
		return string(data), nil
	}
	cfg, err := config.Load(".")
	if err != nil {
		return "", output.NewUserErrorWithCause("loading configuration", err)
	}
	if cfg.Org == "" || cfg.Project == "" {
		return "", output.NewUserError("set org and project in " + config.ProjectFileName + " or SENTRY_ORG/SENTRY_PROJECT, or pass --script-file")
	}
	return uploadTemplate(cfg)
}

func newDebugSettingsCmd() *cobra.Command {
	var disable bool

	cmd := &cobra.Command{
		Use:   "debug-settings <target>",
		Short: "Build dSYMs in every configuration of a target",
		Long: `Set DEBUG_INFORMATION_FORMAT to dwarf-with-dsym in every build
configuration of a target, and turn off user script sandboxing so the
upload phase can read the dSYMs.

--disable is accepted but never reverts settings.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, args[0], func(project *pbxproj.XcodeProject) (map[string]any, error) {
				project.PatchDebugSymbolSettings(args[0], !disable)
				return map[string]any{
					"message":  "Debug symbol settings checked for " + args[0],
					"settings": project.BuildSetting(args[0], pbxproj.DEBUG_INFORMATION_FORMAT),
				}, nil
			})
		},
	}

	cmd.Flags().BoolVar(&disable, "disable", false, "Leave the settings as they are")
	cmd.Flags().Bool("dry-run", false, "Print the diff instead of saving")
	return cmd
}

func newAddPackageCmd() *cobra.Command {
	var url, product, minVersion string

	cmd := &cobra.Command{
		Use:   "add-package <target>",
		Short: "Link a Swift package product into a target",
		Long: `Add a remote Swift package to the project and link one of its
products into a target. An existing reference to the same repository is
reused.

Examples:
  pbxwizard add-package App
  pbxwizard add-package App --url https://github.com/getsentry/sentry-cocoa/ --product Sentry --min-version 8.0.0`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if product == "" {
				return output.NewUserError("--product must name a package product")
			}
			return runEdit(cmd, args[0], func(project *pbxproj.XcodeProject) (map[string]any, error) {
				project.AddPackageDependency(args[0], url, product, minVersion)
				return map[string]any{
					"message": product + " is linked into " + args[0],
					"package": url,
					"product": product,
				}, nil
			})
		},
	}

	cmd.Flags().StringVar(&url, "url", config.DefaultPackageURL, "Repository URL of the package")
	cmd.Flags().StringVar(&product, "product", config.DefaultPackageProduct, "Product to link")
	cmd.Flags().StringVar(&minVersion, "min-version", config.DefaultMinVersion, "Lowest accepted version, up to the next major")
	cmd.Flags().Bool("dry-run", false, "Print the diff instead of saving")
	return cmd
}
