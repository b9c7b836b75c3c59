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
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/soapywu/pbxwizard/internal/config"
	"github.com/soapywu/pbxwizard/internal/logger"
	"github.com/soapywu/pbxwizard/internal/output"
	"github.com/soapywu/pbxwizard/internal/prompt"
	"github.com/soapywu/pbxwizard/internal/telemetry"
	"github.com/soapywu/pbxwizard/internal/templates"
	"github.com/soapywu/pbxwizard/internal/wizard"
)

func uploadTemplate(cfg config.Config) (string, error) {
	script, err := templates.UploadSymbolsScript(templates.UploadOptions{
		Org:           cfg.Org,
		Project:       cfg.Project,
		URL:           cfg.URL,
		IncludeSource: cfg.UploadSource,
		HomebrewPath:  cfg.IncludeHomebrewPath,
	})
	if err != nil {
		return "", output.NewSystemErrorWithCause("rendering upload script", err)
	}
	return script, nil
}

func newAppleCmd() *cobra.Command {
	var dryRun, nonInteractive, noTelemetry bool

	cmd := &cobra.Command{
		Use:   "apple",
		Short: "Set up crash reporting for an Apple project",
		Long: `Run the guided setup for an iOS or macOS app:

  1. find the Xcode project and pick a target
  2. add the SDK with Swift Package Manager or CocoaPods
  3. add the debug symbol upload phase and enable dSYM builds
  4. write .sentryclirc with the auth token
  5. start the SDK from the app's entry point

Answers come from pbxwizard.yaml, SENTRY_* variables and prompts.
--non-interactive never prompts and fails on missing required values.

Examples:
  pbxwizard apple
  pbxwizard apple --dry-run
  SENTRY_ORG=acme SENTRY_PROJECT=ios pbxwizard apple --non-interactive`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printer := newPrinter(cmd)
			cfg, err := config.Load(".")
			if err != nil {
				return fail(printer, output.NewUserErrorWithCause("loading configuration", err))
			}

			opts := wizard.Options{
				Dir:       ".",
				Config:    cfg,
				DryRun:    dryRun,
				Telemetry: telemetry.NewLogReporter(),
			}
			opts.ProjectPath, _ = cmd.Flags().GetString("project")
			if noTelemetry {
				opts.Telemetry = telemetry.Noop{}
			}
			if nonInteractive || printer.IsJSON() {
				if missing := cfg.Missing(); len(missing) > 0 {
					logger.Warn("[WARN] Not configured: %s\n", strings.Join(missing, ", "))
				}
				opts.Prompter = prompt.Defaults()
			} else {
				opts.Prompter = prompt.NewTerminal(cmd.InOrStdin(), cmd.ErrOrStderr(), output.IsTTY(cmd.ErrOrStderr()))
			}

			result, err := wizard.RunApple(cmd.Context(), opts)
			if err != nil {
				return fail(printer, err)
			}
			if printer.IsJSON() {
				return printer.WriteJSON(result)
			}
			printResult(printer, result, dryRun)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show the changes without writing files")
	cmd.Flags().BoolVar(&nonInteractive, "non-interactive", false, "Never prompt; use configuration and defaults")
	cmd.Flags().BoolVar(&noTelemetry, "disable-telemetry", os.Getenv("PBXWIZARD_DISABLE_TELEMETRY") != "", "Do not record step timings")
	return cmd
}

func printResult(printer *output.Printer, result wizard.Result, dryRun bool) {
	if dryRun {
		printer.Section("Planned changes")
		if result.Diff == "" {
			printer.Println("Nothing to change.")
		} else {
			printer.Print("%s", result.Diff)
		}
	} else {
		printer.Section("Setup complete")
	}
	printer.KeyValue("Project", result.ProjectPath)
	printer.KeyValue("Target", result.Target)
	printer.KeyValue("Package manager", result.PackageManager)
	if result.CLIRCPath != "" {
		printer.KeyValue("sentry-cli config", result.CLIRCPath)
	}
	if result.EntryFile != "" {
		printer.KeyValue("SDK started in", result.EntryFile)
	}
	if result.ManualSnippet != "" {
		printer.Warn("add this to your app's startup code:\n%s", result.ManualSnippet)
	}
}
