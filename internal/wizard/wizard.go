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

// Package wizard runs the guided setup that wires the Sentry SDK into an
// Apple project.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/soapywu/pbxwizard/internal/codetools"
	"github.com/soapywu/pbxwizard/internal/config"
	"github.com/soapywu/pbxwizard/internal/detect"
	"github.com/soapywu/pbxwizard/internal/dotfiles"
	"github.com/soapywu/pbxwizard/internal/logger"
	"github.com/soapywu/pbxwizard/internal/output"
	"github.com/soapywu/pbxwizard/internal/pkgmanager"
	"github.com/soapywu/pbxwizard/internal/prompt"
	"github.com/soapywu/pbxwizard/internal/telemetry"
	"github.com/soapywu/pbxwizard/internal/templates"
	"github.com/soapywu/pbxwizard/pbxproj"
)

// DSYM_INPUT_PATH lets Xcode schedule the upload phase after the dSYM exists.
const DSYM_INPUT_PATH = "${DWARF_DSYM_FOLDER_PATH}/${DWARF_DSYM_FILE_NAME}/Contents/Resources/DWARF/${TARGET_NAME}"

// ENV_LOCAL_FILE_NAME receives typed auth tokens; config loading reads it.
const ENV_LOCAL_FILE_NAME = ".env.local"

type Options struct {
	// Dir is searched for Xcode projects and holds the Podfile.
	Dir string
	// ProjectPath skips the search when set.
	ProjectPath string
	Config      config.Config
	Prompter    prompt.Prompter
	Telemetry   telemetry.Reporter
	// DryRun leaves every file alone and collects diffs instead.
	DryRun bool
	// BuildEnv overrides SDK lookups for source collection.
	BuildEnv  pbxproj.BuildEnvironment
	CocoaPods *pkgmanager.CocoaPods
}

// Result describes what a run did, or would do on a dry run.
type Result struct {
	ProjectPath    string `json:"project"`
	Target         string `json:"target"`
	PackageManager string `json:"package_manager"`
	CLIRCPath      string `json:"clirc,omitempty"`
	EntryFile      string `json:"entry_file,omitempty"`
	// ManualSnippet is set when no entry file could be edited.
	ManualSnippet string `json:"manual_snippet,omitempty"`
	Diff          string `json:"diff,omitempty"`
}

type run struct {
	opts    Options
	cfg     config.Config
	result  *Result
	info    detect.Info
	project *pbxproj.XcodeProject
	// original holds project.pbxproj as read, for the dry-run diff.
	original []byte
	diffs    strings.Builder
	// tokenAnswered is set when the auth token was typed in.
	tokenAnswered bool
}

func (o Options) withDefaults() (Options, error) {
	if o.Dir == "" {
		o.Dir = "."
	}
	dir, err := filepath.Abs(o.Dir)
	if err != nil {
		return o, output.NewSystemErrorWithCause("resolving project directory", err)
	}
	o.Dir = dir
	if o.Prompter == nil {
		o.Prompter = prompt.Defaults()
	}
	if o.Telemetry == nil {
		o.Telemetry = telemetry.Noop{}
	}
	if o.CocoaPods == nil {
		o.CocoaPods = pkgmanager.NewCocoaPods()
	}
	return o, nil
}

// RunApple adds the SDK, the debug symbol upload phase and the init call
// to an Apple project.
func RunApple(ctx context.Context, opts Options) (Result, error) {
	var result Result
	opts, err := opts.withDefaults()
	if err != nil {
		return result, err
	}
	r := &run{opts: opts, cfg: opts.Config, result: &result}

	steps := []struct {
		name string
		fn   func(ctx context.Context) error
	}{
		{"detect", r.selectProject},
		{"configure", r.resolveConfig},
		{"select-target", r.selectTarget},
		{"install-package", r.installPackage},
		{"upload-script", r.addUploadScript},
		{"debug-settings", r.patchDebugSettings},
		{"save-project", r.saveProject},
		{"cli-config", r.writeCLIConfig},
		{"code-snippet", r.injectSnippet},
	}
	for _, step := range steps {
		if err = ctx.Err(); err != nil {
			break
		}
		if err = telemetry.Trace(opts.Telemetry, step.name, func() error { return step.fn(ctx) }); err != nil {
			break
		}
	}

	switch {
	case err == nil:
		opts.Telemetry.Finish(telemetry.STATUS_SUCCESS)
	case errors.Is(err, prompt.ErrAborted), errors.Is(err, context.Canceled):
		opts.Telemetry.Finish(telemetry.STATUS_CANCELLED)
	default:
		opts.Telemetry.Finish(telemetry.STATUS_FAILURE)
	}
	if errors.Is(err, prompt.ErrAborted) {
		err = output.NewUserErrorWithCause("setup cancelled", err)
	}
	result.Diff = r.diffs.String()
	return result, err
}

func (r *run) selectProject(_ context.Context) error {
	info, err := detect.Detect(r.opts.Dir)
	if err != nil {
		return output.NewSystemErrorWithCause("detecting project", err)
	}
	r.info = info

	path := r.opts.ProjectPath
	if path == "" {
		switch len(info.XcodeProjects) {
		case 0:
			if info.IsAppleProject() {
				return output.NewUserError("found Package.swift but no Xcode project; open the package in Xcode and add an app project first")
			}
			return output.NewUserError(fmt.Sprintf("no Xcode project found in %s", r.opts.Dir))
		case 1:
			path = info.XcodeProjects[0]
		default:
			choices := make([]string, len(info.XcodeProjects))
			for i, p := range info.XcodeProjects {
				choices[i] = r.relative(p)
			}
			idx, err := r.opts.Prompter.Select("Which Xcode project should be set up?", choices)
			if err != nil {
				return err
			}
			path = info.XcodeProjects[idx]
		}
	}

	var options []pbxproj.Option
	if r.opts.BuildEnv != nil {
		options = append(options, pbxproj.WithBuildEnvironment(r.opts.BuildEnv))
	}
	project, err := pbxproj.Open(path, options...)
	if err != nil {
		return output.NewUserErrorWithCause("cannot open Xcode project", err)
	}
	original, err := os.ReadFile(project.FilePath())
	if err != nil {
		return output.NewSystemErrorWithCause("reading project file", err)
	}
	r.project = project
	r.original = original
	r.result.ProjectPath = project.FilePath()
	logger.Info("[INFO] Using Xcode project %s\n", r.relative(project.FilePath()))
	return nil
}

func (r *run) relative(path string) string {
	if rel, err := filepath.Rel(r.opts.Dir, path); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}
	return path
}

func (r *run) resolveConfig(_ context.Context) error {
	questions := []struct {
		value    *string
		message  string
		required bool
	}{
		{&r.cfg.Org, "Sentry organization slug", true},
		{&r.cfg.Project, "Sentry project slug", true},
		{&r.cfg.DSN, "Project DSN (leave empty to skip the init code)", false},
		{&r.cfg.AuthToken, "Auth token for sentry-cli (leave empty to skip .sentryclirc)", false},
	}
	answered := false
	for _, q := range questions {
		if *q.value != "" {
			continue
		}
		answer, err := r.opts.Prompter.Input(q.message, "")
		if err != nil {
			return err
		}
		*q.value = strings.TrimSpace(answer)
		if *q.value == "" && q.required {
			return output.NewUserError(q.message + " is required; set it in " + config.ProjectFileName + " or the environment")
		}
		if *q.value != "" {
			answered = true
			r.tokenAnswered = r.tokenAnswered || q.value == &r.cfg.AuthToken
		}
	}
	if !answered || r.opts.DryRun {
		return nil
	}
	return r.saveAnswers()
}

// saveAnswers offers to keep typed answers for the next run. The auth
// token goes to .env.local, never to the YAML file.
func (r *run) saveAnswers() error {
	save, err := r.opts.Prompter.Confirm("Save these answers to "+config.ProjectFileName+"?", true)
	if err != nil || !save {
		return err
	}
	path := filepath.Join(r.opts.Dir, config.ProjectFileName)
	if err := config.Save(path, r.cfg); err != nil {
		return output.NewSystemErrorWithCause("saving answers", err)
	}
	logger.Info("[INFO] Saved answers to %s\n", r.relative(path))

	if !r.tokenAnswered {
		return nil
	}
	envPath := filepath.Join(r.opts.Dir, ENV_LOCAL_FILE_NAME)
	if err := dotfiles.SetEnvVar(envPath, "SENTRY_AUTH_TOKEN", r.cfg.AuthToken); err != nil {
		return output.NewSystemErrorWithCause("saving auth token", err)
	}
	if _, err := dotfiles.EnsureGitignoreEntry(r.opts.Dir, ENV_LOCAL_FILE_NAME); err != nil {
		return output.NewSystemErrorWithCause("updating .gitignore", err)
	}
	return nil
}

func (r *run) selectTarget(_ context.Context) error {
	targets := r.project.Targets()
	switch len(targets) {
	case 0:
		return output.NewUserError("the Xcode project has no native targets")
	case 1:
		r.result.Target = targets[0]
	default:
		idx, err := r.opts.Prompter.Select("Which target should report errors?", targets)
		if err != nil {
			return err
		}
		r.result.Target = targets[idx]
	}
	logger.Info("[INFO] Using target %s\n", r.result.Target)
	return nil
}

func (r *run) sdkPackage() pkgmanager.Package {
	return pkgmanager.Package{
		Name:    r.cfg.PackageProduct,
		URL:     r.cfg.PackageURL,
		Version: r.cfg.MinimumVersion,
	}
}

func (r *run) installPackage(ctx context.Context) error {
	var manager pkgmanager.PackageManager = &pkgmanager.SwiftPM{Project: r.project}
	if r.opts.CocoaPods.Detect(r.opts.Dir) {
		// The preferred manager is listed first and is the default answer.
		choices := []detect.PackageManager{r.info.PreferredPackageManager(), detect.SwiftPackageManager}
		if choices[0] == detect.SwiftPackageManager {
			choices[1] = detect.CocoaPods
		}
		names := []string{choices[0].String(), choices[1].String()}
		idx, err := r.opts.Prompter.Select("A Podfile was found. How should the SDK be installed?", names)
		if err != nil {
			return err
		}
		if choices[idx] == detect.CocoaPods {
			manager = r.opts.CocoaPods
		}
	}
	r.result.PackageManager = manager.Name()

	if _, ok := manager.(*pkgmanager.CocoaPods); ok && r.opts.DryRun {
		return r.previewPodfile()
	}
	if err := manager.AddDependency(ctx, r.opts.Dir, r.result.Target, r.sdkPackage()); err != nil {
		return output.NewSystemErrorWithCause("adding the SDK with "+manager.Name(), err)
	}
	logger.Info("[INFO] Added %s with %s\n", r.cfg.PackageProduct, manager.Name())
	return nil
}

func (r *run) previewPodfile() error {
	path := filepath.Join(r.opts.Dir, pkgmanager.PodfileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return output.NewSystemErrorWithCause("reading Podfile", err)
	}
	updated, _, err := pkgmanager.AddPodToTarget(string(data), r.result.Target, r.sdkPackage())
	if err != nil {
		return output.NewUserErrorWithCause("updating Podfile", err)
	}
	r.diffs.WriteString(UnifiedDiff(r.relative(path), string(data), updated))
	return nil
}

func (r *run) addUploadScript(_ context.Context) error {
	script, err := templates.UploadSymbolsScript(templates.UploadOptions{
		Org:           r.cfg.Org,
		Project:       r.cfg.Project,
		URL:           r.cfg.URL,
		IncludeSource: r.cfg.UploadSource,
		HomebrewPath:  r.cfg.IncludeHomebrewPath,
	})
	if err != nil {
		return output.NewSystemErrorWithCause("rendering upload script", err)
	}
	r.project.AddOrUpdateUploadScript(r.result.Target, script, []string{DSYM_INPUT_PATH})
	return nil
}

func (r *run) patchDebugSettings(_ context.Context) error {
	r.project.PatchDebugSymbolSettings(r.result.Target, true)
	return nil
}

func (r *run) saveProject(_ context.Context) error {
	if r.opts.DryRun {
		r.diffs.WriteString(UnifiedDiff(r.relative(r.project.FilePath()), string(r.original), string(r.project.Bytes())))
		return nil
	}
	if err := r.project.Save(); err != nil {
		return output.NewSystemErrorWithCause("saving project", err)
	}
	logger.Info("[INFO] Saved %s\n", r.relative(r.project.FilePath()))
	return nil
}

func (r *run) writeCLIConfig(_ context.Context) error {
	if r.cfg.AuthToken == "" {
		logger.Warn("[WARN] No auth token, skipping %s\n", dotfiles.CLIRC_FILE_NAME)
		return nil
	}
	dir := r.project.BaseDir()
	url := r.cfg.URL
	if strings.TrimSuffix(url, "/") == strings.TrimSuffix(config.DefaultURL, "/") {
		url = ""
	}
	if r.opts.DryRun {
		r.result.CLIRCPath = filepath.Join(dir, dotfiles.CLIRC_FILE_NAME)
		return nil
	}

	path, err := dotfiles.WriteCLIRC(dir, r.cfg.AuthToken, url)
	if err != nil {
		return output.NewSystemErrorWithCause("writing sentry-cli config", err)
	}
	r.result.CLIRCPath = path
	if _, err := dotfiles.EnsureGitignoreEntry(dir, dotfiles.CLIRC_FILE_NAME); err != nil {
		return output.NewSystemErrorWithCause("updating .gitignore", err)
	}
	return nil
}

func (r *run) injectSnippet(_ context.Context) error {
	if r.cfg.DSN == "" {
		logger.Warn("[WARN] No DSN, skipping the SDK init code\n")
		return nil
	}
	files, _ := r.project.SourceFilesForTarget(r.result.Target)
	entry, found := codetools.FindEntry(files)

	snippet, err := templates.InitSnippet(!found || entry.Kind.IsSwift(), r.cfg.DSN)
	if err != nil {
		return output.NewSystemErrorWithCause("rendering init snippet", err)
	}
	if !found {
		logger.Warn("[WARN] Could not find the app entry point; add this to your app's startup code:\n%s", snippet)
		r.result.ManualSnippet = snippet
		return nil
	}
	r.result.EntryFile = entry.Path

	if r.opts.DryRun {
		data, err := os.ReadFile(entry.Path)
		if err != nil {
			return output.NewSystemErrorWithCause("reading entry file", err)
		}
		updated, _, err := codetools.InjectIntoSource(string(data), entry.Kind, snippet)
		if err != nil {
			r.result.ManualSnippet = snippet
			return nil
		}
		r.diffs.WriteString(UnifiedDiff(r.relative(entry.Path), string(data), updated))
		return nil
	}

	changed, err := codetools.InjectInit(entry, snippet)
	if err != nil {
		logger.Warn("[WARN] Could not edit %s (%v); add this yourself:\n%s", r.relative(entry.Path), err, snippet)
		r.result.ManualSnippet = snippet
		return nil
	}
	if changed {
		logger.Info("[INFO] Added SDK init to %s\n", r.relative(entry.Path))
	} else {
		logger.Debug("[DEBUG] %s already starts the SDK\n", entry.Path)
	}
	return nil
}
