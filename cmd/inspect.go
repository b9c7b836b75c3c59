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
	"path/filepath"

	"github.com/spf13/cobra"
)

func newTargetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "targets",
		Short: "List the native targets of the project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printer := newPrinter(cmd)
			project, err := openProject(cmd)
			if err != nil {
				return fail(printer, err)
			}
			return printer.List("targets", project.Targets())
		},
	}
}

func newSourcesCmd() *cobra.Command {
	var relative bool

	cmd := &cobra.Command{
		Use:   "sources <target>",
		Short: "List the source files a target compiles",
		Long: `List the source files a target compiles.

Files come from the target's Sources build phase and from its
synchronized folders. Paths are absolute unless --relative is given.

Examples:
  pbxwizard sources App
  pbxwizard sources App --relative --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			printer := newPrinter(cmd)
			project, err := openProject(cmd)
			if err != nil {
				return fail(printer, err)
			}
			if err := requireTarget(project, args[0]); err != nil {
				return fail(printer, err)
			}
			files, _ := project.SourceFilesForTarget(args[0])
			if relative {
				for i, file := range files {
					if rel, err := filepath.Rel(project.BaseDir(), file); err == nil {
						files[i] = rel
					}
				}
			}
			if len(files) == 0 && !printer.IsJSON() {
				printer.Warn("target %s has no source files", args[0])
				return nil
			}
			return printer.List("sources", files)
		},
	}

	cmd.Flags().BoolVar(&relative, "relative", false, "Print paths relative to the project directory")
	return cmd
}

