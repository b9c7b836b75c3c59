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

// Package output renders command results for people and for scripts.
//
// A Printer writes either styled text (lipgloss, only when the writer is a
// terminal) or JSON when --json is set:
//
//	printer := output.NewPrinter(cmd.OutOrStdout(), jsonMode, output.IsTTY(cmd.OutOrStdout()))
//	printer.List("Targets", names)
//	printer.Error(err)
//
// Errors that should end the process with a specific status are ExitErrors:
//
//	output.ExitSuccess     // 0
//	output.ExitUserError   // 1: bad arguments, unknown target, aborted prompt
//	output.ExitSystemError // 2: I/O or parse failure, external tool failure
//	output.ExitConflict    // 3: project changed underneath us
package output
