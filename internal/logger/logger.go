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

// Package logger provides the leveled, colored console logging used by the
// command line layer. The project file packages never log.
package logger

import (
	"github.com/fatih/color"
)

// Info logs progress in green.
var Info = color.New(color.FgGreen).PrintfFunc()

// Warn logs recoverable problems in bright magenta.
var Warn = color.New(color.FgHiMagenta).PrintfFunc()

// Error logs failures in red.
var Error = color.New(color.FgRed).PrintfFunc()

// Debug logs in cyan once Init(true) has run, and is a no-op otherwise.
var Debug = func(format string, a ...any) {}

// Init turns debug logging on or off. Called from the root command before
// any subcommand runs.
func Init(enableDebug bool) {
	debugEnabled = enableDebug
	if enableDebug {
		Debug = color.New(color.FgCyan).PrintfFunc()
	} else {
		Debug = func(format string, a ...any) {}
	}
}

// DebugEnabled reports whether Init turned debug logging on.
func DebugEnabled() bool {
	return debugEnabled
}

var debugEnabled bool
