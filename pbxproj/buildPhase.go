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
package pbxproj

import (
	"github.com/soapywu/pbxwizard/pbxparser"
)

const (
	UPLOAD_SCRIPT_PHASE_NAME = "Upload Debug Symbols to Sentry"
	DEFAULT_SHELL_PATH       = "/bin/sh"
)

func emptyList() []interface{} {
	return []interface{}{}
}

func quotedList(values []string) []interface{} {
	list := make([]interface{}, 0, len(values))
	for _, v := range values {
		list = append(list, pbxparser.QuoteIfNeeded(v))
	}
	return list
}

type pbxShellScriptBuildPhaseObjOptions struct {
	InputPaths  []string
	OutputPaths []string
	ShellScript string
	ShellPath   string
}

func pbxShellScriptBuildPhaseObj(options pbxShellScriptBuildPhaseObjOptions, phaseName string) pbxparser.Object {
	shellPath := options.ShellPath
	if shellPath == "" {
		shellPath = DEFAULT_SHELL_PATH
	}
	obj := pbxparser.NewObject()
	obj.Set("isa", PBX_SHELL_SCRIPT_BUILD_PHASE)
	obj.Set("buildActionMask", DEFAULT_BUILD_ACT_MASK)
	obj.Set("files", emptyList())
	obj.Set("inputFileListPaths", emptyList())
	obj.Set("inputPaths", quotedList(options.InputPaths))
	obj.Set("name", pbxparser.QuoteIfNeeded(phaseName))
	obj.Set("outputFileListPaths", emptyList())
	obj.Set("outputPaths", quotedList(options.OutputPaths))
	obj.Set("runOnlyForDeploymentPostprocessing", 0)
	obj.Set("shellPath", shellPath)
	obj.Set("shellScript", pbxparser.Quote(options.ShellScript))
	return obj
}

// removeOrphanedScriptPhases drops upload phase references that point at
// nothing from every target. Returns the number of references removed.
func (p *XcodeProject) removeOrphanedScriptPhases() int {
	removed := 0
	p.objectsOfType(PBX_NATIVE_TARGET, func(_ string, target pbxparser.Object) pbxparser.IterateActionType {
		removed += removeFromObjectList(target, "buildPhases", func(v interface{}) bool {
			ref, ok := toCommentValue(v)
			if !ok || ref.Comment != UPLOAD_SCRIPT_PHASE_NAME {
				return false
			}
			_, exists := p.resolve(PBX_SHELL_SCRIPT_BUILD_PHASE, ref.Value)
			return !exists
		}, true)
		return pbxparser.IterateActionContinue
	})
	return removed
}

// uploadScriptPhase finds the upload phase the target already carries.
func (p *XcodeProject) uploadScriptPhase(target NativeTarget) (pbxparser.Object, bool) {
	for _, ref := range references(target.Object, "buildPhases") {
		if ref.Comment != UPLOAD_SCRIPT_PHASE_NAME {
			continue
		}
		if phase, ok := p.resolve(PBX_SHELL_SCRIPT_BUILD_PHASE, ref.Value); ok {
			return phase, true
		}
	}
	return pbxparser.Object{}, false
}

// AddOrUpdateUploadScript makes sure the named target runs script as its
// debug symbol upload phase. An existing phase is updated in place, so
// repeating the call with the same arguments changes nothing. Dangling
// upload phase references are first removed from all targets. Unknown
// targets are ignored.
func (p *XcodeProject) AddOrUpdateUploadScript(targetName, script string, inputPaths []string) {
	p.removeOrphanedScriptPhases()

	target, ok := p.FindTarget(targetName)
	if !ok {
		return
	}

	if phase, ok := p.uploadScriptPhase(target); ok {
		phase.Set("shellScript", pbxparser.Quote(script))
		phase.Set("inputPaths", quotedList(inputPaths))
		return
	}

	phase := pbxShellScriptBuildPhaseObj(pbxShellScriptBuildPhaseObjOptions{
		InputPaths:  inputPaths,
		ShellScript: script,
	}, UPLOAD_SCRIPT_PHASE_NAME)
	id := p.addObject(PBX_SHELL_SCRIPT_BUILD_PHASE, phase, UPLOAD_SCRIPT_PHASE_NAME)

	// A target without a buildPhases list keeps the phase unattached.
	if _, ok := target.GetArray("buildPhases"); ok {
		addToObjectList(target.Object, "buildPhases", CommentValue{Value: id, Comment: UPLOAD_SCRIPT_PHASE_NAME}.ToObject())
	}
}
