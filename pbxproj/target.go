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

// NativeTarget is a PBXNativeTarget together with its id.
type NativeTarget struct {
	pbxparser.ObjectWithUUID
}

func (t NativeTarget) Name() string {
	return unquoted(t.GetString("name"))
}

// FindTarget returns the first native target named name. The comparison
// is exact and case-sensitive; duplicates resolve to the earliest entry.
func (p *XcodeProject) FindTarget(name string) (NativeTarget, bool) {
	var found NativeTarget
	ok := false
	p.objectsOfType(PBX_NATIVE_TARGET, func(id string, obj pbxparser.Object) pbxparser.IterateActionType {
		if unquoted(obj.GetString("name")) == name {
			found = NativeTarget{pbxparser.ObjectWithUUID{Object: obj, UUID: id}}
			ok = true
			return pbxparser.IterateActionBreak
		}
		return pbxparser.IterateActionContinue
	})
	return found, ok
}

// buildPhaseOfType returns the first phase of the given isa that the
// target lists.
func (p *XcodeProject) buildPhaseOfType(target NativeTarget, isa string) (pbxparser.ObjectWithUUID, bool) {
	for _, ref := range references(target.Object, "buildPhases") {
		if phase, ok := p.resolve(isa, ref.Value); ok {
			return pbxparser.ObjectWithUUID{Object: phase, UUID: ref.Value}, true
		}
	}
	return pbxparser.ObjectWithUUID{}, false
}

// buildConfigurations returns the configurations of the target's own
// configuration list.
func (p *XcodeProject) buildConfigurations(target NativeTarget) []pbxparser.ObjectWithUUID {
	list, ok := p.resolve(XC_CONFIGURATION_LIST, target.GetString("buildConfigurationList"))
	if !ok {
		return nil
	}
	var configs []pbxparser.ObjectWithUUID
	for _, ref := range references(list, "buildConfigurations") {
		if config, ok := p.resolve(XC_BUILD_CONFIGURATION, ref.Value); ok {
			configs = append(configs, pbxparser.ObjectWithUUID{Object: config, UUID: ref.Value})
		}
	}
	return configs
}
