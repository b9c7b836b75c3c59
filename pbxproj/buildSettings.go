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
	"strings"

	"github.com/soapywu/pbxwizard/pbxparser"
)

const (
	DEBUG_INFORMATION_FORMAT        = "DEBUG_INFORMATION_FORMAT"
	ENABLE_USER_SCRIPT_SANDBOXING   = "ENABLE_USER_SCRIPT_SANDBOXING"
	DEBUG_INFORMATION_FORMAT_DSYM   = `"dwarf-with-dsym"`
	USER_SCRIPT_SANDBOXING_DISABLED = `"NO"`
)

// PatchDebugSymbolSettings switches every configuration of the target's
// own configuration list to emit dSYM bundles, and turns off user script
// sandboxing so the upload phase can read them.
//
// enable=false leaves the settings as they are; previous values are not
// restored.
func (p *XcodeProject) PatchDebugSymbolSettings(targetName string, enable bool) {
	if !enable {
		return
	}
	target, ok := p.FindTarget(targetName)
	if !ok {
		return
	}
	for _, config := range p.buildConfigurations(target) {
		settings, ok := config.LookupObject("buildSettings")
		if !ok {
			continue
		}
		settings.Set(DEBUG_INFORMATION_FORMAT, DEBUG_INFORMATION_FORMAT_DSYM)
		settings.Set(ENABLE_USER_SCRIPT_SANDBOXING, USER_SCRIPT_SANDBOXING_DISABLED)
	}
}

// BuildSetting returns the value of key in each of the target's
// configurations, keyed by configuration name. Lists are joined by spaces.
func (p *XcodeProject) BuildSetting(targetName, key string) map[string]string {
	result := map[string]string{}
	target, ok := p.FindTarget(targetName)
	if !ok {
		return result
	}
	for _, config := range p.buildConfigurations(target) {
		settings := config.GetObject("buildSettings")
		value, ok := settings.Get(key)
		if !ok {
			continue
		}
		result[unquoted(config.GetString("name"))] = settingString(value)
	}
	return result
}

func settingString(value interface{}) string {
	switch v := value.(type) {
	case string:
		return unquoted(v)
	case []interface{}:
		parts := interfaceToStringSlice(v)
		for i := range parts {
			parts[i] = unquoted(parts[i])
		}
		return strings.Join(parts, " ")
	case pbxparser.Object:
		return ""
	}
	if isInt(value) {
		return toIntString(value)
	}
	return ""
}
