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
	PBX_PROJECT                    = "PBXProject"
	PBX_NATIVE_TARGET              = "PBXNativeTarget"
	PBX_GROUP                      = "PBXGroup"
	PBX_VARIANT_GROUP              = "PBXVariantGroup"
	PBX_FILE_REFERENCE             = "PBXFileReference"
	PBX_BUILD_FILE                 = "PBXBuildFile"
	PBX_SOURCES_BUILD_PHASE        = "PBXSourcesBuildPhase"
	PBX_FRAMEWORKS_BUILD_PHASE     = "PBXFrameworksBuildPhase"
	PBX_SHELL_SCRIPT_BUILD_PHASE   = "PBXShellScriptBuildPhase"
	PBX_SYNC_ROOT_GROUP            = "PBXFileSystemSynchronizedRootGroup"
	PBX_SYNC_BUILD_FILE_EXCEPTIONS = "PBXFileSystemSynchronizedBuildFileExceptionSet"
	XC_CONFIGURATION_LIST          = "XCConfigurationList"
	XC_BUILD_CONFIGURATION         = "XCBuildConfiguration"
	XC_REMOTE_SWIFT_PACKAGE_REF    = "XCRemoteSwiftPackageReference"
	XC_SWIFT_PACKAGE_PRODUCT_DEP   = "XCSwiftPackageProductDependency"
)

// resolve returns the object registered under id in the isa section. It
// fails when the section or id is missing, when the entry is a comment, or
// when the object claims a different isa.
func (p *XcodeProject) resolve(isa, id string) (pbxparser.Object, bool) {
	if id == "" || isCommentKey(id) {
		return pbxparser.Object{}, false
	}
	obj, ok := p.section(isa).LookupObject(id)
	if !ok {
		return pbxparser.Object{}, false
	}
	if objIsa := unquoted(obj.GetString("isa")); objIsa != "" && objIsa != isa {
		return pbxparser.Object{}, false
	}
	return obj, true
}

// resolveAny tries each isa in turn.
func (p *XcodeProject) resolveAny(id string, isas ...string) (pbxparser.Object, string, bool) {
	for _, isa := range isas {
		if obj, ok := p.resolve(isa, id); ok {
			return obj, isa, true
		}
	}
	return pbxparser.Object{}, "", false
}

// objectsOfType visits the objects of one section in document order.
func (p *XcodeProject) objectsOfType(isa string, apply func(id string, obj pbxparser.Object) pbxparser.IterateActionType) {
	p.section(isa).ForeachWithFilter(func(key string, val interface{}) pbxparser.IterateActionType {
		obj, ok := val.(pbxparser.Object)
		if !ok {
			return pbxparser.IterateActionContinue
		}
		return apply(key, obj)
	}, nonCommentsFilter)
}

// references returns the ids listed under key, in order.
func references(obj pbxparser.Object, key string) []CommentValue {
	list, ok := obj.GetArray(key)
	if !ok {
		return nil
	}
	refs := make([]CommentValue, 0, len(list))
	for _, v := range list {
		if ref, ok := toCommentValue(v); ok {
			refs = append(refs, ref)
		}
	}
	return refs
}

// Targets returns the name of every native target in document order.
func (p *XcodeProject) Targets() []string {
	names := []string{}
	p.objectsOfType(PBX_NATIVE_TARGET, func(_ string, obj pbxparser.Object) pbxparser.IterateActionType {
		names = append(names, unquoted(obj.GetString("name")))
		return pbxparser.IterateActionContinue
	})
	return names
}

func (p *XcodeProject) getFirstProject() pbxparser.ObjectWithUUID {
	rootId := p.pbxProjectRoot.GetString("rootObject")
	if project, ok := p.resolve(PBX_PROJECT, rootId); ok {
		return pbxparser.ObjectWithUUID{UUID: rootId, Object: project}
	}

	result := pbxparser.ObjectWithUUID{}
	p.objectsOfType(PBX_PROJECT, func(id string, obj pbxparser.Object) pbxparser.IterateActionType {
		result = pbxparser.ObjectWithUUID{UUID: id, Object: obj}
		return pbxparser.IterateActionBreak
	})
	return result
}

// mainGroupId is the root of the group tree, or "" when there is none.
func (p *XcodeProject) mainGroupId() string {
	project := p.getFirstProject()
	if project.IsNil() {
		return ""
	}
	return project.GetString("mainGroup")
}
