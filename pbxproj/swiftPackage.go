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
	"fmt"
	"path"
	"strings"

	"github.com/soapywu/pbxwizard/pbxparser"
)

const UP_TO_NEXT_MAJOR_VERSION = "upToNextMajorVersion"

// packageName is the last path element of a repository URL.
func packageName(repositoryURL string) string {
	trimmed := strings.TrimSuffix(strings.TrimSuffix(repositoryURL, "/"), ".git")
	return path.Base(trimmed)
}

func remotePackageComment(repositoryURL string) string {
	return fmt.Sprintf("%s \"%s\"", XC_REMOTE_SWIFT_PACKAGE_REF, packageName(repositoryURL))
}

// isProductLinked reports whether productName is already linked: a
// frameworks phase mentions it, or the target already depends on it. An
// empty name is never linked.
func (p *XcodeProject) isProductLinked(target NativeTarget, productName string) bool {
	if productName == "" {
		return false
	}
	linked := false
	p.objectsOfType(PBX_FRAMEWORKS_BUILD_PHASE, func(_ string, phase pbxparser.Object) pbxparser.IterateActionType {
		for _, ref := range references(phase, "files") {
			if strings.Contains(ref.Comment, productName) {
				linked = true
				return pbxparser.IterateActionBreak
			}
		}
		return pbxparser.IterateActionContinue
	})
	if linked {
		return true
	}

	for _, ref := range references(target.Object, "packageProductDependencies") {
		dep, ok := p.resolve(XC_SWIFT_PACKAGE_PRODUCT_DEP, ref.Value)
		if ok && unquoted(dep.GetString("productName")) == productName {
			return true
		}
	}
	return false
}

// findRemotePackage returns the id of the package reference for repositoryURL.
func (p *XcodeProject) findRemotePackage(repositoryURL string) string {
	found := ""
	p.objectsOfType(XC_REMOTE_SWIFT_PACKAGE_REF, func(id string, obj pbxparser.Object) pbxparser.IterateActionType {
		if unquoted(obj.GetString("repositoryURL")) == repositoryURL {
			found = id
			return pbxparser.IterateActionBreak
		}
		return pbxparser.IterateActionContinue
	})
	return found
}

func (p *XcodeProject) addRemotePackage(repositoryURL, minimumVersion string) CommentValue {
	requirement := pbxparser.NewObject()
	requirement.Set("kind", UP_TO_NEXT_MAJOR_VERSION)
	requirement.Set("minimumVersion", pbxparser.QuoteIfNeeded(minimumVersion))

	obj := pbxparser.NewObject()
	obj.Set("isa", XC_REMOTE_SWIFT_PACKAGE_REF)
	obj.Set("repositoryURL", pbxparser.Quote(repositoryURL))
	obj.Set("requirement", requirement)

	comment := remotePackageComment(repositoryURL)
	id := p.addObject(XC_REMOTE_SWIFT_PACKAGE_REF, obj, comment)
	return CommentValue{Value: id, Comment: comment}
}

// AddPackageDependency links productName from the Swift package at
// repositoryURL into the named target, resolving versions up to the next
// major release after minimumVersion. A product that is already linked is
// left alone, as are unknown targets and an empty product name.
func (p *XcodeProject) AddPackageDependency(targetName, repositoryURL, productName, minimumVersion string) {
	if productName == "" {
		return
	}
	target, ok := p.FindTarget(targetName)
	if !ok || p.isProductLinked(target, productName) {
		return
	}

	pkg := CommentValue{Value: p.findRemotePackage(repositoryURL), Comment: remotePackageComment(repositoryURL)}
	if pkg.Value == "" {
		pkg = p.addRemotePackage(repositoryURL, minimumVersion)
	}

	dep := pbxparser.NewObject()
	dep.Set("isa", XC_SWIFT_PACKAGE_PRODUCT_DEP)
	dep.Set("package", pkg.Value)
	dep.Set(toCommentKey("package"), pkg.Comment)
	dep.Set("productName", pbxparser.QuoteIfNeeded(productName))
	depId := p.addObject(XC_SWIFT_PACKAGE_PRODUCT_DEP, dep, productName)
	addToObjectList(target.Object, "packageProductDependencies", CommentValue{Value: depId, Comment: productName}.ToObject())

	if phase, ok := p.buildPhaseOfType(target, PBX_FRAMEWORKS_BUILD_PHASE); ok {
		buildFile := pbxparser.NewObject()
		buildFile.Set("isa", PBX_BUILD_FILE)
		buildFile.Set("productRef", depId)
		buildFile.Set(toCommentKey("productRef"), productName)
		comment := productName + " in Frameworks"
		buildFileId := p.addObject(PBX_BUILD_FILE, buildFile, comment)
		addToObjectList(phase.Object, "files", CommentValue{Value: buildFileId, Comment: comment}.ToObject())
	}

	project := p.getFirstProject()
	if !project.IsNil() {
		addToObjectListOnlyNotExist(project.Object, "packageReferences", pkg.ToObject(), sameReference)
	}
}

func sameReference(v1, v2 interface{}) bool {
	r1, ok1 := toCommentValue(v1)
	r2, ok2 := toCommentValue(v2)
	return ok1 && ok2 && r1.Value == r2.Value
}
