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
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/soapywu/pbxwizard/pbxparser"
)

// groupTree maps every object reachable from the main group to the group
// that lists it as a child.
type groupTree map[string]string

func (p *XcodeProject) buildGroupTree() groupTree {
	parents := groupTree{}
	root := p.mainGroupId()
	if root == "" {
		return parents
	}
	visited := map[string]bool{root: true}
	stack := []string{root}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		group, _, ok := p.resolveAny(id, PBX_GROUP, PBX_VARIANT_GROUP)
		if !ok {
			continue
		}
		for _, child := range references(group, "children") {
			if visited[child.Value] {
				continue
			}
			visited[child.Value] = true
			parents[child.Value] = id
			stack = append(stack, child.Value)
		}
	}
	return parents
}

// resolvePath turns an object's path into a filesystem path following its
// sourceTree. Group-relative paths walk up the group tree; items the tree
// does not reach are taken relative to the base directory.
func (p *XcodeProject) resolvePath(id string, obj pbxparser.Object, tree groupTree) (string, bool) {
	path := unquoted(obj.GetString("path"))
	sourceTree := unquoted(obj.GetString("sourceTree"))

	if sourceTree != SOURCE_TREE_GROUP {
		root, ok := p.fileTreeRoot(sourceTree)
		if !ok {
			return "", false
		}
		if sourceTree == SOURCE_TREE_ABSOLUTE {
			return path, path != ""
		}
		return filepath.Join(root, path), true
	}

	parentId, found := tree[id]
	if !found {
		return filepath.Join(p.baseDir, path), true
	}
	parent, _, ok := p.resolveAny(parentId, PBX_GROUP, PBX_VARIANT_GROUP)
	if !ok {
		return filepath.Join(p.baseDir, path), true
	}
	dir, ok := p.resolvePath(parentId, parent, tree)
	if !ok {
		return "", false
	}
	return filepath.Join(dir, path), true
}

// SourceFilesForTarget lists the files the named target compiles: the
// entries of its first sources phase followed by every file under the
// synchronized folders attached directly to it. The second result is
// false when no such target exists.
//
// Files under BUILT_PRODUCTS_DIR are not reported. Synchronized folders
// nested inside other groups are only found when the target lists them.
func (p *XcodeProject) SourceFilesForTarget(name string) ([]string, bool) {
	target, ok := p.FindTarget(name)
	if !ok {
		return nil, false
	}

	tree := p.buildGroupTree()
	files := []string{}
	files = append(files, p.buildPhaseFiles(target, tree)...)
	files = append(files, p.synchronizedFiles(target, tree)...)
	return files, true
}

func (p *XcodeProject) buildPhaseFiles(target NativeTarget, tree groupTree) []string {
	phase, ok := p.buildPhaseOfType(target, PBX_SOURCES_BUILD_PHASE)
	if !ok {
		return nil
	}

	var files []string
	for _, ref := range references(phase.Object, "files") {
		buildFile, ok := p.resolve(PBX_BUILD_FILE, ref.Value)
		if !ok {
			continue
		}
		fileRefId := buildFile.GetString("fileRef")
		fileRef, ok := p.resolve(PBX_FILE_REFERENCE, fileRefId)
		if !ok || unquoted(fileRef.GetString("path")) == "" {
			continue
		}
		if path, ok := p.resolvePath(fileRefId, fileRef, tree); ok {
			files = append(files, path)
		}
	}
	return files
}

func (p *XcodeProject) synchronizedFiles(target NativeTarget, tree groupTree) []string {
	var files []string
	for _, ref := range references(target.Object, "fileSystemSynchronizedGroups") {
		group, ok := p.resolve(PBX_SYNC_ROOT_GROUP, ref.Value)
		if !ok || unquoted(group.GetString("path")) == "" {
			continue
		}
		dir, ok := p.resolvePath(ref.Value, group, tree)
		if !ok {
			continue
		}
		excluded := p.membershipExceptions(group, target.UUID)
		files = append(files, walkSynchronizedDir(dir, excluded)...)
	}
	return files
}

// membershipExceptions collects the paths this target excludes from a
// synchronized group.
func (p *XcodeProject) membershipExceptions(group pbxparser.Object, targetId string) []string {
	var excluded []string
	for _, ref := range references(group, "exceptions") {
		set, ok := p.resolve(PBX_SYNC_BUILD_FILE_EXCEPTIONS, ref.Value)
		if !ok || set.GetString("target") != targetId {
			continue
		}
		list, _ := set.GetArray("membershipExceptions")
		for _, path := range interfaceToStringSlice(list) {
			excluded = append(excluded, unquoted(path))
		}
	}
	return excluded
}

func isExcluded(rel string, excluded []string) bool {
	for _, ex := range excluded {
		if rel == ex || strings.HasPrefix(rel, ex+"/") {
			return true
		}
	}
	return false
}

// walkSynchronizedDir lists every regular file below dir in lexical order.
// A missing directory yields nothing.
func walkSynchronizedDir(dir string, excluded []string) []string {
	var files []string
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			return nil
		}
		rel, relErr := filepath.Rel(dir, path)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			if rel != "." && isExcluded(rel, excluded) {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() && !isExcluded(rel, excluded) {
			files = append(files, path)
		}
		return nil
	})
	return files
}
