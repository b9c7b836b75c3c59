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
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gofrs/uuid"
	"github.com/soapywu/pbxwizard/pbxparser"
)

const (
	PROJECT_FILE_NAME      = "project.pbxproj"
	PROJECT_BUNDLE_SUFFIX  = ".xcodeproj"
	OBJECT_ID_LENGTH       = 24
	DEFAULT_BUILD_ACT_MASK = 2147483647
)

var objectIdRegex = regexp.MustCompile(`^[0-9A-F]{24}$`)

// CommentValue is a reference to another object: its id plus the
// human-readable comment Xcode writes next to it.
type CommentValue struct {
	Value   string
	Comment string
}

func (c CommentValue) ToObject() pbxparser.Object {
	return pbxparser.NewObjectWithData([]pbxparser.ObjectItem{
		pbxparser.NewObjectItem("value", c.Value),
		pbxparser.NewObjectItem("comment", c.Comment),
	})
}

// toCommentValue reads a list element back as a reference. Elements
// written without a comment are plain strings.
func toCommentValue(v interface{}) (CommentValue, bool) {
	switch v := v.(type) {
	case pbxparser.Object:
		value := v.GetString("value")
		if value == "" {
			return CommentValue{}, false
		}
		return CommentValue{Value: value, Comment: v.GetString("comment")}, true
	case string:
		return CommentValue{Value: v}, v != ""
	}
	return CommentValue{}, false
}

type Option func(p *XcodeProject)

// WithBaseDir overrides the directory project-relative paths resolve against.
func WithBaseDir(dir string) Option {
	return func(p *XcodeProject) {
		p.baseDir = dir
	}
}

// WithBuildEnvironment supplies the SDK and developer directory lookups.
func WithBuildEnvironment(env BuildEnvironment) Option {
	return func(p *XcodeProject) {
		p.buildEnv = env
	}
}

// XcodeProject owns one parsed project.pbxproj document. It is not safe
// for concurrent use; two instances on the same file overwrite each other.
type XcodeProject struct {
	filePath         string
	baseDir          string
	buildEnv         BuildEnvironment
	pbxContents      pbxparser.Object
	pbxProjectRoot   pbxparser.Object
	pbxObjectSection pbxparser.Object
	uuids            map[string]struct{}
}

// Open loads the project at path, which may name either the .xcodeproj
// bundle or the project.pbxproj file inside it.
func Open(path string, options ...Option) (*XcodeProject, error) {
	filePath := path
	if strings.HasSuffix(filepath.Clean(path), PROJECT_BUNDLE_SUFFIX) {
		filePath = filepath.Join(path, PROJECT_FILE_NAME)
	}
	if abs, err := filepath.Abs(filePath); err == nil {
		filePath = abs
	}

	p := &XcodeProject{
		filePath: filePath,
		baseDir:  defaultBaseDir(filePath),
		uuids:    make(map[string]struct{}),
	}
	for _, option := range options {
		option(p)
	}
	if p.buildEnv == nil {
		p.buildEnv = NewSystemBuildEnvironment()
	}

	if err := p.Parse(); err != nil {
		return nil, err
	}
	return p, nil
}

// defaultBaseDir is SRCROOT: the directory that holds the .xcodeproj bundle.
func defaultBaseDir(filePath string) string {
	dir := filepath.Dir(filePath)
	if strings.HasSuffix(dir, PROJECT_BUNDLE_SUFFIX) {
		return filepath.Dir(dir)
	}
	return dir
}

func (p *XcodeProject) Parse() error {
	data, err := os.ReadFile(p.filePath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", p.filePath, err)
	}
	return p.ParseBytes(data)
}

// ParseBytes replaces the in-memory document with the parsed data.
func (p *XcodeProject) ParseBytes(data []byte) error {
	contents, err := pbxparser.Parse(data)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", p.filePath, err)
	}
	p.pbxContents = contents
	p.initSections()
	p.buildExistUuids()
	return nil
}

func (p *XcodeProject) initSections() {
	p.pbxProjectRoot = p.pbxContents.GetObject("project")
	objects, ok := p.pbxProjectRoot.LookupObject("objects")
	if !ok {
		objects = pbxparser.NewObject()
		p.pbxProjectRoot.Set("objects", objects)
	}
	p.pbxObjectSection = objects
}

// buildExistUuids records every id-shaped key and value in the document,
// dangling references included, so generated ids never collide.
func (p *XcodeProject) buildExistUuids() {
	uuids := make(map[string]struct{})
	var walk func(v interface{})
	walk = func(v interface{}) {
		switch v := v.(type) {
		case pbxparser.Object:
			for _, item := range v.Items() {
				if objectIdRegex.MatchString(item.Key()) {
					uuids[item.Key()] = struct{}{}
				}
				walk(item.Value())
			}
		case []interface{}:
			for _, elem := range v {
				walk(elem)
			}
		case string:
			if objectIdRegex.MatchString(v) {
				uuids[v] = struct{}{}
			}
		}
	}
	walk(p.pbxObjectSection)
	walk(p.pbxProjectRoot.GetString("rootObject"))
	p.uuids = uuids
}

func (p *XcodeProject) generateUuid() string {
	for {
		u, err := uuid.NewV4()
		if err != nil {
			continue
		}
		newUUID := strings.ToUpper(strings.ReplaceAll(u.String(), "-", "")[0:OBJECT_ID_LENGTH])
		if _, found := p.uuids[newUUID]; found {
			continue
		}
		p.uuids[newUUID] = struct{}{}
		return newUUID
	}
}

func (p *XcodeProject) FilePath() string {
	return p.filePath
}

func (p *XcodeProject) BaseDir() string {
	return p.baseDir
}

func (p *XcodeProject) Contents() pbxparser.Object {
	return p.pbxContents
}

// Dump writes the document model as indented JSON, for debugging.
func (p *XcodeProject) Dump(writer io.Writer) error {
	buffer := bytes.NewBuffer([]byte{})
	jsonEncoder := json.NewEncoder(buffer)
	jsonEncoder.SetEscapeHTML(false)
	jsonEncoder.SetIndent("", "  ")
	if err := jsonEncoder.Encode(p.Contents()); err != nil {
		return err
	}
	_, err := writer.Write(buffer.Bytes())
	return err
}

// Bytes serializes the document in Xcode's text layout.
func (p *XcodeProject) Bytes() []byte {
	var buf bytes.Buffer
	_ = NewPbxWriter(p).WriteTo(&buf)
	return buf.Bytes()
}

func (p *XcodeProject) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(p.Bytes())
	return int64(n), err
}

// Save writes the document back to the file it was read from.
func (p *XcodeProject) Save() error {
	return NewPbxWriter(p).Write(p.filePath)
}

// section returns the mapping for one object type, or an empty Object.
func (p *XcodeProject) section(isa string) pbxparser.Object {
	return p.pbxObjectSection.GetObject(isa)
}

// ensureSection returns the mapping for isa, adding it in Xcode's
// alphabetical section order when the document has none yet.
func (p *XcodeProject) ensureSection(isa string) pbxparser.Object {
	if section, ok := p.pbxObjectSection.LookupObject(isa); ok {
		return section
	}
	section := pbxparser.NewObject()
	p.pbxObjectSection.SetSorted(isa, section)
	return section
}

// addObject registers obj and its comment sibling under a fresh id.
func (p *XcodeProject) addObject(isa string, obj pbxparser.Object, comment string) string {
	id := p.generateUuid()
	section := p.ensureSection(isa)
	section.Set(id, obj)
	section.Set(toCommentKey(id), comment)
	return id
}
