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
	"io"
	"os"
	"strings"

	"github.com/soapywu/pbxwizard/pbxparser"
)

const (
	INDENT = "\t"
)

// inlineTypes are written on a single line, the way Xcode does.
var inlineTypes = map[string]bool{
	"PBXBuildFile":                       true,
	"PBXFileReference":                   true,
	"PBXFileSystemSynchronizedRootGroup": true,
}

type PbxWriterOption func(w *PbxWriter)

// WithOmitEmpty skips fields whose string value is empty.
func WithOmitEmpty() PbxWriterOption {
	return func(w *PbxWriter) {
		w.omitEmptyValues = true
	}
}

// PbxWriter renders a document back into project.pbxproj text.
type PbxWriter struct {
	buf             strings.Builder
	omitEmptyValues bool
	contents        pbxparser.Object
	indentLevel     int
}

func NewPbxWriter(project *XcodeProject, options ...PbxWriterOption) *PbxWriter {
	w := &PbxWriter{
		contents: project.Contents(),
	}
	for _, option := range options {
		option(w)
	}
	return w
}

func indent(x int) string {
	if x <= 0 {
		return ""
	}
	return strings.Repeat(INDENT, x)
}

func getComment(key string, parent pbxparser.Object) string {
	return parent.GetString(toCommentKey(key))
}

func (w *PbxWriter) write(format string, args ...interface{}) {
	w.buf.WriteString(indent(w.indentLevel))
	fmt.Fprintf(&w.buf, format, args...)
}

func (w *PbxWriter) writeNoIndent(format string, args ...interface{}) {
	fmt.Fprintf(&w.buf, format, args...)
}

// Write renders the document to filePath.
func (w *PbxWriter) Write(filePath string) error {
	f, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("writing %s: %w", filePath, err)
	}
	if err := w.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", filePath, err)
	}
	return f.Close()
}

// WriteTo renders the document to out.
func (w *PbxWriter) WriteTo(out io.Writer) error {
	w.buf.Reset()
	w.indentLevel = 0
	w.writeHeadComment()
	w.writeProject()
	_, err := io.WriteString(out, w.buf.String())
	return err
}

func (w *PbxWriter) writeHeadComment() {
	comment := w.contents.GetString("headComment")
	if comment != "" {
		w.writeNoIndent("// %s\n", comment)
	}
}

func (w *PbxWriter) writeProject() {
	proj := w.contents.GetObject("project")

	w.write("{\n")
	w.indentLevel++
	w.writeFields(proj, true)
	w.indentLevel--
	w.write("}\n")
}

// writeFields writes every key of obj on its own line. At the project
// level the "objects" mapping is written as Begin/End sections.
func (w *PbxWriter) writeFields(obj pbxparser.Object, topLevel bool) {
	obj.ForeachWithFilter(func(key string, val interface{}) pbxparser.IterateActionType {
		cmt := getComment(key, obj)
		switch {
		case isArray(val):
			w.writeArray(toArray(val), key)
		case isObject(val):
			w.write("%s = {\n", key)
			w.indentLevel++
			if topLevel && key == "objects" {
				w.writeObjectsSections(toObject(val))
			} else {
				w.writeFields(toObject(val), false)
			}
			w.indentLevel--
			w.write("};\n")
		case isString(val):
			str := toString(val)
			if w.omitEmptyValues && str == "" {
				return pbxparser.IterateActionContinue
			}
			w.writeScalar(key, str, cmt)
		case isInt(val):
			w.writeScalar(key, toIntString(val), cmt)
		default:
			w.writeScalar(key, fmt.Sprint(val), cmt)
		}
		return pbxparser.IterateActionContinue
	}, nonCommentsFilter)
}

func (w *PbxWriter) writeScalar(key, value, cmt string) {
	if cmt != "" {
		w.write("%s = %s /* %s */;\n", key, value, cmt)
	} else {
		w.write("%s = %s;\n", key, value)
	}
}

func (w *PbxWriter) writeObjectsSections(obj pbxparser.Object) {
	obj.Foreach(func(key string, val interface{}) pbxparser.IterateActionType {
		section, ok := val.(pbxparser.Object)
		if !ok || section.IsEmpty() {
			return pbxparser.IterateActionContinue
		}
		w.writeNoIndent("\n")
		w.writeSectionComment(key, true)
		w.writeSection(section)
		w.writeSectionComment(key, false)
		return pbxparser.IterateActionContinue
	})
}

func (w *PbxWriter) writeArray(arr []interface{}, name string) {
	w.write("%s = (\n", name)
	w.indentLevel++

	for _, elem := range arr {
		switch {
		case isObject(elem):
			val := toObject(elem)
			if ref, ok := toCommentValue(val); ok && ref.Comment != "" {
				w.write("%s /* %s */,\n", ref.Value, ref.Comment)
			} else {
				w.write("{\n")
				w.indentLevel++
				w.writeFields(val, false)
				w.indentLevel--
				w.write("},\n")
			}
		case isString(elem):
			w.write("%s,\n", toString(elem))
		case isInt(elem):
			w.write("%s,\n", toIntString(elem))
		default:
			w.write("%v,\n", elem)
		}
	}
	w.indentLevel--
	w.write(");\n")
}

func (w *PbxWriter) writeSectionComment(name string, begin bool) {
	if begin {
		w.writeNoIndent("/* Begin %s section */\n", name)
	} else {
		w.writeNoIndent("/* End %s section */\n", name)
	}
}

func (w *PbxWriter) writeSection(section pbxparser.Object) {
	section.ForeachWithFilter(func(key string, val interface{}) pbxparser.IterateActionType {
		cmt := getComment(key, section)
		if !isObject(val) {
			return pbxparser.IterateActionContinue
		}
		obj := toObject(val)
		if inlineTypes[obj.GetString("isa")] {
			w.writeInlineObject(key, cmt, obj)
			return pbxparser.IterateActionContinue
		}
		if cmt != "" {
			w.write("%s /* %s */ = {\n", key, cmt)
		} else {
			w.write("%s = {\n", key)
		}
		w.indentLevel++
		w.writeFields(obj, false)
		w.indentLevel--
		w.write("};\n")
		return pbxparser.IterateActionContinue
	}, nonCommentsFilter)
}

func inlineScalar(key, value, cmt string) string {
	if cmt != "" {
		return fmt.Sprintf("%s = %s /* %s */; ", key, value, cmt)
	}
	return fmt.Sprintf("%s = %s; ", key, value)
}

func (w *PbxWriter) writeInlineObjectHelp(output *strings.Builder, name string, desc string, ref pbxparser.Object) {
	if desc != "" {
		fmt.Fprintf(output, "%s /* %s */ = {", name, desc)
	} else {
		fmt.Fprintf(output, "%s = {", name)
	}

	ref.ForeachWithFilter(func(key string, val interface{}) pbxparser.IterateActionType {
		cmt := getComment(key, ref)
		switch {
		case isArray(val):
			fmt.Fprintf(output, "%s = (", key)
			for _, elem := range toArray(val) {
				if cv, ok := toCommentValue(elem); ok && cv.Comment != "" {
					fmt.Fprintf(output, "%s /* %s */, ", cv.Value, cv.Comment)
				} else if isInt(elem) {
					fmt.Fprintf(output, "%s, ", toIntString(elem))
				} else if cv, ok := toCommentValue(elem); ok {
					fmt.Fprintf(output, "%s, ", cv.Value)
				}
			}
			output.WriteString("); ")
		case isObject(val):
			w.writeInlineObjectHelp(output, key, cmt, toObject(val))
			output.WriteString(" ")
		case isString(val):
			value := toString(val)
			if value == "" && w.omitEmptyValues {
				return pbxparser.IterateActionContinue
			}
			output.WriteString(inlineScalar(key, value, cmt))
		case isInt(val):
			output.WriteString(inlineScalar(key, toIntString(val), cmt))
		}
		return pbxparser.IterateActionContinue
	}, nonCommentsFilter)

	output.WriteString("};")
}

func (w *PbxWriter) writeInlineObject(name string, desc string, ref pbxparser.Object) {
	var output strings.Builder
	w.writeInlineObjectHelp(&output, name, desc, ref)
	w.write("%s\n", output.String())
}
