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
package pbxparser

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

const COMMENT_KEY_SUFFIX = "_comment"

// SyntaxError reports where a project document stopped making sense.
type SyntaxError struct {
	Line int
	Col  int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("pbxproj:%d:%d: %s", e.Line, e.Col, e.Msg)
}

// ParseReader reads a whole project document from r.
func ParseReader(r io.Reader) (Object, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Object{}, err
	}
	return Parse(data)
}

// Parse turns the text of a project.pbxproj file into an Object tree.
//
// The result has a "headComment" entry holding the text of the leading
// "// ..." line (if any) and a "project" entry holding the root dictionary.
// Quoted strings keep their quotes and escapes exactly as written. Inline
// comments become siblings under "<key>_comment", and array elements that
// carry a comment become {value, comment} objects. Comments that do not
// follow a key or a value, such as the section markers, are dropped.
func Parse(data []byte) (Object, error) {
	p := &parser{src: data, line: 1, col: 1}
	root := NewObject()

	p.skipSpace()
	if p.hasPrefix("//") {
		p.advance(2)
		start := p.pos
		for !p.eof() && p.peek() != '\n' {
			p.advance(1)
		}
		root.Set("headComment", strings.TrimSpace(string(p.src[start:p.pos])))
	}

	p.skipTrivia()
	if p.eof() || p.peek() != '{' {
		return Object{}, p.errorf("expected '{' at start of document")
	}
	project, err := p.parseDict()
	if err != nil {
		return Object{}, err
	}
	if objects, ok := project.LookupObject("objects"); ok {
		groupObjects(objects)
	}
	root.Set("project", project)

	p.skipTrivia()
	if !p.eof() {
		return Object{}, p.errorf("unexpected %q after document end", p.peek())
	}
	return root, nil
}

// groupObjects rearranges the flat id -> object dictionary of a project
// into isa -> (id -> object), which is what the Begin/End section markers
// describe. Sections come in the order their first object appears and
// objects keep document order inside them. An id comment moves along with
// its object. Entries without an isa belong to no section and are dropped.
func groupObjects(objects Object) {
	items := objects.Items()
	comments := make(map[string]string)
	for _, item := range items {
		if c, ok := item.data.(string); ok && strings.HasSuffix(item.key, COMMENT_KEY_SUFFIX) {
			comments[strings.TrimSuffix(item.key, COMMENT_KEY_SUFFIX)] = c
		}
	}

	objects.Clear()
	for _, item := range items {
		obj, ok := item.data.(Object)
		if !ok {
			continue
		}
		isa := Unquote(obj.GetString("isa"))
		if isa == "" {
			continue
		}
		section, ok := objects.LookupObject(isa)
		if !ok {
			section = NewObject()
			objects.Set(isa, section)
		}
		section.Set(item.key, obj)
		if c, ok := comments[item.key]; ok {
			section.Set(item.key+COMMENT_KEY_SUFFIX, c)
		}
	}
}

type parser struct {
	src  []byte
	pos  int
	line int
	col  int
}

func (p *parser) eof() bool {
	return p.pos >= len(p.src)
}

func (p *parser) peek() byte {
	return p.src[p.pos]
}

func (p *parser) hasPrefix(s string) bool {
	return strings.HasPrefix(string(p.src[p.pos:]), s)
}

func (p *parser) advance(n int) {
	for i := 0; i < n && !p.eof(); i++ {
		if p.src[p.pos] == '\n' {
			p.line++
			p.col = 1
		} else {
			p.col++
		}
		p.pos++
	}
}

func (p *parser) errorf(format string, args ...interface{}) error {
	return &SyntaxError{Line: p.line, Col: p.col, Msg: fmt.Sprintf(format, args...)}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func (p *parser) skipSpace() {
	for !p.eof() && isSpace(p.peek()) {
		p.advance(1)
	}
}

// skipTrivia skips whitespace and every kind of comment.
func (p *parser) skipTrivia() {
	for {
		p.skipSpace()
		switch {
		case p.hasPrefix("/*"):
			p.readBlockComment()
		case p.hasPrefix("//"):
			for !p.eof() && p.peek() != '\n' {
				p.advance(1)
			}
		default:
			return
		}
	}
}

func (p *parser) readBlockComment() string {
	p.advance(2)
	start := p.pos
	for !p.eof() && !p.hasPrefix("*/") {
		p.advance(1)
	}
	text := string(p.src[start:p.pos])
	p.advance(2)
	return strings.TrimSpace(text)
}

// optionalComment consumes one inline /* ... */ comment after whitespace.
func (p *parser) optionalComment() string {
	p.skipSpace()
	if p.hasPrefix("/*") {
		return p.readBlockComment()
	}
	return ""
}

func (p *parser) expect(c byte) error {
	p.skipTrivia()
	if p.eof() {
		return p.errorf("expected %q, got end of input", c)
	}
	if p.peek() != c {
		return p.errorf("expected %q, got %q", c, p.peek())
	}
	p.advance(1)
	return nil
}

func (p *parser) parseDict() (Object, error) {
	if err := p.expect('{'); err != nil {
		return Object{}, err
	}
	obj := NewObject()
	for {
		p.skipTrivia()
		if p.eof() {
			return Object{}, p.errorf("unterminated dictionary")
		}
		if p.peek() == '}' {
			p.advance(1)
			return obj, nil
		}

		key, err := p.parseString()
		if err != nil {
			return Object{}, err
		}
		keyComment := p.optionalComment()
		if err := p.expect('='); err != nil {
			return Object{}, err
		}
		p.skipTrivia()
		value, err := p.parseValue()
		if err != nil {
			return Object{}, err
		}
		valueComment := p.optionalComment()
		if err := p.expect(';'); err != nil {
			return Object{}, err
		}

		obj.Set(key, value)
		if keyComment != "" {
			obj.Set(key+COMMENT_KEY_SUFFIX, keyComment)
		} else if valueComment != "" {
			obj.Set(key+COMMENT_KEY_SUFFIX, valueComment)
		}
	}
}

func (p *parser) parseArray() ([]interface{}, error) {
	if err := p.expect('('); err != nil {
		return nil, err
	}
	arr := make([]interface{}, 0)
	for {
		p.skipTrivia()
		if p.eof() {
			return nil, p.errorf("unterminated array")
		}
		if p.peek() == ')' {
			p.advance(1)
			return arr, nil
		}

		value, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		comment := p.optionalComment()
		if str, ok := value.(string); ok && comment != "" {
			value = NewObjectWithData([]ObjectItem{
				NewObjectItem("value", str),
				NewObjectItem("comment", comment),
			})
		}
		arr = append(arr, value)

		p.skipTrivia()
		if p.eof() {
			return nil, p.errorf("unterminated array")
		}
		switch p.peek() {
		case ',':
			p.advance(1)
		case ')':
		default:
			return nil, p.errorf("expected ',' or ')' in array, got %q", p.peek())
		}
	}
}

func (p *parser) parseValue() (interface{}, error) {
	if p.eof() {
		return nil, p.errorf("expected value, got end of input")
	}
	switch p.peek() {
	case '{':
		return p.parseDict()
	case '(':
		return p.parseArray()
	}

	str, err := p.parseString()
	if err != nil {
		return nil, err
	}
	if str[0] != '"' {
		if n, ok := integerLiteral(str); ok {
			return n, nil
		}
	}
	return str, nil
}

// integerLiteral converts only literals that print back identically, so
// values like "0700" stay strings.
func integerLiteral(s string) (int, bool) {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil || strconv.Itoa(n) != s {
		return 0, false
	}
	return n, true
}

func isLiteralTerminator(c byte) bool {
	switch c {
	case ';', ',', '=', ')', '}', '(', '{', '"':
		return true
	}
	return isSpace(c)
}

// parseString reads a quoted or bare string. Quoted strings are returned
// verbatim, quotes included.
func (p *parser) parseString() (string, error) {
	if p.eof() {
		return "", p.errorf("expected string, got end of input")
	}
	start := p.pos
	if p.peek() == '"' {
		p.advance(1)
		for {
			if p.eof() {
				return "", p.errorf("unterminated quoted string")
			}
			c := p.peek()
			if c == '\\' {
				p.advance(2)
				continue
			}
			p.advance(1)
			if c == '"' {
				return string(p.src[start:p.pos]), nil
			}
		}
	}

	for !p.eof() && !isLiteralTerminator(p.peek()) && !p.hasPrefix("/*") {
		p.advance(1)
	}
	if p.pos == start {
		return "", p.errorf("unexpected %q", p.peek())
	}
	return string(p.src[start:p.pos]), nil
}
