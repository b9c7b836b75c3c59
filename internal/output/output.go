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
package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// IsTTY reports whether writer is an interactive terminal.
func IsTTY(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}

// Styles holds the lipgloss styles used for human output.
type Styles struct {
	Error   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Title   lipgloss.Style
	Muted   lipgloss.Style
	Key     lipgloss.Style
}

func newStyles(isTTY bool) *Styles {
	if !isTTY {
		plain := lipgloss.NewStyle()
		return &Styles{Error: plain, Success: plain, Warning: plain, Title: plain, Muted: plain, Key: plain}
	}
	return &Styles{
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Muted:   lipgloss.NewStyle().Faint(true),
		Key:     lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	}
}

// Printer writes command results as styled text or JSON.
type Printer struct {
	w      io.Writer
	errW   io.Writer
	json   bool
	isTTY  bool
	styles *Styles
}

func NewPrinter(writer io.Writer, jsonMode bool, isTTY bool) *Printer {
	return &Printer{
		w:      writer,
		errW:   writer,
		json:   jsonMode,
		isTTY:  isTTY,
		styles: newStyles(isTTY),
	}
}

// WithStderr sends human-mode errors and warnings to w.
func (p *Printer) WithStderr(w io.Writer) *Printer {
	p.errW = w
	return p
}

func (p *Printer) IsJSON() bool {
	return p.json
}

func (p *Printer) IsTTY() bool {
	return p.isTTY
}

func (p *Printer) Styles() *Styles {
	return p.styles
}

// Success prints data["message"] in human mode, or all of data as JSON.
func (p *Printer) Success(data map[string]any) error {
	if p.json {
		return p.WriteJSON(data)
	}
	if msg, ok := data["message"].(string); ok {
		_, err := fmt.Fprintln(p.w, p.styles.Success.Render(msg))
		return err
	}
	for key, val := range data {
		if _, err := fmt.Fprintf(p.w, "%s: %v\n", p.styles.Key.Render(key), val); err != nil {
			return err
		}
	}
	return nil
}

// List prints one item per line under a title, or {"<key>": [...]} as JSON.
func (p *Printer) List(key string, items []string) error {
	if items == nil {
		items = []string{}
	}
	if p.json {
		return p.WriteJSON(map[string]any{key: items})
	}
	for _, item := range items {
		if _, err := fmt.Fprintln(p.w, item); err != nil {
			return err
		}
	}
	return nil
}

func (p *Printer) Error(err error) {
	exitErr := &ExitError{}
	if !errors.As(err, &exitErr) {
		exitErr = &ExitError{Code: ExitUserError, Message: err.Error()}
	}
	if p.json {
		_ = p.WriteJSON(map[string]any{"error": exitErr.Error(), "code": exitErr.Code})
		return
	}
	fmt.Fprintf(p.errW, "%s: %s\n", p.styles.Error.Render("Error"), exitErr.Error())
}

func (p *Printer) Warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if p.json {
		_ = p.WriteJSON(map[string]any{"warning": msg})
		return
	}
	fmt.Fprintf(p.errW, "%s: %s\n", p.styles.Warning.Render("Warning"), msg)
}

// Section prints an underlined heading. No-op in JSON mode.
func (p *Printer) Section(title string) {
	if p.json {
		return
	}
	fmt.Fprintln(p.w)
	fmt.Fprintln(p.w, p.styles.Title.Render(title))
	fmt.Fprintln(p.w, p.styles.Muted.Render(strings.Repeat("─", len(title))))
}

// KeyValue prints "key: value". No-op in JSON mode.
func (p *Printer) KeyValue(key, value string) {
	if p.json {
		return
	}
	fmt.Fprintf(p.w, "%s %s\n", p.styles.Key.Render(key+":"), value)
}

func (p *Printer) Println(args ...any) {
	fmt.Fprintln(p.w, args...)
}

func (p *Printer) Print(format string, args ...any) {
	fmt.Fprintf(p.w, format, args...)
}

func (p *Printer) WriteJSON(data any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}
