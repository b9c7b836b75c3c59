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

// Package prompt asks the user questions during the guided setup.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ErrAborted is returned when the user ends input instead of answering.
var ErrAborted = errors.New("setup aborted by user")

// Prompter collects typed answers.
type Prompter interface {
	// Select returns the index of the chosen option.
	Select(message string, options []string) (int, error)
	Confirm(message string, def bool) (bool, error)
	Input(message string, def string) (string, error)
}

// Terminal prompts on a line-oriented terminal.
type Terminal struct {
	in       *bufio.Reader
	out      io.Writer
	question lipgloss.Style
	hint     lipgloss.Style
}

func NewTerminal(in io.Reader, out io.Writer, styled bool) *Terminal {
	t := &Terminal{
		in:       bufio.NewReader(in),
		out:      out,
		question: lipgloss.NewStyle(),
		hint:     lipgloss.NewStyle(),
	}
	if styled {
		t.question = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
		t.hint = lipgloss.NewStyle().Faint(true)
	}
	return t
}

func (t *Terminal) readLine() (string, error) {
	line, err := t.in.ReadString('\n')
	if errors.Is(err, io.EOF) {
		if line == "" {
			return "", ErrAborted
		}
	} else if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (t *Terminal) Select(message string, options []string) (int, error) {
	if len(options) == 0 {
		return 0, fmt.Errorf("no options for %q", message)
	}
	fmt.Fprintln(t.out, t.question.Render(message))
	for i, option := range options {
		fmt.Fprintf(t.out, "  %d) %s\n", i+1, option)
	}
	for {
		fmt.Fprint(t.out, t.hint.Render(fmt.Sprintf("Choose 1-%d [1]: ", len(options))))
		line, err := t.readLine()
		if err != nil {
			return 0, err
		}
		if line == "" {
			return 0, nil
		}
		n, err := strconv.Atoi(line)
		if err == nil && n >= 1 && n <= len(options) {
			return n - 1, nil
		}
		for i, option := range options {
			if strings.EqualFold(option, line) {
				return i, nil
			}
		}
		fmt.Fprintf(t.out, "%q is not one of the options.\n", line)
	}
}

func (t *Terminal) Confirm(message string, def bool) (bool, error) {
	hint := "[y/N]"
	if def {
		hint = "[Y/n]"
	}
	for {
		fmt.Fprintf(t.out, "%s %s ", t.question.Render(message), t.hint.Render(hint))
		line, err := t.readLine()
		if err != nil {
			return false, err
		}
		switch strings.ToLower(line) {
		case "":
			return def, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
	}
}

func (t *Terminal) Input(message string, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(t.out, "%s %s ", t.question.Render(message), t.hint.Render("["+def+"]"))
	} else {
		fmt.Fprintf(t.out, "%s ", t.question.Render(message))
	}
	line, err := t.readLine()
	if err != nil {
		return "", err
	}
	if line == "" {
		return def, nil
	}
	return line, nil
}
