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
package prompt

import (
	"fmt"
	"strconv"
)

// Scripted answers from a queue. With an empty queue it falls back to each
// question's default, which is how --non-interactive runs.
type Scripted struct {
	Answers []string
	// Asked records every question in order.
	Asked []string
}

// Defaults returns a Scripted that always takes the default answer.
func Defaults() *Scripted {
	return &Scripted{}
}

func (s *Scripted) next(message string) (string, bool) {
	s.Asked = append(s.Asked, message)
	if len(s.Answers) == 0 {
		return "", false
	}
	answer := s.Answers[0]
	s.Answers = s.Answers[1:]
	return answer, true
}

func (s *Scripted) Select(message string, options []string) (int, error) {
	if len(options) == 0 {
		return 0, fmt.Errorf("no options for %q", message)
	}
	answer, ok := s.next(message)
	if !ok || answer == "" {
		return 0, nil
	}
	if n, err := strconv.Atoi(answer); err == nil && n >= 1 && n <= len(options) {
		return n - 1, nil
	}
	for i, option := range options {
		if option == answer {
			return i, nil
		}
	}
	return 0, fmt.Errorf("scripted answer %q is not an option of %q", answer, message)
}

func (s *Scripted) Confirm(message string, def bool) (bool, error) {
	answer, ok := s.next(message)
	if !ok || answer == "" {
		return def, nil
	}
	switch answer {
	case "y", "yes", "true":
		return true, nil
	case "n", "no", "false":
		return false, nil
	}
	return false, fmt.Errorf("scripted answer %q is not yes or no", answer)
}

func (s *Scripted) Input(message string, def string) (string, error) {
	answer, ok := s.next(message)
	if !ok || answer == "" {
		return def, nil
	}
	return answer, nil
}
