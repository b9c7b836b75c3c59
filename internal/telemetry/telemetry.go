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

// Package telemetry traces the steps of a setup run.
package telemetry

import (
	"sync"
	"time"

	"github.com/soapywu/pbxwizard/internal/logger"
)

const (
	STATUS_SUCCESS   = "success"
	STATUS_FAILURE   = "failure"
	STATUS_CANCELLED = "cancelled"
)

// Reporter receives step timings and the final outcome of a run.
type Reporter interface {
	// StartStep begins timing name. The returned func ends the step.
	StartStep(name string) func(err error)
	Finish(status string)
}

// Noop discards everything.
type Noop struct{}

func (Noop) StartStep(string) func(error) { return func(error) {} }
func (Noop) Finish(string)                {}

// Step is one finished step of a LogReporter.
type Step struct {
	Name     string
	Duration time.Duration
	Err      error
}

// LogReporter logs every step at debug level and keeps them for the
// final summary.
type LogReporter struct {
	mu     sync.Mutex
	now    func() time.Time
	steps  []Step
	status string
}

func NewLogReporter() *LogReporter {
	return &LogReporter{now: time.Now}
}

func (r *LogReporter) StartStep(name string) func(err error) {
	start := r.now()
	logger.Debug("[DEBUG] step %s started\n", name)
	var once sync.Once
	return func(err error) {
		once.Do(func() {
			step := Step{Name: name, Duration: r.now().Sub(start), Err: err}
			r.mu.Lock()
			r.steps = append(r.steps, step)
			r.mu.Unlock()
			if err != nil {
				logger.Debug("[DEBUG] step %s failed after %s: %v\n", name, step.Duration, err)
				return
			}
			logger.Debug("[DEBUG] step %s finished in %s\n", name, step.Duration)
		})
	}
}

func (r *LogReporter) Finish(status string) {
	r.mu.Lock()
	r.status = status
	count := len(r.steps)
	r.mu.Unlock()
	logger.Debug("[DEBUG] setup %s after %d steps\n", status, count)
}

// Steps returns the finished steps in completion order.
func (r *LogReporter) Steps() []Step {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Step(nil), r.steps...)
}

func (r *LogReporter) Status() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

// Trace runs fn as the step name.
func Trace(r Reporter, name string, fn func() error) error {
	done := r.StartStep(name)
	err := fn()
	done(err)
	return err
}
