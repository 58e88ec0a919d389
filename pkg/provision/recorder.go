/*
 * Copyright 2025 Routelab.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package provision implements the one-shot NetBox provisioning runs:
// create a device and assign the next free address from a pool, and assign
// the next free address to an existing interface.
package provision

import (
	"fmt"

	"github.com/routelab/netbridge/pkg/logger"
)

// Level classifies a run message the way the platform's script runner
// does.
type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelFailure Level = "failure"
)

// Message is one line of run output.
type Message struct {
	Level Level
	Text  string
}

// Recorder collects run output and mirrors it to the structured log. A run
// that recorded at least one failure is considered failed.
type Recorder struct {
	messages []Message
	logger   logger.Logger
}

func NewRecorder(log logger.Logger) *Recorder {
	return &Recorder{logger: log}
}

func (r *Recorder) Success(format string, args ...interface{}) {
	text := fmt.Sprintf(format, args...)
	r.messages = append(r.messages, Message{Level: LevelSuccess, Text: text})
	r.logger.Info().Str("level", string(LevelSuccess)).Msg(text)
}

func (r *Recorder) Info(format string, args ...interface{}) {
	text := fmt.Sprintf(format, args...)
	r.messages = append(r.messages, Message{Level: LevelInfo, Text: text})
	r.logger.Info().Msg(text)
}

func (r *Recorder) Warning(format string, args ...interface{}) {
	text := fmt.Sprintf(format, args...)
	r.messages = append(r.messages, Message{Level: LevelWarning, Text: text})
	r.logger.Warn().Msg(text)
}

func (r *Recorder) Failure(format string, args ...interface{}) {
	text := fmt.Sprintf(format, args...)
	r.messages = append(r.messages, Message{Level: LevelFailure, Text: text})
	r.logger.Error().Msg(text)
}

// Messages returns the recorded run output in order.
func (r *Recorder) Messages() []Message {
	return r.messages
}

// Failed reports whether any failure was recorded.
func (r *Recorder) Failed() bool {
	for _, m := range r.messages {
		if m.Level == LevelFailure {
			return true
		}
	}

	return false
}
