// Copyright 2023 LiveKit, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package utils

import (
	"sync"
	"time"

	"go.uber.org/zap/zapcore"
)

type StopwatchSplit struct {
	Label    string
	Duration time.Duration
}

func (s StopwatchSplit) MarshalLogObject(e zapcore.ObjectEncoder) error {
	e.AddString("label", s.Label)
	e.AddDuration("duration", s.Duration)
	return nil
}

type StopwatchSplits []StopwatchSplit

func (s StopwatchSplits) MarshalLogArray(e zapcore.ArrayEncoder) error {
	for _, split := range s {
		if err := e.AppendObject(split); err != nil {
			return err
		}
	}
	return nil
}

type stopwatchMark struct {
	time  time.Time
	label string
}

// Stopwatch records labelled marks, each split measuring from the previous mark.
type Stopwatch struct {
	lock  sync.Mutex
	start time.Time
	marks []stopwatchMark
}

func NewStopwatch() *Stopwatch {
	return &Stopwatch{start: time.Now()}
}

func (s *Stopwatch) Mark(label string) {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.marks = append(s.marks, stopwatchMark{time: time.Now(), label: label})
}

func (s *Stopwatch) Splits() StopwatchSplits {
	s.lock.Lock()
	defer s.lock.Unlock()

	splits := make(StopwatchSplits, 0, len(s.marks))
	prev := s.start
	for _, m := range s.marks {
		splits = append(splits, StopwatchSplit{Label: m.label, Duration: m.time.Sub(prev)})
		prev = m.time
	}
	return splits
}

// Elapsed is the time from the start to the last mark.
func (s *Stopwatch) Elapsed() time.Duration {
	s.lock.Lock()
	defer s.lock.Unlock()

	if len(s.marks) == 0 {
		return 0
	}
	return s.marks[len(s.marks)-1].time.Sub(s.start)
}
