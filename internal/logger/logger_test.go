/*
 * Copyright 2025 SREDiag Authors
 * Copyright 2023 CloudWeGo Authors
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

package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
)

type LoggerTestSuite struct {
	suite.Suite
	saved int
	out   *bytes.Buffer
	log   *Logger
}

func (s *LoggerTestSuite) SetupTest() {
	s.saved = LogLevel()
	s.out = &bytes.Buffer{}
	s.log = New("poller", s.out)
}

func (s *LoggerTestSuite) TearDownTest() {
	SetLogLevel(s.saved)
}

func (s *LoggerTestSuite) TestLogColor() {
	SetLogLevel(LevelTrace)

	s.log.Tracef("this is tracef %s", "hello world")
	s.log.Infof("this is infof %s", "hello world")
	s.log.Info("this is info")
	s.log.Debugf("this is debugf %s", "hello world")
	s.log.Warnf("this is warnf %s", "hello world")
	s.log.Errorf("this is errorf %s", "hello world")
	s.log.Error("this is error")

	lines := strings.Split(strings.TrimRight(s.out.String(), "\n"), "\n")
	s.Len(lines, 7)
	s.Contains(lines[0], styles[LevelTrace].color+"Trace")
	s.Contains(lines[5], styles[LevelError].color+"Error")
	s.Contains(lines[6], "this is error"+reset)
	for _, line := range lines {
		s.Contains(line, "logger_test.go:")
		s.Contains(line, " poller ")
	}
}

func (s *LoggerTestSuite) TestLevelFilters() {
	SetLogLevel(LevelWarn)

	s.log.Debugf("hidden")
	s.log.Infof("hidden")
	s.Empty(s.out.String())

	s.log.Warnf("shown %d", 1)
	s.Contains(s.out.String(), "shown 1")

	SetLogLevel(LevelNoPrint)
	s.out.Reset()
	s.log.Errorf("hidden")
	s.Empty(s.out.String())
}

func (s *LoggerTestSuite) TestSetLogLevelIgnoresOutOfRange() {
	SetLogLevel(LevelInfo)
	SetLogLevel(LevelNoPrint + 1)
	s.Equal(LevelInfo, LogLevel())
	SetLogLevel(-1)
	s.Equal(LevelInfo, LogLevel())
}

func (s *LoggerTestSuite) TestNilWriterDefaultsToStderr() {
	l := New("x", nil)
	s.NotNil(l.out)
}

type countingWriter struct {
	writes []string
}

func (w *countingWriter) Write(p []byte) (int, error) {
	w.writes = append(w.writes, string(p))
	return len(p), nil
}

func (s *LoggerTestSuite) TestOneWritePerLine() {
	SetLogLevel(LevelInfo)
	w := &countingWriter{}
	l := New("poller", w)

	l.Infof("attached %s (%d bytes)", "acpmf_graphics", 1588)
	l.Info(42)

	s.Require().Len(w.writes, 2)
	s.True(strings.HasSuffix(w.writes[0], "attached acpmf_graphics (1588 bytes)"+reset+"\n"), w.writes[0])
	s.True(strings.HasSuffix(w.writes[1], " poller 42"+reset+"\n"), w.writes[1])
}

func TestLoggerTestSuite(t *testing.T) {
	suite.Run(t, new(LoggerTestSuite))
}
