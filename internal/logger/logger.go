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

// Package logger is the leveled, colorized logger shared by the telemetry
// commands. Output goes to stderr by default; stdout belongs to the data.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/valyala/bytebufferpool"
)

// EnvLogLevel overrides the initial level, 0 (Trace) to 5 (NoPrint).
const EnvLogLevel = "ACC_TELEMETRY_LOG_LEVEL"

const (
	LevelTrace = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelNoPrint
)

const (
	reset = "\x1b[0m"

	// location, header, logf or log, then the exported method
	callerSkip = 4
)

var styles = [...]struct{ name, color string }{
	LevelTrace: {"Trace", "\x1b[95m"},
	LevelDebug: {"Debug", "\x1b[92m"},
	LevelInfo:  {"Info", "\x1b[94m"},
	LevelWarn:  {"Warn", "\x1b[93m"},
	LevelError: {"Error", "\x1b[91m"},
}

var level atomic.Int32

func init() {
	level.Store(LevelWarn)
	if v := os.Getenv(EnvLogLevel); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			SetLogLevel(n)
		}
	}
}

// SetLogLevel changes the level of every Logger. The default is Warn.
// Out of range values are ignored.
func SetLogLevel(l int) {
	if l >= LevelTrace && l <= LevelNoPrint {
		level.Store(int32(l))
	}
}

// LogLevel returns the current level.
func LogLevel() int {
	return int(level.Load())
}

// Logger writes one colored line per call to out. Each line is handed to
// out in a single Write.
type Logger struct {
	name string
	out  io.Writer
}

// New returns a Logger tagged with name. A nil out selects stderr.
func New(name string, out io.Writer) *Logger {
	if out == nil {
		out = os.Stderr
	}
	return &Logger{name: name, out: out}
}

func (l *Logger) Errorf(format string, a ...interface{}) { l.logf(LevelError, format, a...) }
func (l *Logger) Warnf(format string, a ...interface{})  { l.logf(LevelWarn, format, a...) }
func (l *Logger) Infof(format string, a ...interface{})  { l.logf(LevelInfo, format, a...) }
func (l *Logger) Debugf(format string, a ...interface{}) { l.logf(LevelDebug, format, a...) }
func (l *Logger) Tracef(format string, a ...interface{}) { l.logf(LevelTrace, format, a...) }

func (l *Logger) Error(v interface{}) { l.log(LevelError, v) }
func (l *Logger) Info(v interface{})  { l.log(LevelInfo, v) }

func (l *Logger) logf(lvl int, format string, a ...interface{}) {
	if int(level.Load()) > lvl {
		return
	}
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	l.header(buf, lvl)
	_, _ = fmt.Fprintf(buf, format, a...)
	l.flush(buf)
}

func (l *Logger) log(lvl int, v interface{}) {
	if int(level.Load()) > lvl {
		return
	}
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	l.header(buf, lvl)
	_, _ = fmt.Fprint(buf, v)
	l.flush(buf)
}

// header writes "<color><Level> <time> <file:line> <name> ".
func (l *Logger) header(buf *bytebufferpool.ByteBuffer, lvl int) {
	_, _ = buf.WriteString(styles[lvl].color)
	_, _ = buf.WriteString(styles[lvl].name)
	_ = buf.WriteByte(' ')
	buf.B = time.Now().AppendFormat(buf.B, "2006-01-02 15:04:05.999999")
	_ = buf.WriteByte(' ')
	_, _ = buf.WriteString(location())
	_ = buf.WriteByte(' ')
	_, _ = buf.WriteString(l.name)
	_ = buf.WriteByte(' ')
}

func (l *Logger) flush(buf *bytebufferpool.ByteBuffer) {
	_, _ = buf.WriteString(reset)
	_ = buf.WriteByte('\n')
	if _, err := l.out.Write(buf.B); err != nil {
		fmt.Fprintf(os.Stderr, "logger %s: write failed: %v\n", l.name, err)
	}
}

func location() string {
	_, file, line, ok := runtime.Caller(callerSkip)
	if !ok {
		return "???:0"
	}
	return filepath.Base(file) + ":" + strconv.Itoa(line)
}
