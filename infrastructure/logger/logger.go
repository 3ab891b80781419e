// Copyright (c) 2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package logger

import (
	"bytes"
	"fmt"
	"os"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

type logEntry struct {
	log   []byte
	level Level
}

// bufferPool defines a concurrent safe free list of byte buffers used to
// provide temporary buffers for outputting log messages.
var bufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, normalLogSize))
	},
}

// Logger is a subsystem logger for a Backend. A message is written to the
// backend writers only when its level is at least the logger's level.
type Logger struct {
	lvl Level // atomic
	tag string
	b   *Backend
}

// formatHeader writes a log header to buf in the following order:
//   - date and time, with millisecond precision
//   - level string
//   - subsystem tag
//   - file and line number when requested by the backend flags
func formatHeader(buf *bytes.Buffer, t time.Time, lvl, tag string, file string, line int) {
	buf.WriteString(t.Format("2006-01-02 15:04:05.000"))
	buf.WriteString(" [")
	buf.WriteString(lvl)
	buf.WriteString("] ")
	buf.WriteString(tag)
	if file != "" {
		buf.WriteByte(' ')
		buf.WriteString(file)
		buf.WriteByte(':')
		buf.WriteString(fmt.Sprint(line))
	}
	buf.WriteString(": ")
}

// calldepth is the call depth of the callsite function relative to the
// caller of the subsystem logger.
const calldepth = 3

// callsite returns the file name and line number of the callsite to the
// subsystem logger.
func callsite(flag uint32) (string, int) {
	_, file, line, ok := runtime.Caller(calldepth)
	if !ok {
		return "???", 0
	}
	if flag&LogFlagShortFile != 0 {
		short := file
		for i := len(file) - 1; i > 0; i-- {
			if os.IsPathSeparator(file[i]) {
				short = file[i+1:]
				break
			}
		}
		file = short
	}
	return file, line
}

func (l *Logger) print(lvl Level, format string, args ...interface{}) {
	if l.Level() > lvl {
		return
	}
	// Nothing consumes entries before the backend runs.
	if !l.b.IsRunning() {
		return
	}

	t := time.Now() // get as early as possible

	var file string
	var line int
	if l.b.flags&(LogFlagShortFile|LogFlagLongFile) != 0 {
		file, line = callsite(l.b.flags)
	}

	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer bufferPool.Put(buf)

	formatHeader(buf, t, lvl.String(), l.tag, file, line)
	buf.WriteString(fmt.Sprintf(format, args...))
	if !strings.HasSuffix(format, "\n") {
		buf.WriteByte('\n')
	}

	entry := make([]byte, buf.Len())
	copy(entry, buf.Bytes())
	l.b.write(logEntry{log: entry, level: lvl})
}

// Tracef formats message according to format specifier, prepends the prefix as
// necessary, and writes to log with LevelTrace.
func (l *Logger) Tracef(format string, params ...interface{}) {
	l.print(LevelTrace, format, params...)
}

// Debugf formats message according to format specifier, prepends the prefix as
// necessary, and writes to log with LevelDebug.
func (l *Logger) Debugf(format string, params ...interface{}) {
	l.print(LevelDebug, format, params...)
}

// Infof formats message according to format specifier, prepends the prefix as
// necessary, and writes to log with LevelInfo.
func (l *Logger) Infof(format string, params ...interface{}) {
	l.print(LevelInfo, format, params...)
}

// Warnf formats message according to format specifier, prepends the prefix as
// necessary, and writes to log with LevelWarn.
func (l *Logger) Warnf(format string, params ...interface{}) {
	l.print(LevelWarn, format, params...)
}

// Errorf formats message according to format specifier, prepends the prefix as
// necessary, and writes to log with LevelError.
func (l *Logger) Errorf(format string, params ...interface{}) {
	l.print(LevelError, format, params...)
}

// Criticalf formats message according to format specifier, prepends the prefix as
// necessary, and writes to log with LevelCritical.
func (l *Logger) Criticalf(format string, params ...interface{}) {
	l.print(LevelCritical, format, params...)
}

// Level returns the current logging level
func (l *Logger) Level() Level {
	return Level(atomic.LoadUint32((*uint32)(&l.lvl)))
}

// SetLevel changes the logging level to the passed level.
func (l *Logger) SetLevel(level Level) {
	atomic.StoreUint32((*uint32)(&l.lvl), uint32(level))
}

// Backend returns the log backend
func (l *Logger) Backend() *Backend {
	return l.b
}
