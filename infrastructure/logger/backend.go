package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/jrick/logrotate/rotator"
	"github.com/pkg/errors"
)

const normalLogSize = 512

// Flags to modify Backend's behavior.
const (
	// LogFlagLongFile adds the full path and line number of the logging
	// callsite to every entry, e.g. /a/b/c/main.go:123.
	LogFlagLongFile uint32 = 1 << iota

	// LogFlagShortFile adds the file name and line number of the logging
	// callsite to every entry, e.g. main.go:123. Takes precedence over
	// LogFlagLongFile.
	LogFlagShortFile
)

// parseLogFlags reads a comma separated list such as "shortfile,longfile"
func parseLogFlags(s string) uint32 {
	var flags uint32
	for _, name := range strings.Split(s, ",") {
		switch strings.TrimSpace(name) {
		case "longfile":
			flags |= LogFlagLongFile
		case "shortfile":
			flags |= LogFlagShortFile
		}
	}
	return flags
}

const (
	defaultThresholdKB = 10 * 1000 // 10 MB
	defaultMaxRolls    = 4
)

// output is a destination of the backend together with the lowest level it
// receives
type output struct {
	io.WriteCloser
	minLevel Level
}

// Backend serializes the entries of all its subsystem loggers into its
// outputs from a single goroutine. Outputs can only be added before Run.
type Backend struct {
	flags     uint32
	isRunning uint32
	outputs   []output

	entries   chan logEntry
	quit      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// NewBackendWithFlags returns a Backend using the given LogFlag* flags
func NewBackendWithFlags(flags uint32) *Backend {
	return &Backend{
		flags:   flags,
		entries: make(chan logEntry),
		quit:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// NewBackend returns a Backend with the flags named in the LOGFLAGS
// environment variable.
func NewBackend() *Backend {
	return NewBackendWithFlags(parseLogFlags(os.Getenv("LOGFLAGS")))
}

// AddLogWriter adds writer as an output for entries of logLevel and above.
func (b *Backend) AddLogWriter(writer io.WriteCloser, logLevel Level) error {
	if b.IsRunning() {
		return errors.New("the logger is already running")
	}
	b.outputs = append(b.outputs, output{WriteCloser: writer, minLevel: logLevel})
	return nil
}

// AddLogFile adds a rotated log file, created along with its directory if
// needed, as an output for entries of logLevel and above.
func (b *Backend) AddLogFile(logFile string, logLevel Level) error {
	return b.AddLogFileWithCustomRotator(logFile, logLevel, defaultThresholdKB, defaultMaxRolls)
}

// AddLogFileWithCustomRotator is AddLogFile with explicit rotation
// settings: the file is rolled once it reaches thresholdKB, and maxRolls old
// files are kept.
func (b *Backend) AddLogFileWithCustomRotator(logFile string, logLevel Level, thresholdKB int64, maxRolls int) error {
	if b.IsRunning() {
		return errors.New("the logger is already running")
	}
	logDir := filepath.Dir(logFile)
	err := os.MkdirAll(logDir, 0700)
	if err != nil {
		return errors.Wrapf(err, "failed to create log directory %s", logDir)
	}
	fileRotator, err := rotator.New(logFile, thresholdKB, false, maxRolls)
	if err != nil {
		return errors.Wrapf(err, "failed to create file rotator for %s", logFile)
	}
	return b.AddLogWriter(fileRotator, logLevel)
}

// Run starts writing entries. It may only be called once.
func (b *Backend) Run() error {
	if !atomic.CompareAndSwapUint32(&b.isRunning, 0, 1) {
		return errors.New("the logger is already running")
	}
	go func() {
		defer close(b.done)
		defer func() {
			if err := recover(); err != nil {
				_, _ = fmt.Fprintf(os.Stderr, "Fatal error in logger.Backend goroutine: %+v\n", err)
				_, _ = fmt.Fprintf(os.Stderr, "Goroutine stacktrace: %s\n", debug.Stack())
			}
		}()
		b.writeLoop()
	}()
	return nil
}

func (b *Backend) writeLoop() {
	for {
		select {
		case entry := <-b.entries:
			for _, out := range b.outputs {
				if entry.level >= out.minLevel {
					_, _ = out.Write(entry.log)
				}
			}
		case <-b.quit:
			return
		}
	}
}

// write hands entry to the write loop. Entries sent after Close are dropped.
func (b *Backend) write(entry logEntry) {
	select {
	case b.entries <- entry:
	case <-b.quit:
	}
}

// IsRunning returns whether Run was called and Close was not.
func (b *Backend) IsRunning() bool {
	return atomic.LoadUint32(&b.isRunning) != 0
}

// Close stops the backend once every entry handed to it was written, and
// closes its outputs. Calling Close more than once is a no-op.
func (b *Backend) Close() {
	b.closeOnce.Do(func() {
		wasRunning := atomic.SwapUint32(&b.isRunning, 0) != 0
		close(b.quit)
		if wasRunning {
			<-b.done
		}
		for _, out := range b.outputs {
			_ = out.Close()
		}
	})
}

// Logger returns a new logger for a particular subsystem that writes to the
// Backend b. A tag describes the subsystem and is included in all log
// messages. The logger is off until SetLevel is called.
func (b *Backend) Logger(subsystemTag string) *Logger {
	return &Logger{lvl: LevelOff, tag: subsystemTag, b: b}
}
