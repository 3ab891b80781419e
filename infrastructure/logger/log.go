// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2017 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package logger

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// BackendLog is the logging backend used to create all subsystem loggers.
var BackendLog = NewBackend()

var (
	subsystemLoggers      = make(map[string]*Logger)
	subsystemLoggersMutex sync.Mutex
)

// RegisterSubSystem returns the logger of the given subsystem, creating it
// the first time the tag is seen. New loggers are off until a level is set.
func RegisterSubSystem(subsystem string) *Logger {
	subsystemLoggersMutex.Lock()
	defer subsystemLoggersMutex.Unlock()

	logger, exists := subsystemLoggers[subsystem]
	if !exists {
		logger = BackendLog.Logger(subsystem)
		subsystemLoggers[subsystem] = logger
	}
	return logger
}

// InitLog attaches log file and error log file to the backend log, adds
// standard output as a writer, and runs the backend.
func InitLog(logFile, errLogFile string) {
	// 280 MB (MB=1000^2 bytes)
	err := BackendLog.AddLogFileWithCustomRotator(logFile, LevelTrace, 1000*280, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error adding log file %s as log rotator for level %s: %s", logFile, LevelTrace, err)
		os.Exit(1)
	}
	err = BackendLog.AddLogFile(errLogFile, LevelWarn)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error adding log file %s as log rotator for level %s: %s", errLogFile, LevelWarn, err)
		os.Exit(1)
	}
	err = BackendLog.AddLogWriter(os.Stdout, LevelInfo)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error adding stdout to the loggerfor level %s: %s", LevelInfo, err)
		os.Exit(1)
	}
	err = BackendLog.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error starting the logger: %s ", err)
		os.Exit(1)
	}
}

// SetLogLevel sets the logging level for provided subsystem. Invalid
// subsystems are ignored. Uninitialized subsystems are dynamically created as
// needed.
func SetLogLevel(subsystemID string, logLevel string) {
	subsystemLoggersMutex.Lock()
	defer subsystemLoggersMutex.Unlock()

	logger, ok := subsystemLoggers[subsystemID]
	if !ok {
		return
	}

	// Defaults to info if the log level is invalid.
	level, _ := LevelFromString(logLevel)
	logger.SetLevel(level)
}

// SetLogLevels sets the log level for all subsystem loggers to the passed
// level. It also dynamically creates the subsystem loggers as needed, so it
// can be used to initialize the logging system.
func SetLogLevels(logLevel string) {
	for _, subsystemID := range SupportedSubsystems() {
		SetLogLevel(subsystemID, logLevel)
	}
}

// SupportedSubsystems returns a sorted slice of the supported subsystems for
// logging purposes.
func SupportedSubsystems() []string {
	subsystemLoggersMutex.Lock()
	defer subsystemLoggersMutex.Unlock()

	subsystems := make([]string, 0, len(subsystemLoggers))
	for subsysID := range subsystemLoggers {
		subsystems = append(subsystems, subsysID)
	}

	sort.Strings(subsystems)
	return subsystems
}

// ParseAndSetLogLevels attempts to parse the specified debug level and set
// the levels accordingly. The level is either a single level applied to
// every subsystem, or a comma-separated list of subsystem=level pairs.
func ParseAndSetLogLevels(debugLevel string) error {
	// When the specified string doesn't have any delimiters, treat it as
	// the log level for all subsystems.
	if !strings.Contains(debugLevel, ",") && !strings.Contains(debugLevel, "=") {
		if _, ok := LevelFromString(debugLevel); !ok {
			return errors.Errorf("the specified debug level [%s] is invalid", debugLevel)
		}

		SetLogLevels(debugLevel)
		return nil
	}

	// Split the specified string into subsystem/level pairs while detecting
	// issues and update the log levels accordingly.
	for _, logLevelPair := range strings.Split(debugLevel, ",") {
		if !strings.Contains(logLevelPair, "=") {
			return errors.Errorf("the specified debug level contains an invalid "+
				"subsystem/level pair [%s]", logLevelPair)
		}

		fields := strings.Split(logLevelPair, "=")
		subsysID, logLevel := fields[0], fields[1]

		subsystemLoggersMutex.Lock()
		_, exists := subsystemLoggers[subsysID]
		subsystemLoggersMutex.Unlock()
		if !exists {
			return errors.Errorf("the specified subsystem [%s] is invalid -- "+
				"supported subsystems %s", subsysID, SupportedSubsystems())
		}

		if _, ok := LevelFromString(logLevel); !ok {
			return errors.Errorf("the specified debug level [%s] is invalid", logLevel)
		}

		SetLogLevel(subsysID, logLevel)
	}

	return nil
}
