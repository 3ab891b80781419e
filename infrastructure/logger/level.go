package logger

import "strings"

// Level is the minimum severity a logger writes. Entries below it are
// dropped.
type Level uint32

// Levels in increasing severity. LevelOff disables a logger.
const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelCritical
	LevelOff
)

// levelNames holds, per level, the tag printed in entries and the long name
// accepted by LevelFromString.
var levelNames = [...]struct{ tag, name string }{
	LevelTrace:    {"TRC", "trace"},
	LevelDebug:    {"DBG", "debug"},
	LevelInfo:     {"INF", "info"},
	LevelWarn:     {"WRN", "warn"},
	LevelError:    {"ERR", "error"},
	LevelCritical: {"CRT", "critical"},
	LevelOff:      {"OFF", "off"},
}

// LevelFromString parses either the long name ("debug") or the tag ("dbg")
// of a level, ignoring case. Unknown input yields LevelInfo and false.
func LevelFromString(s string) (Level, bool) {
	s = strings.ToLower(s)
	for level, names := range levelNames {
		if s == names.name || s == strings.ToLower(names.tag) {
			return Level(level), true
		}
	}
	return LevelInfo, false
}

// String returns the tag printed in entries of this level
func (l Level) String() string {
	if l >= LevelOff {
		return levelNames[LevelOff].tag
	}
	return levelNames[l].tag
}
