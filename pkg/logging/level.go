package logging

// Level represents a log level. Levels are ordered, so a logger configured at a
// given level emits all messages at that level and below.
type Level uint

const (
	// LevelDisabled indicates that logging is completely disabled.
	LevelDisabled Level = iota
	// LevelError indicates that only errors are logged.
	LevelError
	// LevelWarn indicates that errors and warnings are logged.
	LevelWarn
	// LevelInfo indicates that basic execution information is logged, such as
	// server startup and per-connection summaries.
	LevelInfo
	// LevelDebug indicates that stream lifecycle events are logged.
	LevelDebug
	// LevelTrace indicates that individual stream state transitions (such as
	// end-of-stream detection) are logged.
	LevelTrace
)

// levelNames maps level names to levels.
var levelNames = map[string]Level{
	"disabled": LevelDisabled,
	"error":    LevelError,
	"warn":     LevelWarn,
	"info":     LevelInfo,
	"debug":    LevelDebug,
	"trace":    LevelTrace,
}

// NameToLevel converts a string-based representation of a log level to the
// appropriate Level value. It returns a boolean indicating whether or not the
// conversion was valid. If the name is invalid, LevelDisabled is returned.
func NameToLevel(name string) (Level, bool) {
	level, ok := levelNames[name]
	return level, ok
}

// String provides a human-readable representation of a log level.
func (l Level) String() string {
	for name, level := range levelNames {
		if level == l {
			return name
		}
	}
	return "unknown"
}

// abbreviation returns the fixed-width tag used to mark lines at the level.
func (l Level) abbreviation() string {
	switch l {
	case LevelError:
		return "E"
	case LevelWarn:
		return "W"
	case LevelInfo:
		return "I"
	case LevelDebug:
		return "D"
	case LevelTrace:
		return "T"
	default:
		return "?"
	}
}
