package settings

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

// LogLevel mirrors the host logging framework's level enumeration.
type LogLevel int

const (
	LogLevelTrace LogLevel = iota
	LogLevelDebug
	LogLevelInformation
	LogLevelWarning
	LogLevelError
	LogLevelCritical
	// LogLevelNone disables logging. It is the default for absent or
	// unparsable log-level settings.
	LogLevelNone
)

var logLevelNames = [...]string{
	LogLevelTrace:       "Trace",
	LogLevelDebug:       "Debug",
	LogLevelInformation: "Information",
	LogLevelWarning:     "Warning",
	LogLevelError:       "Error",
	LogLevelCritical:    "Critical",
	LogLevelNone:        "None",
}

func (l LogLevel) String() string {
	if l < LogLevelTrace || l > LogLevelNone {
		return "LogLevel(" + strconv.Itoa(int(l)) + ")"
	}
	return logLevelNames[l]
}

// ParseLogLevel accepts a level name in any case ("warning", "Warning") or
// its numeric value ("3").
func ParseLogLevel(s string) (LogLevel, error) {
	s = strings.TrimSpace(s)
	for i, name := range logLevelNames {
		if strings.EqualFold(s, name) {
			return LogLevel(i), nil
		}
	}
	if n, err := strconv.Atoi(s); err == nil && n >= int(LogLevelTrace) && n <= int(LogLevelNone) {
		return LogLevel(n), nil
	}
	return LogLevelNone, fmt.Errorf("unknown log level %q", s)
}

// UnmarshalText lets LogLevel appear in YAML and other text-based configs.
func (l *LogLevel) UnmarshalText(text []byte) error {
	parsed, err := ParseLogLevel(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (l LogLevel) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// slogOff is above every level a slog handler will be asked about.
const slogOff = slog.Level(1 << 20)

// Slog maps l onto the nearest slog level. Trace sits below Debug and
// Critical above Error; None maps to a level no record reaches.
func (l LogLevel) Slog() slog.Level {
	switch l {
	case LogLevelTrace:
		return slog.LevelDebug - 4
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelInformation:
		return slog.LevelInfo
	case LogLevelWarning:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	case LogLevelCritical:
		return slog.LevelError + 4
	default:
		return slogOff
	}
}
