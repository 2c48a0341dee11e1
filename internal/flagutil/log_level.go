package flagutil

import (
	"log/slog"
)

// LogLevel extends slog.Level to support flag parsing.
type LogLevel struct {
	slog.Level
}

// UnmarshalFlag calls UnmarshalText for go-flags compatibility.
func (l *LogLevel) UnmarshalFlag(value string) error {
	return l.UnmarshalText([]byte(value))
}
