// Package log holds the structured logging conventions shared by every
// component: a slog text handler plus the canonical field and component
// names.
package log

import (
	"log/slog"
	"os"
)

// Setup initializes the default slog logger at the given level and
// returns it.
func Setup(level slog.Level) *slog.Logger {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
	return logger
}

// ForComponent returns the default logger tagged with a component name.
func ForComponent(component string) *slog.Logger {
	return slog.Default().With(FieldComponent, component)
}
