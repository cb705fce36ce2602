// Package stdlogger adapts the global zerolog logger to printf style
// logger interfaces, e.g. gorm's logger.Writer.
package stdlogger

import (
	"github.com/rs/zerolog/log"
)

// Logger forwards printf style calls to zerolog.
type Logger struct {
	component string
}

// NewComponent creates a Logger tagging every entry with a component field.
func NewComponent(component string) *Logger {
	return &Logger{component: component}
}

// Printf logs at info level. It satisfies gorm's logger.Writer.
func (l *Logger) Printf(format string, v ...any) {
	e := log.Info()
	if l.component != "" {
		e = e.Str("component", l.component)
	}

	e.Msgf(format, v...)
}
