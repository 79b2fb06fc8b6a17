// Package stdlogadapter implements floodgate.Logger with the standard library log package.
package stdlogadapter

import (
	"log"
)

// StdLogger implements floodgate.Logger on top of a *log.Logger.
// Debug output can be switched off, since std log has no levels.
type StdLogger struct {
	logger *log.Logger
	debug  bool
}

// New creates a new StdLogger with debug output enabled.
// If nil is passed, the default logger is used.
func New(l *log.Logger) *StdLogger {
	if l == nil {
		l = log.Default()
	}
	return &StdLogger{
		logger: l,
		debug:  true,
	}
}

// SetDebug turns debug-level output on or off.
func (s *StdLogger) SetDebug(enabled bool) {
	s.debug = enabled
}

// Debugf logs a debug-level message.
func (s *StdLogger) Debugf(format string, args ...interface{}) {
	if !s.debug {
		return
	}
	s.logger.Printf("[DEBUG] "+format, args...)
}

// Errorf logs an error-level message.
func (s *StdLogger) Errorf(format string, args ...interface{}) {
	s.logger.Printf("[ERROR] "+format, args...)
}
