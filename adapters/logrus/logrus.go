// Package logrusadapter implements floodgate.Logger with logrus.
package logrusadapter

import (
	"github.com/sirupsen/logrus"
)

// LogrusLogger implements floodgate.Logger using a logrus entry tagged with
// the "component" field.
type LogrusLogger struct {
	logger *logrus.Entry
}

// New creates a new LogrusLogger. If nil is passed, a fresh logrus.Logger is used.
func New(l *logrus.Logger) *LogrusLogger {
	if l == nil {
		l = logrus.New()
	}
	return &LogrusLogger{
		logger: l.WithField("component", "floodgate"),
	}
}

// Debugf logs a debug-level message
func (l *LogrusLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debugf(format, args...)
}

// Errorf logs an error-level message
func (l *LogrusLogger) Errorf(format string, args ...interface{}) {
	l.logger.Errorf(format, args...)
}
