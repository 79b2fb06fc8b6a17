// Package zapadapter implements floodgate.Logger with zap.
package zapadapter

import (
	"go.uber.org/zap"
)

// ZapLogger implements floodgate.Logger using a named zap.SugaredLogger.
type ZapLogger struct {
	logger *zap.SugaredLogger
}

// New creates a new ZapLogger from a zap.Logger.
//
// If a nil logger is provided, zap.NewNop() is used, which discards all messages.
//
// Example:
//
//	logger, _ := zap.NewProduction()
//	mw := ginmw.RateLimiter(cooldown, floodgate.WithLogger(zapadapter.New(logger)))
func New(l *zap.Logger) *ZapLogger {
	if l == nil {
		l = zap.NewNop()
	}
	return &ZapLogger{logger: l.Named("floodgate").Sugar()}
}

// Debugf logs a debug-level message.
func (z *ZapLogger) Debugf(format string, args ...interface{}) {
	z.logger.Debugf(format, args...)
}

// Errorf logs an error-level message.
func (z *ZapLogger) Errorf(format string, args ...interface{}) {
	z.logger.Errorf(format, args...)
}
