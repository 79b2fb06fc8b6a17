package floodgate

import (
	"errors"
	"math"
	"net/http"
	"strconv"
)

// Logger is the interface used for logging inside the middleware.
//
// Implement this interface to provide your own logging backend, or use one of
// the adapters under adapters/ (std log, logrus, zap, zerolog).
type Logger interface {
	Debugf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// ErrorExceeded is passed to the ErrorHandler when a trigger is rejected.
//
// Users can use errors.Is(err, floodgate.ErrorExceeded) to detect
// this specific condition.
var ErrorExceeded = errors.New("rate limit exceeded")

// ErrorHandler defines how to respond to a client whose request was rejected.
//
// This allows custom responses, e.g., JSON bodies, extra headers, or logging.
//
// Example:
//
//	func myHandler(w http.ResponseWriter, r *http.Request, err error, result floodgate.Result) {
//	    w.Header().Set("Retry-After", strconv.Itoa(int(result.ResetAfter.Seconds())))
//	    w.WriteHeader(http.StatusTooManyRequests)
//	}
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error, result Result)

// Config holds all configurable options for the middleware.
//
// Users typically create a Config via NewConfig and provide functional options.
type Config struct {
	ErrorHandler ErrorHandler
	Logger       Logger
}

// Option defines a functional option type for configuring the middleware.
//
// Example:
//
//	cfg := NewConfig(
//	    WithLogger(myLogger),
//	    WithErrorHandler(myHandler),
//	)
type Option func(*Config)

// NewConfig creates a Config with default settings, then applies
// any provided functional options.
func NewConfig(opts ...Option) *Config {
	cfg := &Config{
		ErrorHandler: DefaultErrorHandler,
		Logger:       &noopLogger{},
	}

	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// DefaultErrorHandler answers 429 Too Many Requests with a Retry-After header
// rounded up to whole seconds (at least 1).
func DefaultErrorHandler(w http.ResponseWriter, r *http.Request, err error, result Result) {
	retryAfter := int(math.Ceil(result.ResetAfter.Seconds()))
	if retryAfter <= 0 {
		retryAfter = 1
	}
	w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
	http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
}

// WithErrorHandler returns an Option to set a custom ErrorHandler.
func WithErrorHandler(f ErrorHandler) Option {
	return func(c *Config) {
		if f != nil {
			c.ErrorHandler = f
		}
	}
}

// WithLogger returns an Option to set a custom Logger.
func WithLogger(l Logger) Option {
	return func(c *Config) {
		if l != nil {
			c.Logger = l
		}
	}
}

type noopLogger struct{}

func (l *noopLogger) Debugf(format string, args ...interface{}) {}
func (l *noopLogger) Errorf(format string, args ...interface{}) {}
