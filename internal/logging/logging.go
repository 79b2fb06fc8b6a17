// Package logging builds a floodgate.Logger for one of the supported backends by name.
package logging

import (
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/rs/zerolog"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/jassus213/floodgate"
	stdlogadapter "github.com/jassus213/floodgate/adapters/log"
	logrusadapter "github.com/jassus213/floodgate/adapters/logrus"
	zapadapter "github.com/jassus213/floodgate/adapters/zap"
	zerologadapter "github.com/jassus213/floodgate/adapters/zerolog"
)

// Supported backend names.
const (
	BackendZap     = "zap"
	BackendLogrus  = "logrus"
	BackendZerolog = "zerolog"
	BackendStd     = "std"
)

// Backends lists every name accepted by New.
var Backends = []string{BackendZap, BackendLogrus, BackendZerolog, BackendStd}

// New returns a floodgate.Logger writing to out through the named backend.
// level is one of "debug", "info", "warn" or "error".
func New(backend, level string, out io.Writer) (floodgate.Logger, error) {
	lvl := strings.ToLower(strings.TrimSpace(level))
	if lvl == "" {
		lvl = "info"
	}
	switch lvl {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("unknown log level %q", level)
	}

	switch strings.ToLower(strings.TrimSpace(backend)) {
	case BackendZap, "":
		return newZap(lvl, out)
	case BackendLogrus:
		return newLogrus(lvl, out)
	case BackendZerolog:
		return newZerolog(lvl, out)
	case BackendStd:
		l := stdlogadapter.New(log.New(out, "floodgate ", log.LstdFlags))
		l.SetDebug(lvl == "debug")
		return l, nil
	default:
		return nil, fmt.Errorf("unknown log backend %q (want one of %s)", backend, strings.Join(Backends, ", "))
	}
}

func newZap(level string, out io.Writer) (floodgate.Logger, error) {
	zl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse zap level: %w", err)
	}
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		zapcore.AddSync(out),
		zl,
	)
	return zapadapter.New(zap.New(core)), nil
}

func newLogrus(level string, out io.Writer) (floodgate.Logger, error) {
	ll, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse logrus level: %w", err)
	}
	l := logrus.New()
	l.SetOutput(out)
	l.SetLevel(ll)
	l.SetFormatter(&logrus.JSONFormatter{})
	return logrusadapter.New(l), nil
}

func newZerolog(level string, out io.Writer) (floodgate.Logger, error) {
	zl, err := zerolog.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse zerolog level: %w", err)
	}
	l := zerolog.New(out).Level(zl).With().Timestamp().Logger()
	return zerologadapter.New(&l), nil
}
