// file: internals/helpers/logging/logger.go
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options mengatur format dan level logger aplikasi.
type Options struct {
	Level       string // debug|info|warn|error
	Format      string // json|console
	OutputPaths []string
}

// New membangun *zap.Logger dari Options. Level kosong → info, format kosong → json.
func New(o Options) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if s := strings.TrimSpace(o.Level); s != "" {
		if err := level.UnmarshalText([]byte(strings.ToLower(s))); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", o.Level, err)
		}
	}

	var cfg zap.Config
	switch strings.ToLower(strings.TrimSpace(o.Format)) {
	case "", "json":
		cfg = zap.NewProductionConfig()
	case "console":
		cfg = zap.NewDevelopmentConfig()
	default:
		return nil, fmt.Errorf("invalid log format %q", o.Format)
	}
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if len(o.OutputPaths) > 0 {
		cfg.OutputPaths = o.OutputPaths
		cfg.ErrorOutputPaths = o.OutputPaths
	}
	return cfg.Build()
}

// MustNew dipakai di main: gagal bikin logger = fallback ke production default.
func MustNew(o Options) *zap.Logger {
	l, err := New(o)
	if err == nil {
		return l
	}
	fallback, ferr := zap.NewProduction()
	if ferr != nil {
		return zap.NewNop()
	}
	fallback.Warn("logger options rejected, using production defaults", zap.Error(err))
	return fallback
}
