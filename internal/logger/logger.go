// Package logger builds the zap logger used across restgen.
package logger

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a logger writing to stderr. Only warnings are shown unless
// verbose is set; jsonOutput switches to structured JSON lines.
func New(verbose, jsonOutput bool) *zap.Logger {
	return NewWithWriter(os.Stderr, verbose, jsonOutput)
}

// NewWithWriter builds a logger writing to w.
func NewWithWriter(w io.Writer, verbose, jsonOutput bool) *zap.Logger {
	level := zap.WarnLevel
	if verbose {
		level = zap.DebugLevel
	}

	var encoder zapcore.Encoder
	if jsonOutput {
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	} else {
		// Human-readable: level and message, no timestamps or callers
		config := zap.NewDevelopmentEncoderConfig()
		config.TimeKey = ""
		config.CallerKey = ""
		config.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(config)
	}

	return zap.New(zapcore.NewCore(encoder, zapcore.AddSync(w), level))
}
