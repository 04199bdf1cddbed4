// Package utils holds the logger factory shared by the careermatch commands.
package utils

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LoggerName is the root name of every logger built here.
const LoggerName = "careermatch"

// NewLogger returns a named zap logger. Debug mode uses the development
// config (console output, debug level); otherwise JSON at info level with
// ISO8601 timestamps so batch run logs sort cleanly.
func NewLogger(debug bool) (*zap.Logger, error) {
	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.Named(LoggerName), nil
}
