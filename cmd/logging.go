package cmd

import (
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	loggerOnce sync.Once
	logger     *zap.Logger
)

// Logger returns the application logger, built on first use from
// PAYSCOPE_LOG_LEVEL, PAYSCOPE_LOG_ENCODING and the -v flag.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		level := os.Getenv(EnvLogLevel)
		if *Verbose {
			level = "debug"
		}
		l, err := newLogger(level, os.Getenv(EnvLogEncoding))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not build logger: %v\n", err)
			l = zap.NewNop()
		}
		logger = l
	})
	return logger
}

// newLogger builds a logger writing to stderr, stdout belongs to command output.
func newLogger(level, encoding string) (*zap.Logger, error) {
	if encoding == "" {
		encoding = "console"
	}
	cfg := zap.NewProductionConfig()
	cfg.Encoding = encoding
	switch level {
	case "debug":
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		cfg.Development = true
	case "info":
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "error":
		cfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	cfg.Sampling = nil
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if encoding == "console" {
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	return cfg.Build()
}
