// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package debuglog builds mercer's logger. Every line reads
// "(timestamp) Mercer: message". Lines are echoed to the console and, in
// debug mode, appended to the debug log file. Failures to write the file
// are swallowed so logging never fails the caller.
package debuglog

import (
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pdiddy/mercer/pkg/types"
)

// Tag is the logger name printed before every message.
const Tag = "Mercer"

// TimeLayout formats the timestamp inside the leading parentheses.
const TimeLayout = "2006-01-02 15:04:05"

// EncoderConfig returns the console encoder settings that produce the
// "(timestamp) Mercer: message" line format.
func EncoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:    "time",
		NameKey:    "logger",
		MessageKey: "msg",
		LineEnding: zapcore.DefaultLineEnding,
		EncodeTime: func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
			enc.AppendString("(" + t.Format(TimeLayout) + ")")
		},
		EncodeName: func(name string, enc zapcore.PrimitiveArrayEncoder) {
			enc.AppendString(name + ":")
		},
		EncodeDuration:   zapcore.StringDurationEncoder,
		ConsoleSeparator: " ",
	}
}

// New returns a logger writing to console (nil disables the echo) and, when
// cfg.Debug is set, appending to cfg.File. The returned close function
// flushes and closes the file. An unopenable debug file is reported on the
// console and otherwise ignored.
func New(cfg types.LogConfig, console io.Writer) (*zap.Logger, func() error) {
	enc := zapcore.NewConsoleEncoder(EncoderConfig())

	level := zapcore.InfoLevel
	if cfg.Debug {
		level = zapcore.DebugLevel
	}

	var cores []zapcore.Core
	if console != nil && !cfg.Quiet {
		cores = append(cores, zapcore.NewCore(enc, zapcore.AddSync(console), level))
	}

	closeFn := func() error { return nil }
	var openErr error
	if cfg.Debug && cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			openErr = fmt.Errorf("opening debug log %s: %w", cfg.File, err)
		} else {
			cores = append(cores, zapcore.NewCore(enc.Clone(), zapcore.AddSync(silentWriter{f}), zapcore.DebugLevel))
			closeFn = func() error {
				_ = f.Sync()
				return f.Close()
			}
		}
	}

	logger := zap.New(zapcore.NewTee(cores...), zap.ErrorOutput(zapcore.AddSync(io.Discard))).Named(Tag)
	if openErr != nil {
		logger.Warn("debug log unavailable", zap.Error(openErr))
	}
	return logger, closeFn
}

// silentWriter reports every write as successful so a failing log file
// never surfaces an error.
type silentWriter struct {
	w io.Writer
}

func (s silentWriter) Write(p []byte) (int, error) {
	_, _ = s.w.Write(p)
	return len(p), nil
}
