// Package logging builds the zap loggers used by the mdark commands.
package logging

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ErrInvalidLevel is returned for level names zap does not know.
var ErrInvalidLevel = errors.New("invalid log level")

// Options controls logger construction.
type Options struct {
	Level string    // "debug", "info", "warn", "error"; empty means warn
	File  string    // Append to this file instead of Writer
	Quiet bool      // Discard everything
	Out   io.Writer // Defaults to stderr
}

// New returns a console logger and a function that flushes and closes it.
func New(opts Options) (*zap.Logger, func(), error) {
	if opts.Quiet {
		return zap.NewNop(), func() {}, nil
	}

	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, nil, err
	}

	out := opts.Out
	if out == nil {
		out = os.Stderr
	}
	closeFn := func() {}
	if opts.File != "" {
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600) // #nosec G304 -- user-configured log path
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		out = f
		closeFn = func() { _ = f.Close() }
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(out), level)

	logger := zap.New(core).Named("mdark")
	return logger, func() {
		_ = logger.Sync()
		closeFn()
	}, nil
}

// ParseLevel maps a config level name to a zap level.
func ParseLevel(name string) (zapcore.Level, error) {
	if strings.TrimSpace(name) == "" {
		return zapcore.WarnLevel, nil
	}
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(strings.ToLower(name))); err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLevel, name)
	}
	return level, nil
}
