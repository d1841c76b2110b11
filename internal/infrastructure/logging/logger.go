package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/JZongit/Crop-Rotation-Simulator/internal/infrastructure/config"
)

// New builds the process logger. The returned closer releases the log
// file when output is "file"; it is a no-op otherwise.
func New(cfg config.LoggingConfig) (zerolog.Logger, io.Closer, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	out, closer, err := openOutput(cfg)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, err
	}

	if cfg.Format == "text" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen, NoColor: cfg.Output == "file"}
	}

	ctx := zerolog.New(out).Level(level).With().Timestamp()
	if cfg.IncludeCaller {
		ctx = ctx.Caller()
	}
	return ctx.Logger(), closer, nil
}

func openOutput(cfg config.LoggingConfig) (io.Writer, io.Closer, error) {
	switch cfg.Output {
	case "stdout":
		return os.Stdout, nopCloser{}, nil
	case "stderr", "":
		return os.Stderr, nopCloser{}, nil
	case "file":
		if cfg.FilePath == "" {
			return nil, nil, fmt.Errorf("logging.file_path is required when output is file")
		}
		if cfg.Rotation.Enabled {
			lj := &lumberjack.Logger{
				Filename:   cfg.FilePath,
				MaxSize:    cfg.Rotation.MaxSize,
				MaxBackups: cfg.Rotation.MaxBackups,
				MaxAge:     cfg.Rotation.MaxAge,
				Compress:   cfg.Rotation.Compress,
			}
			return lj, lj, nil
		}
		f, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		return f, f, nil
	default:
		return nil, nil, fmt.Errorf("unsupported log output: %s", cfg.Output)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
