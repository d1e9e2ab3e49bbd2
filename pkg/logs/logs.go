// Package logs builds the process logger.
package logs

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/polijecare/polijecare_web/config"
)

const defaultService = "polijecare-web"

// New builds a logger from config. Records fan out to every enabled sink:
// stdout, a rotating file and Loki.
func New(cfg *config.Config) *slog.Logger {
	level := parseLevel(cfg.Logging.Level)
	out := cfg.Logging.Output
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: strings.EqualFold(cfg.Server.Environment, "development"),
	}

	var writers []io.Writer
	if out.Stdout || (!out.File.Enabled && !out.Loki.Enabled) {
		writers = append(writers, os.Stdout)
	}
	if out.File.Enabled {
		writers = append(writers, &lumberjack.Logger{
			Filename:   out.File.Path,
			MaxSize:    out.File.MaxSizeMB,
			MaxBackups: out.File.MaxBackups,
			MaxAge:     out.File.MaxAgeDays,
			Compress:   out.File.Compress,
		})
	}

	var handlers []slog.Handler
	if len(writers) > 0 {
		handlers = append(handlers, newHandler(io.MultiWriter(writers...), cfg.Logging.Format, cfg.IsProduction(), opts))
	}
	if out.Loki.Enabled {
		handlers = append(handlers, slog.NewJSONHandler(newLokiWriter(cfg), &slog.HandlerOptions{Level: level}))
	}

	service := cfg.Observability.ServiceName
	if service == "" {
		service = defaultService
	}
	return slog.New(Fanout(handlers...)).With(
		slog.String("service", service),
		slog.String("version", cfg.Observability.ServiceVersion),
		slog.String("env", cfg.Server.Environment),
	)
}

// NewCLI is the logger for interactive commands: warnings and above, as
// text on stderr so command output stays clean.
func NewCLI(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func newHandler(w io.Writer, format string, production bool, opts *slog.HandlerOptions) slog.Handler {
	if strings.EqualFold(format, "json") || production {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
