package logs

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"funntour/config"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const serviceName = "funntour"

// Params defines the parameters required for the logger
type Params struct {
	fx.In

	Config *config.Config
}

// New creates the process-wide slog.Logger and installs it as the slog default.
func New(params Params) (*slog.Logger, error) {
	logger, err := build(os.Stdout, params.Config.Env)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger)

	return logger, nil
}

func build(w io.Writer, env config.EnvConfig) (*slog.Logger, error) {
	level, err := parseLogLevel(env.Log.Level)
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: level, AddSource: env.Debug}

	var handler slog.Handler
	if env.Log.Pretty {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	name := env.ServiceName
	if name == "" {
		name = serviceName
	}

	attrs := []any{slog.String("service", name)}
	if env.Env != "" {
		attrs = append(attrs, slog.String("env", env.Env))
	}

	return slog.New(handler).With(attrs...), nil
}

// parseLogLevel converts string log level to slog.Level. An empty level means info.
func parseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, errors.Errorf("unknown log level: %s", level)
	}
}
