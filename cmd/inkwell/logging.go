package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"inkwell/internal/config"
)

const (
	logLevelEnvKey  = "INKWELL_LOG_LEVEL"
	logFormatEnvKey = "INKWELL_LOG_FORMAT"
)

// Subsystems named in the component attribute of every log line.
const (
	componentServer  = "server"
	componentBuild   = "build"
	componentWatch   = "watch"
	componentContent = "content"
	componentStore   = "store"
)

type logFormat string

const (
	logFormatText logFormat = "text"
	logFormatJSON logFormat = "json"
)

// logOutput is where CLI logs go. Tests swap it.
var logOutput io.Writer = os.Stderr

// configureLoggerForCLI installs the default logger. The level comes from
// --log-level, then INKWELL_LOG_LEVEL, then log_level. --json switches the
// logs to JSON so they stay machine readable next to JSON output.
func configureLoggerForCLI(flagLevel, configLevel string, jsonOutput bool) (string, error) {
	var warnings []string
	format, err := selectedLogFormat(jsonOutput, os.Getenv(logFormatEnvKey))
	if err != nil {
		warnings = append(warnings, fmt.Sprintf("warning: %v; defaulting to %s", err, logFormatText))
	}

	envLevel := os.Getenv(logLevelEnvKey)
	rawLevel, source := selectedLogLevel(flagLevel, envLevel, configLevel)
	if err := configureDefaultLogger(rawLevel, format); err != nil {
		if source == "flag" {
			return "", fmt.Errorf("invalid --log-level %q", flagLevel)
		}
		_ = configureDefaultLogger("", format)
		switch source {
		case "env":
			warnings = append(warnings, fmt.Sprintf("warning: invalid %s=%q; defaulting to %s", logLevelEnvKey, envLevel, config.DefaultLogLevel))
		case "config":
			warnings = append(warnings, fmt.Sprintf("warning: invalid log_level=%q; defaulting to %s", configLevel, config.DefaultLogLevel))
		}
	}
	return strings.Join(warnings, "\n"), nil
}

func selectedLogLevel(flagLevel, envLevel, configLevel string) (string, string) {
	if strings.TrimSpace(flagLevel) != "" {
		return flagLevel, "flag"
	}
	if strings.TrimSpace(envLevel) != "" {
		return envLevel, "env"
	}
	if strings.TrimSpace(configLevel) != "" {
		return configLevel, "config"
	}
	return "", "default"
}

// selectedLogFormat prefers --json over INKWELL_LOG_FORMAT. An unknown env
// value falls back to text.
func selectedLogFormat(jsonOutput bool, envFormat string) (logFormat, error) {
	if jsonOutput {
		return logFormatJSON, nil
	}
	switch value := logFormat(strings.ToLower(strings.TrimSpace(envFormat))); value {
	case "", logFormatText:
		return logFormatText, nil
	case logFormatJSON:
		return logFormatJSON, nil
	default:
		return logFormatText, fmt.Errorf("invalid %s=%q", logFormatEnvKey, envFormat)
	}
}

func configureDefaultLogger(rawLevel string, format logFormat) error {
	level, err := parseLogLevel(rawLevel)
	if err != nil {
		return err
	}
	slog.SetDefault(newLogger(logOutput, level, format))
	return nil
}

func parseLogLevel(raw string) (slog.Level, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		value = config.DefaultLogLevel
	}
	if strings.EqualFold(value, "warning") {
		value = "warn"
	}

	if numeric, err := strconv.Atoi(value); err == nil {
		return slog.Level(numeric), nil
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(value)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", raw)
	}
	return level, nil
}

func newLogger(w io.Writer, level slog.Level, format logFormat) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if format == logFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// componentLogger tags the default logger with the subsystem it serves.
func componentLogger(component string) *slog.Logger {
	return slog.Default().With("component", component)
}
