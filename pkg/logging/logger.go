// Package logging configures structured zerolog logging for search components.
package logging

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LogLevel represents the logging level.
type LogLevel string

const (
	// LevelDebug logs per-page state transitions and above.
	LevelDebug LogLevel = "debug"

	// LevelInfo logs stream completion and above.
	LevelInfo LogLevel = "info"

	// LevelWarn logs provider failures and above.
	LevelWarn LogLevel = "warn"

	// LevelError logs error messages only.
	LevelError LogLevel = "error"
)

// Config holds logger configuration.
type Config struct {
	// Level is the minimum log level to output.
	Level LogLevel

	// Pretty enables human-readable console output (default: false for JSON).
	Pretty bool

	// Output is the writer to output logs to (default: os.Stderr).
	Output io.Writer
}

// DefaultConfig returns a default logger configuration.
func DefaultConfig() Config {
	return Config{
		Level:  LevelInfo,
		Pretty: false,
		Output: os.Stderr,
	}
}

// ConfigFromEnv builds a configuration from LOG_LEVEL and LOG_PRETTY.
// Unset or unparsable values keep their defaults.
func ConfigFromEnv(getenv func(string) string) Config {
	cfg := DefaultConfig()

	if level := getenv("LOG_LEVEL"); level != "" {
		cfg.Level = LogLevel(level)
	}
	if pretty, err := strconv.ParseBool(getenv("LOG_PRETTY")); err == nil {
		cfg.Pretty = pretty
	}

	return cfg
}

// Setup configures the global zerolog logger and returns it.
func Setup(cfg Config) zerolog.Logger {
	zerolog.SetGlobalLevel(parseLevel(cfg.Level))

	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}
	if cfg.Pretty {
		output = zerolog.ConsoleWriter{Out: output}
	}

	logger := zerolog.New(output).With().Timestamp().Logger()
	log.Logger = logger

	return logger
}

// parseLevel converts LogLevel to zerolog.Level.
func parseLevel(level LogLevel) zerolog.Level {
	switch strings.ToLower(string(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// NewLogger creates a logger derived from the global one, tagged with
// the component name.
func NewLogger(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

// Log Level Guidelines:
//
// Debug: per-step detail
//   - State transitions (page, phase, item count)
//   - Emitted results
//   - Streams ended by cancellation
//
// Info: stream lifecycle
//   - Stream completion (pages, duration)
//   - Demo startup/shutdown
//
// Warn: failures that end one stream
//   - Item provider errors (e.g. Redis unavailable)
//
// Error: failures requiring attention
//   - Configuration errors
//   - Metrics server failures
//
// Context Fields:
//   - component: emitting package ("search", "items", "demo")
//   - search_term: term of the stream
//   - page: page number
//   - items: items on the page
//   - phase: state phase (new, has_items, done)
//   - outcome: stream outcome (done, cancelled, error)
//   - duration: step or stream duration
