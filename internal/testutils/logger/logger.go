package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/kagren/solana-sdk/logger"
)

/*
New returns logger for test t on debug level (unless env var SANITIZER_TEST_LOG_LEVEL
overrides it). Log records are written using t.Log so output is shown only
for failing tests (or when -v flag is used).
*/
func New(t testing.TB) *slog.Logger {
	return NewLvl(t, envLevel(slog.LevelDebug))
}

// NewLvl returns logger for test t on given level.
func NewLvl(t testing.TB, level slog.Level) *slog.Logger {
	l, err := LoggerBuilder(t)(&logger.LogConfiguration{Level: level.String(), Format: format()})
	if err != nil {
		t.Fatalf("creating logger: %v", err)
	}
	return l
}

/*
LoggerBuilder returns logger factory which redirects output of the logger
into t.Log. Configuration passed to the factory is respected except output.
*/
func LoggerBuilder(t testing.TB) func(*logger.LogConfiguration) (*slog.Logger, error) {
	return func(cfg *logger.LogConfiguration) (*slog.Logger, error) {
		return logger.New(cfg.WithWriter(testLogWriter{t: t}))
	}
}

// NOP returns logger which discards everything.
func NOP() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(100)}))
}

type testLogWriter struct {
	t testing.TB
}

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(strings.TrimSuffix(string(p), "\n"))
	return len(p), nil
}

func envLevel(def slog.Level) slog.Level {
	s := os.Getenv("SANITIZER_TEST_LOG_LEVEL")
	if s == "" {
		return def
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return def
	}
	return lvl
}

func format() string {
	if f := os.Getenv("SANITIZER_TEST_LOG_FORMAT"); f != "" {
		return f
	}
	return "console"
}
