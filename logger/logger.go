package logger

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

const (
	LevelTrace slog.Level = slog.LevelDebug - 4
	levelNone  slog.Level = math.MaxInt

	consoleTimeFormat = "15:04:05.000000"
	consoleMessageKey = "message"
	consoleErrorKey   = "error"
)

/*
LogConfiguration describes the logger to build. It's fields are meant to be
loaded from yaml file and overridden by command line flags.
*/
type LogConfiguration struct {
	// one of slog level names (DEBUG, INFO, WARN, ERROR) or TRACE or NONE.
	Level string `yaml:"defaultLevel"`
	// one of "text", "json", "ecs", "console". Default is "text".
	Format string `yaml:"format"`
	// file name or one of the special values: stdout, stderr, discard.
	OutputPath string `yaml:"outputPath"`
	// Go time format string or "none" to drop the timestamp.
	TimeFormat string `yaml:"timeFormat"`
	ShowSource bool   `yaml:"showSource"`
	// used instead of OutputPath when not nil.
	writer io.Writer
}

// LoadConfiguration reads logger configuration from yaml file.
func LoadConfiguration(fileName string) (*LogConfiguration, error) {
	f, err := os.Open(filepath.Clean(fileName))
	if err != nil {
		return nil, fmt.Errorf("opening logger configuration file: %w", err)
	}
	defer f.Close()

	cfg := &LogConfiguration{}
	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return nil, fmt.Errorf("decoding logger configuration (%s): %w", fileName, err)
	}
	return cfg, nil
}

// WithWriter returns copy of the configuration which logs into "w".
func (cfg LogConfiguration) WithWriter(w io.Writer) *LogConfiguration {
	cfg.writer = w
	return &cfg
}

/*
New builds logger based on the configuration. Nil configuration results in
default (text format into stderr, INFO level) logger.
*/
func New(cfg *LogConfiguration) (*slog.Logger, error) {
	if cfg == nil {
		cfg = &LogConfiguration{}
	}
	out, err := cfg.output()
	if err != nil {
		return nil, err
	}
	h, err := cfg.handler(out)
	if err != nil {
		return nil, err
	}
	return slog.New(h), nil
}

func (cfg *LogConfiguration) handler(out io.Writer) (slog.Handler, error) {
	opts := &slog.HandlerOptions{
		AddSource: cfg.ShowSource,
		Level:     cfg.logLevel(),
	}

	switch strings.ToLower(cfg.Format) {
	case "", "text":
		opts.ReplaceAttr = composeAttrFmt(formatTimeAttr(cfg.TimeFormat), formatDataAttrAsJSON)
		return slog.NewTextHandler(out, opts), nil
	case "json":
		opts.ReplaceAttr = formatTimeAttr(cfg.TimeFormat)
		return slog.NewJSONHandler(out, opts), nil
	case "ecs":
		opts.ReplaceAttr = composeAttrFmt(formatTimeAttr(cfg.TimeFormat), formatAttrECS)
		return slog.NewJSONHandler(out, opts), nil
	case "console":
		// JSON handler feeds the zerolog console writer which does the pretty printing
		cw := zerolog.ConsoleWriter{Out: out, TimeFormat: consoleTimeFormat, NoColor: !isTerminal(out)}
		if cfg.TimeFormat != "" && cfg.TimeFormat != "none" {
			cw.TimeFormat = cfg.TimeFormat
		}
		if cfg.TimeFormat == "none" {
			cw.PartsExclude = []string{zerolog.TimestampFieldName}
		}
		opts.ReplaceAttr = composeAttrFmt(formatAttrConsole, formatDataAttrAsJSON)
		return slog.NewJSONHandler(cw, opts), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}
}

func (cfg *LogConfiguration) output() (io.Writer, error) {
	if cfg.writer != nil {
		return cfg.writer, nil
	}
	switch cfg.OutputPath {
	case "", "stderr":
		return os.Stderr, nil
	case "stdout":
		return os.Stdout, nil
	case "discard", os.DevNull:
		return io.Discard, nil
	default:
		if err := os.MkdirAll(filepath.Dir(cfg.OutputPath), 0700); err != nil {
			return nil, fmt.Errorf("creating directory for log file: %w", err)
		}
		f, err := os.OpenFile(cfg.OutputPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600) // -rw-------
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		return f, nil
	}
}

/*
logLevel parses the Level field. Unknown level names result in INFO level,
when output is discarded the level is "none" so that handler can skip the
formatting work.
*/
func (cfg *LogConfiguration) logLevel() slog.Level {
	if cfg.OutputPath == "discard" || cfg.OutputPath == os.DevNull {
		return levelNone
	}

	switch strings.ToUpper(cfg.Level) {
	case "TRACE":
		return LevelTrace
	case "NONE":
		return levelNone
	case "WARNING":
		return slog.LevelWarn
	}

	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(cfg.Level)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

func consoleLevel(lvl slog.Level) string {
	switch {
	case lvl < slog.LevelDebug:
		return zerolog.LevelTraceValue
	case lvl < slog.LevelInfo:
		return zerolog.LevelDebugValue
	case lvl < slog.LevelWarn:
		return zerolog.LevelInfoValue
	case lvl < slog.LevelError:
		return zerolog.LevelWarnValue
	default:
		return zerolog.LevelErrorValue
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fi, err := f.Stat()
	return err == nil && fi.Mode()&os.ModeCharDevice != 0
}
