package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kagren/solana-sdk/logger"
)

type (
	LoggerFactory func(cfg *logger.LogConfiguration) (*slog.Logger, error)

	baseConfiguration struct {
		// The sanitizer home directory
		HomeDir string
		// Configuration file URL. If it's relative, then it's relative from the HomeDir.
		CfgFile string
		// Logger configuration file URL.
		LogCfgFile string

		loggerBuilder LoggerFactory
		log           *slog.Logger
	}
)

const (
	// The prefix for configuration keys inside environment.
	envPrefix = "SANITIZER"
	// The default name for config file.
	defaultConfigFile = "config.props"
	// the default sanitizer directory.
	defaultSanitizerDir = ".sanitizer"
	// The default logger configuration file name.
	defaultLoggerConfigFile = "logger-config.yaml"
	// The default lookup table database file name.
	defaultTableDBFile = "tables.db"
	// The configuration key for home directory.
	keyHome = "home"
	// The configuration key for config file name.
	keyConfig = "config"

	flagNameLoggerCfgFile = "logger-config"
	flagNameLogOutputFile = "log-file"
	flagNameLogLevel      = "log-level"
	flagNameLogFormat     = "log-format"
)

func (r *baseConfiguration) addConfigurationFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&r.HomeDir, keyHome, "", fmt.Sprintf("set the SANITIZER_HOME for this invocation (default is %s)", sanitizerHomeDir()))
	cmd.PersistentFlags().StringVar(&r.CfgFile, keyConfig, "", fmt.Sprintf("config file URL (default is $SANITIZER_HOME/%s)", defaultConfigFile))

	cmd.PersistentFlags().StringVar(&r.LogCfgFile, flagNameLoggerCfgFile, defaultLoggerConfigFile, "logger config file URL. Considered absolute if starts with '/'. Otherwise relative from $SANITIZER_HOME.")
	// no default values so that we know whether to use the value from logger cfg file
	cmd.PersistentFlags().String(flagNameLogOutputFile, "", "log file path or one of the special values: stdout, stderr, discard")
	cmd.PersistentFlags().String(flagNameLogLevel, "", "logging level, one of: TRACE, DEBUG, INFO, WARN, ERROR, NONE")
	cmd.PersistentFlags().String(flagNameLogFormat, "", "log format, one of: text, json, console, ecs")
}

// initConfigFileLocation resolves home dir and config file: flag, then env, then default.
func (r *baseConfiguration) initConfigFileLocation() {
	if r.HomeDir = firstNonEmpty(r.HomeDir, os.Getenv(envKey(keyHome))); r.HomeDir == "" {
		r.HomeDir = sanitizerHomeDir()
	}
	r.CfgFile = r.inHome(firstNonEmpty(r.CfgFile, os.Getenv(envKey(keyConfig)), defaultConfigFile))
}

// inHome returns "file" as is when it is absolute, otherwise relative to the home dir.
func (r *baseConfiguration) inHome(file string) string {
	if filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(r.HomeDir, file)
}

// LoggerCfgFilename returns the flag value made absolute using the home dir.
func (r *baseConfiguration) LoggerCfgFilename() string {
	return r.inHome(r.LogCfgFile)
}

func (r *baseConfiguration) configFileExists() bool {
	_, err := os.Stat(r.CfgFile)
	return err == nil
}

func (r *baseConfiguration) defaultTableDB() string {
	return r.inHome(defaultTableDBFile)
}

/*
initLogger creates logger based on the logger configuration file and flags
in "cmd", flags override values loaded from the file. Missing file is only
an error when user has set the file name.
*/
func (r *baseConfiguration) initLogger(cmd *cobra.Command) error {
	loggerCfgFile := filepath.Clean(r.LoggerCfgFilename())
	cfg, err := logger.LoadConfiguration(loggerCfgFile)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) || loggerCfgFile != r.inHome(defaultLoggerConfigFile) {
			return err
		}
		cfg = &logger.LogConfiguration{}
	}

	// flags without default value override the file
	for name, dst := range map[string]*string{
		flagNameLogLevel:      &cfg.Level,
		flagNameLogFormat:     &cfg.Format,
		flagNameLogOutputFile: &cfg.OutputPath,
	} {
		if !cmd.Flags().Changed(name) {
			continue
		}
		if *dst, err = cmd.Flags().GetString(name); err != nil {
			return fmt.Errorf("reading %s flag value: %w", name, err)
		}
	}

	builder := r.loggerBuilder
	if builder == nil {
		builder = logger.New
	}
	l, err := builder(cfg)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	r.log = l
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func envKey(key string) string {
	return strings.ToUpper(envPrefix + "_" + key)
}

func sanitizerHomeDir() string {
	dir, err := os.UserHomeDir()
	if err != nil {
		panic("default user home dir not defined: " + err.Error())
	}
	return filepath.Join(dir, defaultSanitizerDir)
}
