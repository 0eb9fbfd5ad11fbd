package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type sanitizerApp struct {
	baseCmd    *cobra.Command
	baseConfig *baseConfiguration
}

// New creates the sanitizer application, nil "logF" means the default logger builder.
func New(logF LoggerFactory) *sanitizerApp {
	baseCmd, baseConfig := newBaseCmd(logF)
	return &sanitizerApp{baseCmd, baseConfig}
}

// Execute adds all child commands and runs the application
func (a *sanitizerApp) Execute(ctx context.Context) error {
	return a.addAndExecuteCommand(ctx)
}

func (a *sanitizerApp) addAndExecuteCommand(ctx context.Context) error {
	a.baseCmd.AddCommand(newSanitizeCmd(a.baseConfig))
	a.baseCmd.AddCommand(newBatchCmd(a.baseConfig))
	a.baseCmd.AddCommand(newTableCmd(a.baseConfig))
	a.baseCmd.AddCommand(newKeysCmd(a.baseConfig))
	a.baseCmd.AddCommand(newVersionCmd())
	return a.baseCmd.ExecuteContext(ctx)
}

func newBaseCmd(logF LoggerFactory) (*cobra.Command, *baseConfiguration) {
	config := &baseConfiguration{loggerBuilder: logF}
	var baseCmd = &cobra.Command{
		Use:           "sanitizer",
		Short:         "Transaction sanitizer",
		Long:          `Sanitizes wire transactions: resolves account keys (using address lookup tables), computes account locks and verifies signatures.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// subcommands which do not define PersistentPreRunE use this one
			if err := initializeConfig(cmd, config); err != nil {
				return fmt.Errorf("failed to initialize configuration: %w", err)
			}
			return nil
		},
	}
	config.addConfigurationFlags(baseCmd)

	return baseCmd, config
}

func initializeConfig(cmd *cobra.Command, config *baseConfiguration) error {
	var errs []error
	if err := config.initializeConfig(cmd); err != nil {
		errs = append(errs, fmt.Errorf("reading configuration: %w", err))
	}
	if err := config.initLogger(cmd); err != nil {
		errs = append(errs, fmt.Errorf("initializing logger: %w", err))
	}
	return errors.Join(errs...)
}

// initializeConfig reads in config file and ENV variables if set.
func (config *baseConfiguration) initializeConfig(cmd *cobra.Command) error {
	v := viper.New()

	config.initConfigFileLocation()

	if config.configFileExists() {
		v.SetConfigFile(config.CfgFile)
	}

	// missing config file is fine, invalid one is not
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
	}

	if err := bindFlags(cmd, v); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}
	return nil
}

/*
bindFlags sets the flags of "cmd" not given on command line from config file
or env. Env name is the flag name upper cased with "-" replaced by "_" and
SANITIZER_ prefix, ie --lock-limit binds to SANITIZER_LOCK_LIMIT.
*/
func bindFlags(cmd *cobra.Command, v *viper.Viper) error {
	var errs []error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Name == keyHome || f.Name == keyConfig {
			return
		}
		if err := v.BindEnv(f.Name, envKey(strings.ReplaceAll(f.Name, "-", "_"))); err != nil {
			errs = append(errs, fmt.Errorf("binding env to flag %q: %w", f.Name, err))
			return
		}
		if f.Changed || !v.IsSet(f.Name) {
			return
		}
		if err := setFlagValue(cmd.Flags(), f, v.Get(f.Name)); err != nil {
			errs = append(errs, fmt.Errorf("setting flag %q value: %w", f.Name, err))
		}
	})
	return errors.Join(errs...)
}

/*
setFlagValue sets flag value from config. Slice flags append on Set so the
list is set item by item, config value may be either a list or a comma
separated string.
*/
func setFlagValue(flags *pflag.FlagSet, f *pflag.Flag, val any) error {
	sv, ok := f.Value.(pflag.SliceValue)
	if !ok {
		return flags.Set(f.Name, fmt.Sprintf("%v", val))
	}
	var items []string
	switch v := val.(type) {
	case []any:
		for _, item := range v {
			items = append(items, fmt.Sprintf("%v", item))
		}
	case []string:
		items = v
	default:
		items = strings.Split(fmt.Sprintf("%v", v), ",")
	}
	return sv.Replace(items)
}
