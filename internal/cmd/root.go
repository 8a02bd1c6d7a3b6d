// Package cmd implements the schedfootball command line.
package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/Iron-Ham/schedfootball/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "schedfootball",
	Short: "Real-time scheduling priority-inversion harness",
	Long: `schedfootball checks that the highest priority runnable threads are
the ones running, even when low priority threads hold locks that high
priority threads need.

Five teams of SCHED_FIFO threads are put on the field, one player per CPU.
A medium priority offense tries to move a ball while higher priority
defenders block on a chain of locks held by low priority defenders. With
priority inheritance the ball never moves.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $XDG_CONFIG_HOME/schedfootball/config.yaml)")
	rootCmd.PersistentFlags().String("env-file", ".env", "dotenv file loaded before reading the environment")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "text", "log format: text, json")
	rootCmd.PersistentFlags().String("log-dir", "", "write logs to a rotating file in this directory instead of stderr")

	bindFlags(rootCmd.PersistentFlags(), map[string]string{
		"config":         "config",
		"env_file":       "env-file",
		"logging.level":  "log-level",
		"logging.format": "log-format",
		"logging.dir":    "log-dir",
	})
}

// bindFlags binds each viper key to the named flag in fs. A flag only
// overrides the config file and environment when it was set explicitly.
func bindFlags(fs *pflag.FlagSet, bindings map[string]string) {
	for key, name := range bindings {
		flag := fs.Lookup(name)
		if flag == nil {
			panic("cmd: no flag named " + name)
		}
		_ = viper.BindPFlag(key, flag)
	}
}

func initConfig() {
	// The environment may come from a dotenv file; load it before viper
	// starts consulting it.
	if envFile := viper.GetString("env_file"); envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", envFile, err)
		}
	}

	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath(".")
	}

	config.BindEnv()

	// Read config file if it exists (ignore error if not found)
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && viper.GetString("config") != "" {
			fmt.Fprintf(os.Stderr, "warning: failed to read config: %v\n", err)
		}
	}
}
