// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the place-scout CLI.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/place-scout/internal/logging"
	"github.com/pdiddy/place-scout/internal/pipeline"
	"github.com/pdiddy/place-scout/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// Process exit codes.
const (
	exitOK            = 0
	exitError         = 1
	exitNoLocation    = 2
	exitSearchFailed  = 3
	exitPrimaryOutput = 4
)

const (
	defaultUserAgent = "place-scout/0.1"
	defaultLogLevel  = "info"
	defaultLogFormat = logging.FormatConsole
)

var (
	// logger is built from --log-level and --log-format before any command runs.
	logger = zap.NewNop()

	// loadedSecrets holds API keys loaded from .secrets/ at startup.
	loadedSecrets map[string]string
)

// rootCmd is the base command for the place-scout CLI.
var rootCmd = &cobra.Command{
	Use:   "place-scout",
	Short: "Discover, score, and export nearby businesses of a target category",
	Long: `place-scout finds businesses of one category near a point. It plans a set
of category and keyword searches, merges the paged results by place
identifier, fetches full details for each place, scores every candidate
against a tiered taxonomy, and writes the accepted places to JSON and CSV.

Run "place-scout plan" to review the queries a run will issue and
"place-scout discover" to run a batch.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := logging.New(viper.GetString("log_level"), viper.GetString("log_format"))
		if err != nil {
			return err
		}
		logger = l

		s, err := secrets.Load(secrets.DefaultDir, logger)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			logger.Debug("loaded secrets", zap.Strings("keys", keys))
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./place-scout.yaml or ~/.config/place-scout/place-scout.yaml)")
	rootCmd.PersistentFlags().String("log-level", defaultLogLevel, "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", defaultLogFormat, "log format: console or json")
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log_format", rootCmd.PersistentFlags().Lookup("log-format"))
}

func initConfig() {
	// A missing .env is normal; the process environment still applies.
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not load .env: %v\n", err)
		}
	}

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("place-scout")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "place-scout"))
		}
	}

	viper.SetEnvPrefix("PLACE_SCOUT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// exitCode maps a command error to the process exit status.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, pipeline.ErrNoLocation):
		return exitNoLocation
	case errors.Is(err, pipeline.ErrAllQueriesFailed):
		return exitSearchFailed
	case errors.Is(err, pipeline.ErrPrimaryOutput):
		return exitPrimaryOutput
	default:
		return exitError
	}
}

func main() {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	logger.Sync()
	os.Exit(exitCode(err))
}
