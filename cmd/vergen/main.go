// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the vergen CLI, which checks
// verification criteria against the Pre-Condition / Acceptance Criteria /
// Input / Output rulebook.
package main

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/vergen/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// configFile is the config file read by initConfig, empty when none was found.
var configFile string

// loadedSecrets holds proxy settings loaded from the secrets directory at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the vergen CLI.
var rootCmd = &cobra.Command{
	Use:   "vergen",
	Short: "Validate verification criteria against the rulebook",
	Long: `vergen checks requirement entries for the four rulebook headings:
Pre-Condition, Acceptance Criteria, Input, and Output. Headings may appear in
any order, with any bullet or numbering style, in any casing.

Use check for a single entry and validate for a whole workbook column.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		initLogging(os.Stderr)

		s, err := secrets.Load(viper.GetString("secrets_dir"))
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
			slog.Debug("loaded secrets", "keys", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./vergen.yaml or ~/.config/vergen/vergen.yaml)")
	rootCmd.PersistentFlags().String("secrets-dir", ".secrets/", "directory of secret files (http-proxy, https-proxy, no-proxy)")
	rootCmd.PersistentFlags().Bool("verbose", false, "enable debug logging")

	viper.BindPFlag("secrets_dir", rootCmd.PersistentFlags().Lookup("secrets-dir"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("vergen")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "vergen"))
		}
	}

	viper.SetEnvPrefix("VERGEN")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	configFile = ""
	if err := viper.ReadInConfig(); err == nil {
		configFile = viper.ConfigFileUsed()
	}
}

// initLogging installs the default slog handler on w and then reports the
// config file, so that line honors --verbose like every other.
func initLogging(w io.Writer) {
	level := slog.LevelInfo
	if viper.GetBool("verbose") {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
	if configFile != "" {
		slog.Info("using config file", "path", configFile)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
