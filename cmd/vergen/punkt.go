// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/vergen/internal/rulebook"
	"github.com/pdiddy/vergen/internal/secrets"
	"github.com/pdiddy/vergen/internal/sentence"
	"github.com/pdiddy/vergen/pkg/types"
)

const (
	defaultTimeout   = 60 * time.Second
	defaultUserAgent = "vergen/0.1"
)

var punktCmd = &cobra.Command{
	Use:   "punkt",
	Short: "Manage sentence segmentation training data",
	Long: `Punkt manages the training data of the sentence tokenizer used to split
prose lines. An English model is embedded in the binary; fetch downloads a
copy into the training file so it can be inspected or replaced.`,
}

var punktFetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download Punkt training data into the training file",
	Long: `Fetch downloads Punkt training JSON from --url and stores it at
--punkt-data. Proxy settings come from the secrets directory (http-proxy,
https-proxy, no-proxy) or the environment. An invalid download never
replaces an existing file.`,
	RunE: runPunktFetch,
}

func runPunktFetch(cmd *cobra.Command, args []string) error {
	cfg := segmenterConfig()

	client := &http.Client{
		Timeout:   cfg.Timeout,
		Transport: &http.Transport{Proxy: secrets.ProxyFunc(loadedSecrets)},
	}
	return sentence.FetchTraining(cmd.Context(), client, cfg, cmd.OutOrStdout())
}

// segmenterConfig assembles the segmenter settings from flags, config file,
// and environment.
func segmenterConfig() types.SegmenterConfig {
	cfg := types.SegmenterConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:    viper.GetDuration("http.timeout"),
			UserAgent:  viper.GetString("http.user_agent"),
			MaxRetries: viper.GetInt("http.max_retries"),
		},
		TrainingFile: viper.GetString("segmenter.training_file"),
		TrainingURL:  viper.GetString("segmenter.training_url"),
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if cfg.TrainingFile == "" {
		cfg.TrainingFile = defaultTrainingFile()
	}
	return cfg
}

func defaultTrainingFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = ".vergen"
	}
	return filepath.Join(dir, "vergen", "punkt", "english.json")
}

// newValidator initializes the shared segmenter and returns a validator for
// the default rulebook.
func newValidator() (*rulebook.Validator, error) {
	seg, err := sentence.Init(segmenterConfig())
	if err != nil {
		return nil, err
	}
	return rulebook.New(types.DefaultRulebook(), seg), nil
}

func init() {
	rootCmd.PersistentFlags().String("punkt-data", "", "Punkt training JSON (default: user cache dir; embedded model when absent)")
	viper.BindPFlag("segmenter.training_file", rootCmd.PersistentFlags().Lookup("punkt-data"))

	punktFetchCmd.Flags().String("url", sentence.DefaultTrainingURL, "training data URL")
	punktFetchCmd.Flags().Duration("timeout", defaultTimeout, "HTTP request timeout")
	viper.BindPFlag("segmenter.training_url", punktFetchCmd.Flags().Lookup("url"))
	viper.BindPFlag("http.timeout", punktFetchCmd.Flags().Lookup("timeout"))
	viper.SetDefault("http.max_retries", 5)

	punktCmd.AddCommand(punktFetchCmd)
	rootCmd.AddCommand(punktCmd)
}
