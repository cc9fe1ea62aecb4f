// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the review-bot CLI: arXiv search,
// result export, and AI summarization.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/review-bot/internal/secrets"
	"github.com/pdiddy/review-bot/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns fallback when set, otherwise the secret value
// for key if one was loaded.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the review-bot CLI.
var rootCmd = &cobra.Command{
	Use:   "review-bot",
	Short: "Search arXiv and summarize the results",
	Long: `review-bot queries the public arXiv search API with structured
field/operator query strings, prints or exports the matching paper
metadata, and feeds exported results into an AI summarization step.

Search fields: ti (title), au (author), abs (abstract), co (comment),
jr (journal reference), cat (category), rn (report number), all.
Logical operators: AND, OR, ANDNOT. Use "+" for spaces inside terms.

Example:
  review-bot search "cat:cs.AI+OR+cat:cs.LG" --max-results 5 --sort-by submittedDate`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
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
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./review-bot.yaml or ~/.config/review-bot/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("review-bot")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "review-bot"))
		}
	}

	viper.SetEnvPrefix("REVIEW_BOT")
	viper.AutomaticEnv()

	viper.SetDefault("search.timeout", 30*time.Second)
	viper.SetDefault("search.user_agent", "review-bot/"+version)
	viper.SetDefault("search.request_interval", 3*time.Second)
	viper.SetDefault("search.max_retries", 3)
	viper.SetDefault("summary.model", "gemini-1.5-flash")
	viper.SetDefault("summary.timeout", 60*time.Second)
	viper.SetDefault("summary.call_interval", 10*time.Second)
	viper.SetDefault("summary.max_retries", 3)
	viper.SetDefault("history.dir", defaultHistoryDir())
	viper.SetDefault("history.max_results", 20)

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func defaultHistoryDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".review-bot"
	}
	return filepath.Join(home, ".local", "share", "review-bot")
}

func searchConfig() types.SearchConfig {
	return types.SearchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   viper.GetDuration("search.timeout"),
			UserAgent: viper.GetString("search.user_agent"),
		},
		RequestInterval: viper.GetDuration("search.request_interval"),
		MaxRetries:      viper.GetInt("search.max_retries"),
	}
}

func summaryConfig() types.SummaryConfig {
	return types.SummaryConfig{
		AIConfig: types.AIConfig{
			Model:      viper.GetString("summary.model"),
			APIKey:     secretDefault("aistudio-google-api-key", viper.GetString("summary.api_key")),
			MaxRetries: viper.GetInt("summary.max_retries"),
		},
		HTTPConfig: types.HTTPConfig{
			Timeout:   viper.GetDuration("summary.timeout"),
			UserAgent: viper.GetString("search.user_agent"),
		},
		CallInterval: viper.GetDuration("summary.call_interval"),
	}
}

func historyConfig() types.HistoryConfig {
	return types.HistoryConfig{
		Dir:        viper.GetString("history.dir"),
		MaxResults: viper.GetInt("history.max_results"),
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
