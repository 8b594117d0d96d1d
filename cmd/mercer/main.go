// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the mercer CLI. Each subcommand
// loads the dictionary, runs one operation, and saves the dictionary back
// when the operation changed it.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/mercer/internal/debuglog"
	"github.com/pdiddy/mercer/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// logger and closeLog are set up by the root command before any
// subcommand runs.
var (
	logger   = zap.NewNop()
	closeLog = func() error { return nil }
)

// rootCmd is the base command for the mercer CLI.
var rootCmd = &cobra.Command{
	Use:   "mercer",
	Short: "Learn word adjacency from text and generate new sentences",
	Long: `mercer learns which words follow which from the text it reads and keeps
the counts in a dictionary file. It generates new sentences by walking
that dictionary, picking each next word from the continuations that are
nearly as common as the most common one.

Teach it with "mercer learn", then ask for text with "mercer sentence" or
"mercer write".`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger, closeLog = debuglog.New(cfg.Log, cmd.ErrOrStderr())
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		_ = logger.Sync()
		return closeLog()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./mercer.yaml or ~/.config/mercer/config.yaml)")
	pf.Bool("debug", false, "append every log line to the debug log file")
	pf.Bool("quiet", false, "do not echo log lines to the console")
	pf.String("dictionary", "", "dictionary file or database (default dictionary.mercer)")
	pf.String("backend", "", "dictionary storage: json or sqlite (default json)")
	pf.Int("max-attempts", 0, "retries per sentence position before skipping it (default 10)")
	pf.Int("tolerance", 0, "commonality band in percent, clamped to 1-100 (default 75)")

	bindFlag("log.debug", "debug")
	bindFlag("log.quiet", "quiet")
	bindFlag("dictionary.path", "dictionary")
	bindFlag("dictionary.backend", "backend")
	bindFlag("generator.max_attempts", "max-attempts")
	bindFlag("generator.tolerance_percent", "tolerance")

	setDefaults(types.DefaultConfig())
}

func bindFlag(key, flag string) {
	_ = viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag))
}

func setDefaults(d types.Config) {
	viper.SetDefault("dictionary.path", d.Dictionary.Path)
	viper.SetDefault("dictionary.backend", string(d.Dictionary.Backend))
	viper.SetDefault("log.debug", d.Log.Debug)
	viper.SetDefault("log.file", d.Log.File)
	viper.SetDefault("log.quiet", d.Log.Quiet)
	viper.SetDefault("generator.max_attempts", d.Generator.MaxAttempts)
	viper.SetDefault("generator.tolerance_percent", d.Generator.TolerancePercent)
	viper.SetDefault("generator.min_words", d.Generator.MinWords)
	viper.SetDefault("learn.strip_chars", d.Learn.StripChars)
	viper.SetDefault("learn.tokenizer", string(d.Learn.Tokenizer))
	viper.SetDefault("http.timeout", d.HTTP.Timeout)
	viper.SetDefault("http.user_agent", d.HTTP.UserAgent)
	viper.SetDefault("http.max_retries", d.HTTP.MaxRetries)
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("mercer")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "mercer"))
		}
	}

	viper.SetEnvPrefix("MERCER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig assembles the effective settings from flags, MERCER_*
// environment variables, the config file and defaults, in that order.
func loadConfig() (types.Config, error) {
	cfg := types.Config{
		Dictionary: types.DictionaryConfig{
			Path:    viper.GetString("dictionary.path"),
			Backend: types.StoreBackend(strings.ToLower(viper.GetString("dictionary.backend"))),
		},
		Log: types.LogConfig{
			Debug: viper.GetBool("log.debug"),
			File:  viper.GetString("log.file"),
			Quiet: viper.GetBool("log.quiet"),
		},
		Generator: types.GeneratorConfig{
			MaxAttempts:      viper.GetInt("generator.max_attempts"),
			TolerancePercent: viper.GetInt("generator.tolerance_percent"),
			MinWords:         viper.GetInt("generator.min_words"),
		},
		Learn: types.LearnConfig{
			StripChars: viper.GetString("learn.strip_chars"),
			Tokenizer:  types.TokenizerKind(strings.ToLower(viper.GetString("learn.tokenizer"))),
		},
		HTTP: types.HTTPConfig{
			Timeout:    viper.GetDuration("http.timeout"),
			UserAgent:  viper.GetString("http.user_agent"),
			MaxRetries: viper.GetInt("http.max_retries"),
		},
	}

	return cfg, cfg.Validate()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
