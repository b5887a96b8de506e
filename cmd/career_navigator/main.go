// Package main provides the career_navigator CLI: résumé parsing, skill gap
// analysis, the HTTP API server and the parse queue worker.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jonathan/career-navigator/internal/config"
	"github.com/jonathan/career-navigator/internal/logging"
	"github.com/jonathan/career-navigator/internal/parsing"
)

var (
	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "career_navigator",
	Short: "Résumé extraction and skill gap analysis",
	Long: "career_navigator extracts structured profiles from résumés, classifies them into career fields " +
		"and compares their skills against fields and roles.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a JSON config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides config")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig resolves the effective configuration for a command.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// newParser builds a profile parser from the extraction settings in cfg.
func newParser(cfg *config.Config, log *logging.Logger) (*parsing.Parser, error) {
	opts, err := cfg.ParserOptions()
	if err != nil {
		return nil, fmt.Errorf("invalid extraction settings: %w", err)
	}
	return parsing.New(log, opts)
}
