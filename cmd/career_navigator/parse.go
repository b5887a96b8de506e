package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-navigator/internal/cache"
	"github.com/jonathan/career-navigator/internal/db"
	"github.com/jonathan/career-navigator/internal/observability"
	"github.com/jonathan/career-navigator/internal/pipeline"
	"github.com/jonathan/career-navigator/internal/schemas"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>...",
	Short: "Extract profiles from résumé files",
	Long: "Decode one or more résumé files (PDF, DOCX, DOC, RTF, ODT, HTML or text), extract a structured " +
		"profile from each and optionally analyze its skill gap against a field or role.",
	Args: cobra.MinimumNArgs(1),
	RunE: runParse,
}

var (
	parseField       string
	parseRole        string
	parseConcurrency int
	parseJSON        bool
	parseValidate    bool
	parseStore       bool
	parseVerbose     bool
)

func init() {
	parseCmd.Flags().StringVar(&parseField, "field", "", "Analyze the skill gap against a career field")
	parseCmd.Flags().StringVar(&parseRole, "role", "", "Analyze the skill gap against a job role")
	parseCmd.Flags().IntVarP(&parseConcurrency, "concurrency", "c", 4, "Maximum files processed at once")
	parseCmd.Flags().BoolVar(&parseJSON, "json", false, "Print results as JSON")
	parseCmd.Flags().BoolVar(&parseValidate, "validate", false, "Check each profile against the profile JSON schema")
	parseCmd.Flags().BoolVar(&parseStore, "store", false, "Persist results to the configured database and cache")
	parseCmd.Flags().BoolVarP(&parseVerbose, "verbose", "v", false, "Print pipeline progress")

	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := cfg.Logger()
	defer func() { _ = log.Sync() }()

	target, err := targetFromFlags(parseField, parseRole, false)
	if err != nil {
		return err
	}
	parser, err := newParser(cfg, log)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	opts := pipeline.Options{Logger: log}
	if parseVerbose {
		errOut := cmd.ErrOrStderr()
		opts.OnProgress = func(ev pipeline.ProgressEvent) {
			fmt.Fprintf(errOut, "[%s] %s\n", ev.Step, ev.Message)
		}
	}
	if parseStore {
		if cfg.DatabaseURL == "" {
			return fmt.Errorf("--store requires DATABASE_URL")
		}
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer database.Close()
		opts.Store = database

		if cfg.RedisURL != "" {
			c, err := cache.New(ctx, cfg.RedisURL, cfg.CacheTTLDuration())
			if err != nil {
				return err
			}
			defer c.Close()
			opts.Cache = c
		}
	}

	results, err := pipeline.New(parser, opts).RunFiles(ctx, args, target, parseConcurrency)
	if err != nil {
		return err
	}

	if parseValidate {
		for i := range results {
			if results[i].Result == nil {
				continue
			}
			if err := schemas.ValidateProfile(results[i].Result.Profile); err != nil {
				results[i].Error = err.Error()
				results[i].Result = nil
			}
		}
	}

	if parseJSON {
		if err := writeJSON(cmd.OutOrStdout(), results); err != nil {
			return err
		}
	} else {
		printFileResults(cmd.OutOrStdout(), results)
	}

	failed := 0
	for _, r := range results {
		if r.Error != "" {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(results))
	}
	return nil
}

func printFileResults(out io.Writer, results []pipeline.FileResult) {
	printer := observability.NewPrinter(out)
	for _, r := range results {
		fmt.Fprintf(out, "%s\n", r.Path)
		if r.Error != "" {
			fmt.Fprintf(out, "  error: %s\n\n", r.Error)
			continue
		}
		printer.PrintProfile(r.Result.Profile)
		if r.Result.GapReport != nil {
			printer.PrintGapReport(r.Result.GapReport)
		}
		fmt.Fprintln(out)
	}
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
