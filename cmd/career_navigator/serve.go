package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-navigator/internal/server"
	"github.com/jonathan/career-navigator/internal/server/ratelimit"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server exposing résumé upload, profile extraction and skill analysis endpoints.
Database, Redis, object storage and RabbitMQ are used when configured.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
	}
	log := cfg.Logger()
	defer func() { _ = log.Sync() }()

	parser, err := newParser(cfg, log)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	b, err := openBackends(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer b.Close()

	opts := server.Options{
		Port:           cfg.Port,
		MaxUploadBytes: cfg.MaxUploadBytes,
		RateLimit:      ratelimit.LoadConfig(cfg.RateLimitPerMinute, cfg.RateLimitBurst),
		Parser:         parser,
		Logger:         log,
	}
	// Interfaces are only set for configured backends so that handlers can
	// test them against nil.
	if b.db != nil {
		opts.Store = b.db
	}
	if b.cache != nil {
		opts.Cache = b.cache
	}
	if b.blob != nil {
		opts.Blob = b.blob
	}
	if b.queue != nil {
		opts.Queue = b.queue
	}

	srv, err := server.New(opts)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
