package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/career-navigator/internal/logging"
	"github.com/jonathan/career-navigator/internal/pipeline"
	"github.com/jonathan/career-navigator/internal/queue"
	"github.com/jonathan/career-navigator/internal/schemas"
	"github.com/jonathan/career-navigator/internal/types"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Consume parse jobs from RabbitMQ",
	Long: `Consume parse jobs, download each résumé from object storage, extract its profile and publish the
result. Results are stored when a database is configured.`,
	RunE: runWorker,
}

func init() {
	rootCmd.AddCommand(workerCmd)
}

// downloader fetches stored résumé files. *blob.Store satisfies it.
type downloader interface {
	Download(ctx context.Context, key string) ([]byte, error)
	Bucket() string
}

func runWorker(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.AMQPURL == "" || cfg.S3Bucket == "" {
		return fmt.Errorf("worker requires AMQP_URL and S3_BUCKET")
	}
	log := cfg.Logger()
	defer func() { _ = log.Sync() }()

	parser, err := newParser(cfg, log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	b, err := openBackends(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer b.Close()

	opts := pipeline.Options{Logger: log}
	if b.db != nil {
		opts.Store = b.db
	}
	if b.cache != nil {
		opts.Cache = b.cache
	}

	log.Info("worker started", "queue", cfg.ParseQueue)
	err = b.queue.Consume(ctx, parseJobHandler(pipeline.New(parser, opts), b.blob, log))
	if errors.Is(err, context.Canceled) {
		log.Info("worker stopped")
		return nil
	}
	return err
}

// parseJobHandler downloads the job's file and runs it through the pipeline.
func parseJobHandler(p *pipeline.Pipeline, files downloader, log *logging.Logger) queue.Handler {
	return func(ctx context.Context, job queue.ParseJob) (*queue.ParseResult, error) {
		id, err := uuid.Parse(job.ResumeID)
		if err != nil {
			return nil, fmt.Errorf("invalid resume id: %w", err)
		}
		jobLog := log.With("resume_id", job.ResumeID, "object_key", job.ObjectKey)
		if job.Bucket != "" && job.Bucket != files.Bucket() {
			jobLog.Warn("job bucket differs from configured bucket", "job_bucket", job.Bucket, "bucket", files.Bucket())
		}

		data, err := files.Download(ctx, job.ObjectKey)
		if err != nil {
			return nil, err
		}

		var target *types.Target
		if t, ok := job.Target(); ok {
			target = &t
		}

		res, err := p.Run(ctx, pipeline.Input{
			ResumeID:  id,
			Filename:  job.Filename,
			MimeType:  job.MimeType,
			ObjectKey: job.ObjectKey,
			Data:      data,
			Target:    target,
		})
		if err != nil {
			jobLog.Warn("parse job failed", "error", err)
			return nil, err
		}
		if err := schemas.ValidateProfile(res.Profile); err != nil {
			jobLog.Warn("profile does not match schema", "error", err)
		}

		jobLog.Info("parse job done", "field", res.Profile.SuggestedField, "confidence", res.Profile.Confidence)
		return &queue.ParseResult{Profile: res.Profile, GapReport: res.GapReport}, nil
	}
}
