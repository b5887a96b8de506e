package main

import (
	"context"
	"fmt"

	"github.com/jonathan/career-navigator/internal/blob"
	"github.com/jonathan/career-navigator/internal/cache"
	"github.com/jonathan/career-navigator/internal/config"
	"github.com/jonathan/career-navigator/internal/db"
	"github.com/jonathan/career-navigator/internal/logging"
	"github.com/jonathan/career-navigator/internal/queue"
)

// backends holds the optional services named in the configuration. A nil
// field means the service is not configured.
type backends struct {
	db    *db.DB
	cache *cache.Cache
	blob  *blob.Store
	queue *queue.Conn
}

// openBackends connects every backend that has a URL or bucket configured.
// On error, anything already opened is closed.
func openBackends(ctx context.Context, cfg *config.Config, log *logging.Logger) (_ *backends, err error) {
	b := &backends{}
	defer func() {
		if err != nil {
			b.Close()
		}
	}()

	if cfg.DatabaseURL != "" {
		if b.db, err = db.Connect(ctx, cfg.DatabaseURL); err != nil {
			return nil, err
		}
		log.Info("connected to database")
	}
	if cfg.RedisURL != "" {
		if b.cache, err = cache.New(ctx, cfg.RedisURL, cfg.CacheTTLDuration()); err != nil {
			return nil, err
		}
		log.Info("connected to redis", "ttl", cfg.CacheTTLDuration())
	}
	if cfg.S3Bucket != "" {
		b.blob, err = blob.New(ctx, blob.Options{
			Bucket:    cfg.S3Bucket,
			Endpoint:  cfg.S3Endpoint,
			Region:    cfg.S3Region,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to configure object storage: %w", err)
		}
		log.Info("object storage configured", "bucket", cfg.S3Bucket)
	}
	if cfg.AMQPURL != "" {
		if b.queue, err = queue.Dial(cfg.AMQPURL, cfg.ParseQueue, cfg.ResultQueue, log); err != nil {
			return nil, err
		}
		log.Info("connected to rabbitmq", "parse_queue", cfg.ParseQueue, "result_queue", cfg.ResultQueue)
	}
	return b, nil
}

// Close releases every open backend.
func (b *backends) Close() {
	if b.queue != nil {
		_ = b.queue.Close()
	}
	if b.cache != nil {
		_ = b.cache.Close()
	}
	if b.db != nil {
		b.db.Close()
	}
}
