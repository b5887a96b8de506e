// Package queue carries parse jobs and their results over AMQP.
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/streadway/amqp"

	"github.com/jonathan/career-navigator/internal/logging"
	"github.com/jonathan/career-navigator/internal/types"
)

// Result statuses
const (
	StatusParsed = "parsed"
	StatusFailed = "failed"
)

var validate = validator.New()

// ParseJob asks a worker to parse one stored résumé.
type ParseJob struct {
	ResumeID  string      `json:"resumeId" validate:"required,uuid"`
	Bucket    string      `json:"bucket"`
	ObjectKey string      `json:"objectKey" validate:"required"`
	MimeType  string      `json:"mimeType"`
	Filename  string      `json:"filename"`
	Field     types.Field `json:"field,omitempty"`
	Role      string      `json:"role,omitempty"`
}

// Target returns the gap analysis target carried by the job, if any.
func (j ParseJob) Target() (types.Target, bool) {
	t := types.Target{Field: j.Field, Role: j.Role}
	if t.Field == "" && t.Role == "" {
		return t, false
	}
	return t, true
}

// ParseResult reports the outcome of a ParseJob.
type ParseResult struct {
	ResumeID  string           `json:"resumeId"`
	Status    string           `json:"status"`
	Error     string           `json:"error,omitempty"`
	Profile   *types.Profile   `json:"profile,omitempty"`
	GapReport *types.GapReport `json:"gapReport,omitempty"`
	Timestamp time.Time        `json:"timestamp"`
}

// Handler processes one job. A returned error marks the result failed.
type Handler func(ctx context.Context, job ParseJob) (*ParseResult, error)

// Conn is a connection with one channel and the two declared queues.
type Conn struct {
	conn        *amqp.Connection
	ch          *amqp.Channel
	parseQueue  string
	resultQueue string
	log         *logging.Logger
}

// Dial connects to the broker and declares both durable queues.
func Dial(url, parseQueue, resultQueue string, log *logging.Logger) (*Conn, error) {
	if log == nil {
		log = logging.Nop()
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("error dialling rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("error opening rabbitmq channel: %w", err)
	}

	for _, name := range []string{parseQueue, resultQueue} {
		_, err = ch.QueueDeclare(
			name,  // queue name
			true,  // durable
			false, // auto-delete when unused
			false, // exclusive
			false, // no-wait
			nil,   // arguments
		)
		if err != nil {
			ch.Close()
			conn.Close()
			return nil, fmt.Errorf("failed to declare queue %s: %w", name, err)
		}
	}

	return &Conn{conn: conn, ch: ch, parseQueue: parseQueue, resultQueue: resultQueue, log: log}, nil
}

// Close closes the channel and connection
func (c *Conn) Close() error {
	if c.ch != nil {
		_ = c.ch.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// PublishJob enqueues a parse job
func (c *Conn) PublishJob(job ParseJob) error {
	return c.publish(c.parseQueue, job)
}

// PublishResult enqueues a parse result
func (c *Conn) PublishResult(result ParseResult) error {
	return c.publish(c.resultQueue, result)
}

func (c *Conn) publish(queue string, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal message for %s: %w", queue, err)
	}
	return c.ch.Publish(
		"",    // default exchange
		queue, // routing key
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
}

// Consume processes parse jobs one at a time until ctx is cancelled or the
// delivery channel closes. Every job produces a ParseResult on the result
// queue. Malformed messages are rejected without requeue.
func (c *Conn) Consume(ctx context.Context, handle Handler) error {
	if err := c.ch.Qos(1, 0, false); err != nil {
		return fmt.Errorf("failed to set qos: %w", err)
	}
	msgs, err := c.ch.Consume(
		c.parseQueue, // queue name
		"",           // consumer tag
		false,        // auto-ack
		false,        // exclusive
		false,        // no-local
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		return fmt.Errorf("error consuming rabbitmq messages: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-msgs:
			if !ok {
				return nil
			}
			c.deliver(ctx, msg, handle)
		}
	}
}

func (c *Conn) deliver(ctx context.Context, msg amqp.Delivery, handle Handler) {
	job, err := DecodeJob(msg.Body)
	if err != nil {
		c.log.Warn("rejecting malformed parse job", "error", err)
		_ = msg.Nack(false, false)
		return
	}

	result := Process(ctx, job, handle)
	if err := c.PublishResult(*result); err != nil {
		c.log.Error("failed to publish parse result", "resume_id", job.ResumeID, "error", err)
		_ = msg.Nack(false, true)
		return
	}
	_ = msg.Ack(false)
}

// Process runs handle for job and converts its outcome into a ParseResult.
func Process(ctx context.Context, job ParseJob, handle Handler) *ParseResult {
	result, err := handle(ctx, job)
	if err != nil {
		return &ParseResult{
			ResumeID:  job.ResumeID,
			Status:    StatusFailed,
			Error:     err.Error(),
			Timestamp: time.Now().UTC(),
		}
	}
	if result == nil {
		result = &ParseResult{}
	}
	result.ResumeID = job.ResumeID
	if result.Status == "" {
		result.Status = StatusParsed
	}
	if result.Timestamp.IsZero() {
		result.Timestamp = time.Now().UTC()
	}
	return result
}

// DecodeJob unmarshals and validates a parse job body.
func DecodeJob(body []byte) (ParseJob, error) {
	var job ParseJob
	if err := json.Unmarshal(body, &job); err != nil {
		return job, fmt.Errorf("error unmarshalling message body: %w", err)
	}
	if err := validate.Struct(job); err != nil {
		return job, fmt.Errorf("invalid parse job: %w", err)
	}
	if job.Field != "" && !job.Field.Valid() {
		return job, fmt.Errorf("invalid parse job: unknown field %q", job.Field)
	}
	return job, nil
}
