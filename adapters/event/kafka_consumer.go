package event

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/khoahotran/profile-studio/internal/config"
	"github.com/khoahotran/profile-studio/internal/domain/activity"
	"github.com/khoahotran/profile-studio/pkg/logger"
)

// MessageReader is the subset of *kafka.Reader the consumer loop needs.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type ProfileEventHandler func(ctx context.Context, e activity.ProfileEvent) error

type ProfileEventConsumer struct {
	reader     MessageReader
	handle     ProfileEventHandler
	logger     logger.Logger
	newBackOff func() backoff.BackOff
}

type ConsumerOption func(*ProfileEventConsumer)

// WithRetryBackOff sets the delay policy between handler retries on one message.
func WithRetryBackOff(newBackOff func() backoff.BackOff) ConsumerOption {
	return func(c *ProfileEventConsumer) {
		c.newBackOff = newBackOff
	}
}

func defaultBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxInterval = 30 * time.Second
	return b
}

func NewKafkaReader(cfg config.Config) *kafka.Reader {
	topic := cfg.Kafka.Topic
	if topic == "" {
		topic = TopicProfileEvents
	}
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Kafka.Brokers,
		Topic:    topic,
		GroupID:  cfg.Kafka.GroupID,
		MinBytes: 10e3,
		MaxBytes: 10e6,
	})
}

func NewProfileEventConsumer(reader MessageReader, handle ProfileEventHandler, log logger.Logger, opts ...ConsumerOption) *ProfileEventConsumer {
	c := &ProfileEventConsumer{reader: reader, handle: handle, logger: log, newBackOff: defaultBackOff}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run consumes until ctx is cancelled. Undecodable messages are committed and skipped.
// A failing handler is retried on the same message until it succeeds, so no later
// offset is committed past an unprocessed event. On cancellation the message stays
// uncommitted and is redelivered to the next consumer.
func (c *ProfileEventConsumer) Run(ctx context.Context) error {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			c.logger.Error("Failed to read message from Kafka", err)
			continue
		}

		var e activity.ProfileEvent
		if err := json.Unmarshal(msg.Value, &e); err != nil {
			c.logger.Warn("Failed to decode profile event, skipping", zap.String("key", string(msg.Key)), zap.Error(err))
			c.commit(ctx, msg)
			continue
		}

		if err := c.process(ctx, e); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			c.logger.Error("Giving up on profile event", err, zap.String("event_id", e.ID.String()))
			return err
		}
		c.commit(ctx, msg)
	}
}

func (c *ProfileEventConsumer) process(ctx context.Context, e activity.ProfileEvent) error {
	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		return struct{}{}, c.handle(ctx, e)
	},
		backoff.WithBackOff(c.newBackOff()),
		backoff.WithMaxElapsedTime(0),
		backoff.WithNotify(func(err error, next time.Duration) {
			c.logger.Error("Failed to process profile event, retrying", err,
				zap.String("event_id", e.ID.String()), zap.Duration("retry_in", next))
		}),
	)
	return err
}

func (c *ProfileEventConsumer) commit(ctx context.Context, msg kafka.Message) {
	if err := c.reader.CommitMessages(ctx, msg); err != nil {
		c.logger.Error("Failed to commit message", err, zap.Int64("offset", msg.Offset))
	}
}
