package kafka

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sanghtth/product-dashboard/internal/core/domain"
	"github.com/sanghtth/product-dashboard/internal/core/port"
	"github.com/sanghtth/product-dashboard/pkg/retry"
	"github.com/sanghtth/product-dashboard/pkg/schema"
	"github.com/twmb/franz-go/pkg/kgo"
)

var _ port.ActivityProducer = (*ActivityProducer)(nil)

const produceAttempts = 3

// ActivityProducer publishes dashboard activity events to the broker.
// Producing retries with bounded backoff: the activity stream is
// side traffic and may ride out short broker hiccups.
type ActivityProducer struct {
	cl      ProducerClient
	encoder Encoder
}

func NewActivityProducer(opts ...ProducerOpt) (ActivityProducer, error) {
	const op = "NewActivityProducer"

	if len(opts) != 2 {
		panic(fmt.Errorf("%s: %w", op, ErrTooFewOpts)) // develop mistake
	}

	var options producerOpts
	for _, opt := range opts {
		if err := opt(&options); err != nil {
			return ActivityProducer{}, fmt.Errorf("%s: %w", op, err)
		}
	}
	return ActivityProducer{options.cl, options.encoder}, nil
}

func (p ActivityProducer) Close() {
	const op = "ActivityProducer.Close"
	log := slog.With("op", op)
	log.Info("closing producer...")
	p.cl.Close()
	log.Info("producer is closed")
}

func (p ActivityProducer) ProduceActivity(
	ctx context.Context, e domain.ActivityEvent,
) error {
	const op = "ActivityProducer.ProduceActivity"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	r, err := p.createRecord(e)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	retryConfig := retry.RetryConfig{
		MaxAttempts: produceAttempts,
		Backoff:     retry.ExponentialBackoff(100 * time.Millisecond),
	}
	err = retry.Do(ctx, retryConfig, func() error {
		return p.cl.ProduceSync(ctx, r).FirstErr()
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (p ActivityProducer) createRecord(e domain.ActivityEvent) (*kgo.Record, error) {
	v := schema.ActivityEventV1{
		Action:     string(e.Action),
		Query:      e.Query,
		ProductID:  e.ProductID,
		Page:       e.Page,
		OccurredAt: e.OccurredAt.UnixMilli(),
	}

	data, err := p.encoder.Encode(v)
	if err != nil {
		return nil, err
	}

	return &kgo.Record{
		Key:   []byte(e.Action),
		Value: data,
	}, nil
}
