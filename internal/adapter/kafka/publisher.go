// Package kafka streams simulation results to downstream consumers
// (report renderers, analytics) over a Kafka topic. Publishing is
// best-effort: the simulation response never waits on or fails with
// the stream.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/pfas-riskscope/internal/domain"
	"github.com/couchcryptid/pfas-riskscope/internal/observability"
)

// publishTimeout bounds one broker write once it is detached from the
// caller's request.
const publishTimeout = 10 * time.Second

// Publisher produces simulation results to the results topic.
type Publisher struct {
	writer   *kafkago.Writer
	metrics  *observability.Metrics
	logger   *slog.Logger
	inflight sync.WaitGroup
}

// NewPublisher creates a Kafka producer for the results topic.
func NewPublisher(brokers []string, topic string, metrics *observability.Metrics, logger *slog.Logger) *Publisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireOne,
	}
	return &Publisher{writer: w, metrics: metrics, logger: logger}
}

// Publish serializes and sends one simulation result without blocking
// the caller. The broker write runs on its own goroutine under a
// bounded deadline, detached from the request context so an already
// completed HTTP response does not cancel it. Errors are logged and
// counted, not returned: result consumers are optional and must never
// affect the caller's response.
func (p *Publisher) Publish(ctx context.Context, result domain.Result) {
	msg, err := serializeToMessage(result)
	if err != nil {
		p.metrics.PublishErrors.Inc()
		p.logger.Error("serialize result failed", "error", err, "region", result.Region)
		return
	}

	p.inflight.Add(1)
	go func() {
		defer p.inflight.Done()

		writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
		defer cancel()

		if err := p.writer.WriteMessages(writeCtx, msg); err != nil {
			p.metrics.PublishErrors.Inc()
			p.logger.Error("publish result failed", "error", err, "region", result.Region)
			return
		}
		p.metrics.ResultsPublished.Inc()
	}()
}

// Close waits for in-flight publishes, then closes the writer.
func (p *Publisher) Close() error {
	p.inflight.Wait()
	return p.writer.Close()
}

// serializeToMessage marshals a simulation result into a Kafka message.
func serializeToMessage(result domain.Result) (kafkago.Message, error) {
	data, err := json.Marshal(result)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize result: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(result.Region),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "risk_category", Value: []byte(result.Category)},
			{Key: "generated_at", Value: []byte(result.GeneratedAt.Format(time.RFC3339))},
		},
	}, nil
}
