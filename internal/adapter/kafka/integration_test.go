//go:build integration

package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"strconv"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/pfas-riskscope/internal/domain"
	"github.com/couchcryptid/pfas-riskscope/internal/observability"
)

// brokerAddr returns the broker to test against, or skips the test when
// no broker is configured. Run with:
//
//	KAFKA_TEST_BROKER=localhost:9092 go test -tags integration ./internal/adapter/kafka/
func brokerAddr(t *testing.T) string {
	t.Helper()
	broker := os.Getenv("KAFKA_TEST_BROKER")
	if broker == "" {
		t.Skip("KAFKA_TEST_BROKER not set")
	}
	return broker
}

func createTopic(t *testing.T, broker, topic string) {
	t.Helper()

	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err)
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err)

	controllerConn, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err)
	defer controllerConn.Close()

	require.NoError(t, controllerConn.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))
}

func TestPublishRoundTrip(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	broker := brokerAddr(t)
	topic := fmt.Sprintf("test-risk-results-%d", time.Now().UnixNano())
	createTopic(t, broker, topic)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	metrics := observability.NewMetricsForTesting()

	publisher := NewPublisher([]string{broker}, topic, metrics, logger)
	t.Cleanup(func() { _ = publisher.Close() })

	result := sampleResult()
	publisher.Publish(ctx, result)

	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       topic,
		GroupID:     fmt.Sprintf("test-consumer-%d", time.Now().UnixNano()),
		StartOffset: kafkago.FirstOffset,
	})
	t.Cleanup(func() { _ = consumer.Close() })

	readCtx, readCancel := context.WithTimeout(ctx, 30*time.Second)
	defer readCancel()

	msg, err := consumer.ReadMessage(readCtx)
	require.NoError(t, err, "read from results topic")

	assert.Equal(t, []byte("VA"), msg.Key)

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	assert.Equal(t, "high", headers["risk_category"])
	_, err = time.Parse(time.RFC3339, headers["generated_at"])
	assert.NoError(t, err, "generated_at should be valid RFC3339")

	var decoded domain.Result
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, result.Region, decoded.Region)
	assert.Equal(t, result.Score, decoded.Score)
	assert.True(t, decoded.MCLViolation)
}
