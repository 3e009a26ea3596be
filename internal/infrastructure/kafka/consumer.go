package kafka

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/segmentio/kafka-go"
)

// Consumer reads auth events back from the broker and writes them to the
// audit log. It is started only when a broker is configured.
type Consumer struct {
	reader *kafka.Reader
}

func NewConsumer(brokers []string, topic, groupID string) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:  brokers,
			Topic:    topic,
			GroupID:  groupID,
			MinBytes: 10e3,
			MaxBytes: 10e6,
		}),
	}
}

func (c *Consumer) Consume(ctx context.Context) {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			slog.Error("failed to read Kafka message", "topic", c.reader.Config().Topic, "error", err)
			continue
		}

		var event struct {
			EventType string `json:"event_type"`
			UserID    string `json:"user_id"`
			Email     string `json:"email"`
			CreatedAt string `json:"created_at"`
		}
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			slog.Error("failed to unmarshal auth event", "topic", msg.Topic, "error", err)
			continue
		}

		slog.Info("auth event",
			"event_type", event.EventType,
			"user_id", event.UserID,
			"email", event.Email,
			"created_at", event.CreatedAt)
	}
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}
