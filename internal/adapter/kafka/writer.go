package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/couchcryptid/nutrition-api/internal/config"
	"github.com/couchcryptid/nutrition-api/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Writer produces calculation results to a Kafka topic.
// It implements service.ResultPublisher.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured results topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:                   kafkago.TCP(cfg.KafkaBrokers...),
		Topic:                  cfg.KafkaResultsTopic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireAll,
		WriteTimeout:           cfg.KafkaWriteTimeout,
		AllowAutoTopicCreation: true,
	}
	return &Writer{writer: w, logger: logger}
}

// Publish serializes and writes one calculation. Messages are keyed by food
// name so results for the same food land on the same partition.
func (w *Writer) Publish(ctx context.Context, calc domain.Calculation) error {
	msg, err := serializeToMessage(calc)
	if err != nil {
		return err
	}
	if err := w.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish calculation for %q: %w", calc.Name, err)
	}
	w.logger.Debug("calculation published", "name", calc.Name, "topic", w.writer.Topic)
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a Calculation into a Kafka message.
func serializeToMessage(calc domain.Calculation) (kafkago.Message, error) {
	data, err := json.Marshal(calc)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize calculation: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(calc.Name),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "food_id", Value: []byte(strconv.Itoa(calc.ID))},
			{Key: "calculated_at", Value: []byte(calc.CalculatedAt.Format(time.RFC3339))},
		},
		Time: calc.CalculatedAt,
	}, nil
}
