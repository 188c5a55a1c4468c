package db

import (
	"github.com/segmentio/kafka-go"

	"go-banking-core/config"
	"go-banking-core/logger"
)

// NewKafkaWriter builds the producer for the notification topic. Returns nil
// when Kafka is disabled in the configuration; callers fall back to the
// email sink.
func NewKafkaWriter() *kafka.Writer {
	cfg := config.AppConfig.Kafka
	if !cfg.Enabled {
		return nil
	}

	writer := &kafka.Writer{
		Addr:     kafka.TCP(cfg.Brokers...),
		Topic:    cfg.Topic,
		Balancer: &kafka.LeastBytes{},
	}

	logger.Log.WithField("topic", cfg.Topic).Info("Kafka notification producer configured")
	return writer
}
