package service

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"

	"go-banking-core/logger"
)

// INotificationService is the fire-and-forget notification sink. Delivery is
// best-effort: callers swallow the returned error after logging it, and a
// failed delivery must never change a transaction outcome.
type INotificationService interface {
	SendNotification(ctx context.Context, customerID int, message string) error
}

// EmailNotificationService is a stub sink that writes the notification to the
// log. It stands in for a real mail provider.
type EmailNotificationService struct{}

func NewEmailNotificationService() *EmailNotificationService {
	return &EmailNotificationService{}
}

func (s *EmailNotificationService) SendNotification(_ context.Context, customerID int, message string) error {
	logger.Log.WithFields(logrus.Fields{
		"customer_id": customerID,
		"channel":     "email",
	}).Info(message)
	return nil
}

// IKafkaWriter abstracts the Kafka producer so the sink can be tested without
// a broker.
type IKafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaNotificationService publishes notifications to a Kafka topic for an
// external delivery worker to pick up.
type KafkaNotificationService struct {
	writer IKafkaWriter
}

func NewKafkaNotificationService(writer IKafkaWriter) *KafkaNotificationService {
	return &KafkaNotificationService{writer: writer}
}

type notificationEvent struct {
	CustomerID int    `json:"customer_id"`
	Message    string `json:"message"`
	SentAt     int64  `json:"sent_at"`
}

func (s *KafkaNotificationService) SendNotification(ctx context.Context, customerID int, message string) error {
	event := notificationEvent{
		CustomerID: customerID,
		Message:    message,
		SentAt:     time.Now().Unix(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.Itoa(customerID)),
		Value: data,
	})
}
