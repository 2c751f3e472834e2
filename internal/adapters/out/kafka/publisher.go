// Package kafka publishes order lifecycle events to a Kafka topic.
// Publishing is best-effort: the adapter is a noop when no brokers are
// configured, and broker failures are logged rather than returned so a
// committed command never fails on event delivery.
package kafka

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"bibdelivery/internal/core/domain/model/order"

	kafkago "github.com/segmentio/kafka-go"
)

// OrderChangedEvent is the JSON payload written to the order-changed topic
// after each committed lifecycle transition.
type OrderChangedEvent struct {
	OrderID    string    `json:"orderId"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Publisher writes order-changed events to Kafka, keyed by order ID so all
// events for one order land on the same partition in order.
type Publisher struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewPublisher creates a publisher for the given comma-separated broker list
// and topic. An empty broker list yields a disabled publisher whose
// PublishOrderChanged is a noop.
func NewPublisher(brokersCSV, topic string, logger *slog.Logger) *Publisher {
	brokers := make([]string, 0)
	for _, b := range strings.Split(brokersCSV, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}

	p := &Publisher{logger: logger}
	if len(brokers) == 0 {
		return p
	}

	p.writer = &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireOne,
	}
	return p
}

// Enabled reports whether a broker is configured.
func (p *Publisher) Enabled() bool {
	return p.writer != nil
}

// PublishOrderChanged emits the order's current status to the topic.
// Failures are logged and swallowed.
func (p *Publisher) PublishOrderChanged(ctx context.Context, aggregate *order.Order) {
	if p.writer == nil {
		return
	}

	event := OrderChangedEvent{
		OrderID:    aggregate.ID().String(),
		Status:     aggregate.Status().String(),
		OccurredAt: time.Now().UTC(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("marshal order changed event", "order_id", event.OrderID, "error", err)
		return
	}

	err = p.writer.WriteMessages(ctx, kafkago.Message{
		Key:   []byte(event.OrderID),
		Value: data,
		Time:  event.OccurredAt,
	})
	if err != nil {
		p.logger.Error("publish order changed event", "order_id", event.OrderID, "error", err)
	}
}

// Close releases the underlying writer.
func (p *Publisher) Close() error {
	if p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
