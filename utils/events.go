package utils

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/kiran-703/ShopNest/models"
	"github.com/segmentio/kafka-go"
)

var eventWriter *kafka.Writer

// InitEvents sets up the kafka writer for order events. Publishing is
// optional; without KAFKA_BROKER every publish is a no-op.
func InitEvents() {
	broker := os.Getenv("KAFKA_BROKER")
	if broker == "" {
		LogInfo("KAFKA_BROKER not set, order event publishing disabled")
		return
	}
	topic := os.Getenv("KAFKA_ORDER_TOPIC")
	if topic == "" {
		topic = "order-events"
	}
	eventWriter = &kafka.Writer{
		Addr:     kafka.TCP(broker),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}
}

type orderEvent struct {
	Type        string    `json:"type"`
	OrderID     uint      `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	UserID      uint      `json:"user_id"`
	Status      string    `json:"status"`
	Total       float64   `json:"total"`
	At          time.Time `json:"at"`
}

// PublishOrderEvent emits one order lifecycle event. Best-effort: failures
// are logged and never retried here.
func PublishOrderEvent(eventType string, order models.Order) {
	if eventWriter == nil {
		return
	}
	payload, err := json.Marshal(orderEvent{
		Type:        eventType,
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		UserID:      order.UserID,
		Status:      order.Status,
		Total:       order.Total,
		At:          time.Now(),
	})
	if err != nil {
		LogError("Failed to marshal order event: %v", err)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := eventWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(order.OrderNumber),
		Value: payload,
	}); err != nil {
		LogError("Failed to publish %s for order %d: %v", eventType, order.ID, err)
	}
}
