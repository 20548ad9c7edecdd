// Package events publishes order lifecycle events to a message broker.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"

	config "github.com/Keoroanthony/go-food-ordering/configs"
	"github.com/Keoroanthony/go-food-ordering/internal/models"
)

const (
	OrderCreated       = "order.created"
	OrderStatusChanged = "order.status_changed"
)

type Event struct {
	Type       string             `json:"type"`
	OrderID    uint               `json:"order_id"`
	UserID     string             `json:"user_id"`
	Status     models.OrderStatus `json:"status"`
	Previous   models.OrderStatus `json:"previous_status,omitempty"`
	TotalPrice decimal.Decimal    `json:"total_price"`
	OccurredAt time.Time          `json:"occurred_at"`
}

func NewOrderEvent(kind string, order models.Order, previous models.OrderStatus) Event {
	return Event{
		Type:       kind,
		OrderID:    order.ID,
		UserID:     order.UserID,
		Status:     order.Status,
		Previous:   previous,
		TotalPrice: order.TotalPrice,
		OccurredAt: time.Now().UTC(),
	}
}

// Key is the partition / routing key: events of one order stay ordered.
func (e Event) Key() string {
	return fmt.Sprintf("order.%d", e.OrderID)
}

func (e Event) Encode() ([]byte, error) {
	return json.Marshal(e)
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// Nop drops every event.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
func (Nop) Close() error                         { return nil }

// NewPublisher picks the broker named by cfg.Driver: "kafka", "rabbitmq" or "none".
func NewPublisher(cfg config.EventsConfig) (Publisher, error) {
	switch cfg.Driver {
	case "kafka":
		return NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
	case "rabbitmq":
		return NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitExchange)
	case "", "none":
		log.Println("Order events disabled")
		return Nop{}, nil
	default:
		return nil, fmt.Errorf("unknown events driver %q", cfg.Driver)
	}
}
