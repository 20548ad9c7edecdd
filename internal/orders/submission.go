// Package orders turns carts into orders and moves orders through their lifecycle.
package orders

import (
	"context"
	"log"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/Keoroanthony/go-food-ordering/internal/apperr"
	"github.com/Keoroanthony/go-food-ordering/internal/backend"
	"github.com/Keoroanthony/go-food-ordering/internal/cart"
	"github.com/Keoroanthony/go-food-ordering/internal/events"
	"github.com/Keoroanthony/go-food-ordering/internal/models"
	"github.com/Keoroanthony/go-food-ordering/internal/notifier"
)

var tracer = otel.Tracer("github.com/Keoroanthony/go-food-ordering/internal/orders")

// CustomerInfo is what the checkout form collects.
type CustomerInfo struct {
	Name          string               `json:"customer_name"`
	Address       string               `json:"customer_address"`
	Phone         string               `json:"customer_phone"`
	PaymentMethod models.PaymentMethod `json:"payment_method"`
}

type Submitter struct {
	records   backend.Records
	notifier  notifier.Notifier
	publisher events.Publisher
}

// NewSubmitter wires the backend and the best-effort side channels. Nil side channels are skipped.
func NewSubmitter(records backend.Records, n notifier.Notifier, p events.Publisher) *Submitter {
	if n == nil {
		n = notifier.Multi{}
	}
	if p == nil {
		p = events.Nop{}
	}
	return &Submitter{records: records, notifier: n, publisher: p}
}

// Submit writes the cart as a Pending order owned by who and clears the cart.
// On any error the cart is left as it was.
func (s *Submitter) Submit(ctx context.Context, store *cart.Store, info CustomerInfo, who *backend.Identity) (uint, error) {
	ctx, span := tracer.Start(ctx, "orders.Submit")
	defer span.End()

	lines := store.Lines()
	info.Name = strings.TrimSpace(info.Name)
	info.Address = strings.TrimSpace(info.Address)
	info.Phone = strings.TrimSpace(info.Phone)

	verr := &apperr.ValidationError{}
	if len(lines) == 0 {
		verr.Add("cart")
	}
	if info.Name == "" {
		verr.Add("customer_name")
	}
	if info.Address == "" {
		verr.Add("customer_address")
	}
	if !info.PaymentMethod.Valid() {
		verr.Add("payment_method")
	}
	if err := verr.OrNil(); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return 0, err
	}
	if who == nil || who.ID == "" {
		return 0, apperr.ErrUnauthenticated
	}

	order := models.Order{
		UserID:          who.ID,
		Items:           snapshot(lines),
		TotalPrice:      cart.Total(lines),
		Status:          models.StatusPending,
		CustomerName:    info.Name,
		CustomerAddress: info.Address,
		CustomerPhone:   info.Phone,
		PaymentMethod:   info.PaymentMethod,
	}

	if err := s.records.CreateRecord(ctx, backend.TableOrders, &order); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "create order")
		return 0, &apperr.SubmissionError{Err: err}
	}
	span.SetAttributes(attribute.Int("order.id", int(order.ID)), attribute.Int("order.lines", len(lines)))

	store.Clear(ctx)

	if err := s.publisher.Publish(ctx, events.NewOrderEvent(events.OrderCreated, order, "")); err != nil {
		log.Printf("Failed to publish %s for order %d: %v", events.OrderCreated, order.ID, err)
	}

	to := notifier.Recipient{Name: info.Name, Email: who.Email, Phone: info.Phone}
	go func(to notifier.Recipient, order models.Order) {
		if err := s.notifier.OrderPlaced(context.WithoutCancel(ctx), to, order); err != nil {
			log.Printf("Failed to send confirmation for order %d to %s: %v", order.ID, to.Email, err)
		}
	}(to, order)

	return order.ID, nil
}

func snapshot(lines []cart.Line) []models.OrderItem {
	items := make([]models.OrderItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, models.OrderItem{
			ProductID: l.ID,
			Name:      l.Name,
			Quantity:  uint(l.Quantity),
			Price:     l.Price,
		})
	}
	return items
}
