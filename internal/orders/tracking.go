package orders

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Keoroanthony/go-food-ordering/internal/apperr"
	"github.com/Keoroanthony/go-food-ordering/internal/backend"
	"github.com/Keoroanthony/go-food-ordering/internal/events"
	"github.com/Keoroanthony/go-food-ordering/internal/models"
	"github.com/Keoroanthony/go-food-ordering/internal/notifier"
)

// Tracker reads orders for their owners and the admin console, and applies status changes.
type Tracker struct {
	records   backend.Records
	notifier  notifier.Notifier
	publisher events.Publisher
}

func NewTracker(records backend.Records, n notifier.Notifier, p events.Publisher) *Tracker {
	if n == nil {
		n = notifier.Multi{}
	}
	if p == nil {
		p = events.Nop{}
	}
	return &Tracker{records: records, notifier: n, publisher: p}
}

// List returns every order for admins and the caller's own orders otherwise, newest first.
func (t *Tracker) List(ctx context.Context, who *backend.Identity, role models.Role) ([]models.Order, error) {
	if who == nil {
		return nil, apperr.ErrUnauthenticated
	}

	q := backend.Query{OrderBy: "created_at desc, id desc", Include: []string{"Items"}}
	if role != models.RoleAdmin {
		q.Filter = backend.Filter{"user_id": who.ID}
	}

	orders := []models.Order{}
	if err := t.records.QueryRecords(ctx, backend.TableOrders, q, &orders); err != nil {
		return nil, &apperr.FetchError{Err: err}
	}
	return orders, nil
}

func (t *Tracker) Get(ctx context.Context, id uint, who *backend.Identity, role models.Role) (models.Order, error) {
	if who == nil {
		return models.Order{}, apperr.ErrUnauthenticated
	}

	order, err := t.load(ctx, id)
	if err != nil {
		return models.Order{}, err
	}
	if role != models.RoleAdmin && order.UserID != who.ID {
		return models.Order{}, apperr.ErrForbidden
	}
	return order, nil
}

// UpdateStatus moves an order to status on behalf of an admin. The current status is
// re-read and the write only lands if nobody changed it in between.
func (t *Tracker) UpdateStatus(ctx context.Context, id uint, status string, role models.Role) (models.Order, error) {
	ctx, span := tracer.Start(ctx, "orders.UpdateStatus", trace.WithAttributes(attribute.Int("order.id", int(id))))
	defer span.End()

	if role != models.RoleAdmin {
		return models.Order{}, apperr.ErrForbidden
	}
	next, err := ParseStatus(status)
	if err != nil {
		return models.Order{}, err
	}

	order, err := t.load(ctx, id)
	if err != nil {
		return models.Order{}, err
	}
	current := order.Status
	if current == next {
		return order, nil
	}
	if !CanTransition(current, next) {
		return models.Order{}, fmt.Errorf("%w: %s to %s", apperr.ErrInvalidTransition, current, next)
	}

	if err := t.transition(ctx, &order, current, next); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return models.Order{}, err
	}
	return order, nil
}

// Cancel cancels the caller's own order while it is still Pending.
func (t *Tracker) Cancel(ctx context.Context, id uint, who *backend.Identity, role models.Role) (models.Order, error) {
	ctx, span := tracer.Start(ctx, "orders.Cancel", trace.WithAttributes(attribute.Int("order.id", int(id))))
	defer span.End()

	if who == nil {
		return models.Order{}, apperr.ErrUnauthenticated
	}
	if role == models.RoleAdmin {
		return models.Order{}, apperr.ErrForbidden
	}

	order, err := t.load(ctx, id)
	if err != nil {
		return models.Order{}, err
	}
	if order.UserID != who.ID {
		return models.Order{}, apperr.ErrForbidden
	}
	if order.Status != models.StatusPending {
		return models.Order{}, apperr.ErrNotCancellable
	}

	err = t.transition(ctx, &order, models.StatusPending, models.StatusCancelled)
	if errors.Is(err, apperr.ErrStatusChanged) {
		return models.Order{}, apperr.ErrNotCancellable
	}
	if err != nil {
		return models.Order{}, err
	}
	return order, nil
}

// transition writes next only where the row still holds from, then announces the change.
func (t *Tracker) transition(ctx context.Context, order *models.Order, from, next models.OrderStatus) error {
	now := time.Now()
	n, err := t.records.UpdateRecords(ctx, backend.TableOrders,
		backend.Filter{"id": order.ID, "status": string(from)},
		map[string]any{"status": string(next), "updated_at": now},
	)
	if err != nil {
		return &apperr.SubmissionError{Err: err}
	}
	if n == 0 {
		return apperr.ErrStatusChanged
	}

	order.Status = next
	order.UpdatedAt = now

	if err := t.publisher.Publish(ctx, events.NewOrderEvent(events.OrderStatusChanged, *order, from)); err != nil {
		log.Printf("Failed to publish %s for order %d: %v", events.OrderStatusChanged, order.ID, err)
	}
	t.notifyOwner(ctx, *order)
	return nil
}

func (t *Tracker) notifyOwner(ctx context.Context, order models.Order) {
	var users []models.User
	q := backend.Query{Filter: backend.Filter{"id": order.UserID}, Limit: 1}
	if err := t.records.QueryRecords(ctx, backend.TableUsers, q, &users); err != nil || len(users) == 0 {
		log.Printf("No profile to notify for order %d (user %s): %v", order.ID, order.UserID, err)
		return
	}

	to := notifier.Recipient{Name: users[0].Name, Email: users[0].Email, Phone: order.CustomerPhone}
	go func() {
		if err := t.notifier.StatusChanged(context.WithoutCancel(ctx), to, order); err != nil {
			log.Printf("Failed to send status update for order %d to %s: %v", order.ID, to.Email, err)
		}
	}()
}

func (t *Tracker) load(ctx context.Context, id uint) (models.Order, error) {
	var found []models.Order
	q := backend.Query{Filter: backend.Filter{"id": id}, Include: []string{"Items"}, Limit: 1}
	if err := t.records.QueryRecords(ctx, backend.TableOrders, q, &found); err != nil {
		return models.Order{}, &apperr.FetchError{Err: err}
	}
	if len(found) == 0 {
		return models.Order{}, fmt.Errorf("order %d: %w", id, apperr.ErrNotFound)
	}
	return found[0], nil
}
