package notifier

import (
	"context"
	"errors"

	"github.com/Keoroanthony/go-food-ordering/internal/models"
)

type Recipient struct {
	Name  string
	Email string
	Phone string
}

type Notifier interface {
	OrderPlaced(ctx context.Context, to Recipient, order models.Order) error
	StatusChanged(ctx context.Context, to Recipient, order models.Order) error
}

// Multi fans a notification out to every notifier and joins their failures.
type Multi []Notifier

func (m Multi) OrderPlaced(ctx context.Context, to Recipient, order models.Order) error {
	var errs []error
	for _, n := range m {
		errs = append(errs, n.OrderPlaced(ctx, to, order))
	}
	return errors.Join(errs...)
}

func (m Multi) StatusChanged(ctx context.Context, to Recipient, order models.Order) error {
	var errs []error
	for _, n := range m {
		errs = append(errs, n.StatusChanged(ctx, to, order))
	}
	return errors.Join(errs...)
}
