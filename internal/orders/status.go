package orders

import (
	"fmt"
	"strings"

	"github.com/Keoroanthony/go-food-ordering/internal/apperr"
	"github.com/Keoroanthony/go-food-ordering/internal/models"
)

// Statuses only move forward; Delivered and Cancelled are final.
var transitions = map[models.OrderStatus][]models.OrderStatus{
	models.StatusPending:        {models.StatusPreparing, models.StatusOutForDelivery, models.StatusDelivered, models.StatusCancelled},
	models.StatusPreparing:      {models.StatusOutForDelivery, models.StatusDelivered, models.StatusCancelled},
	models.StatusOutForDelivery: {models.StatusDelivered, models.StatusCancelled},
}

func CanTransition(from, to models.OrderStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ParseStatus accepts one of the five status names, ignoring surrounding space.
func ParseStatus(s string) (models.OrderStatus, error) {
	status := models.OrderStatus(strings.TrimSpace(s))
	if !status.Valid() {
		return "", fmt.Errorf("%w: %q", apperr.ErrInvalidStatus, s)
	}
	return status, nil
}
