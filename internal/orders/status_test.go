package orders

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Keoroanthony/go-food-ordering/internal/apperr"
	"github.com/Keoroanthony/go-food-ordering/internal/models"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to models.OrderStatus
		want     bool
	}{
		{models.StatusPending, models.StatusPreparing, true},
		{models.StatusPending, models.StatusCancelled, true},
		{models.StatusPreparing, models.StatusOutForDelivery, true},
		{models.StatusOutForDelivery, models.StatusDelivered, true},
		{models.StatusOutForDelivery, models.StatusPreparing, false},
		{models.StatusDelivered, models.StatusPending, false},
		{models.StatusCancelled, models.StatusPending, false},
		{models.StatusDelivered, models.StatusCancelled, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CanTransition(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus(" Out for Delivery ")
	assert.NoError(t, err)
	assert.Equal(t, models.StatusOutForDelivery, s)

	_, err = ParseStatus("Shipped")
	assert.ErrorIs(t, err, apperr.ErrInvalidStatus)

	_, err = ParseStatus("pending")
	assert.ErrorIs(t, err, apperr.ErrInvalidStatus)
}
