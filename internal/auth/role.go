package auth

import (
	"context"

	"github.com/Keoroanthony/go-food-ordering/internal/apperr"
	"github.com/Keoroanthony/go-food-ordering/internal/backend"
	"github.com/Keoroanthony/go-food-ordering/internal/models"
)

// ResolveRole reads the role stored on the identity's profile row. A missing identity,
// row or role is a customer. A failed read is a customer too, reported as a FetchError.
func ResolveRole(ctx context.Context, records backend.Records, who *backend.Identity) (models.Role, error) {
	if who == nil || who.ID == "" {
		return models.RoleCustomer, nil
	}

	var users []models.User
	q := backend.Query{Filter: backend.Filter{"id": who.ID}, Limit: 1}
	if err := records.QueryRecords(ctx, backend.TableUsers, q, &users); err != nil {
		return models.RoleCustomer, &apperr.FetchError{Err: err}
	}
	if len(users) == 0 || users[0].Role == "" {
		return models.RoleCustomer, nil
	}
	return users[0].Role, nil
}
