// Package auth signs users up and in, resolves their role and guards routes that need an identity.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/Keoroanthony/go-food-ordering/internal/apperr"
	"github.com/Keoroanthony/go-food-ordering/internal/backend"
	"github.com/Keoroanthony/go-food-ordering/internal/models"
)

const minPasswordLength = 6

// Gateway keeps the users table: local accounts and profiles created by OAuth sign-in.
type Gateway struct {
	records backend.Records
}

func NewGateway(records backend.Records) *Gateway {
	return &Gateway{records: records}
}

// SignUp creates a customer account with a bcrypt password hash.
func (g *Gateway) SignUp(ctx context.Context, name, email, password string) (models.User, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)

	verr := &apperr.ValidationError{}
	if name == "" {
		verr.Add("name")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		verr.Add("email")
	}
	if len(password) < minPasswordLength {
		verr.Add("password")
	}
	if err := verr.OrNil(); err != nil {
		return models.User{}, err
	}

	if _, err := g.findBy(ctx, "email", email); err == nil {
		return models.User{}, apperr.ErrEmailTaken
	} else if !errors.Is(err, apperr.ErrNotFound) {
		return models.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{Name: name, Email: email, Role: models.RoleCustomer, PasswordHash: string(hash)}
	if err := g.records.CreateRecord(ctx, backend.TableUsers, &user); err != nil {
		return models.User{}, &apperr.SubmissionError{Err: err}
	}
	return user, nil
}

// SignIn checks an email/password pair. Unknown emails and wrong passwords look the same to the caller.
func (g *Gateway) SignIn(ctx context.Context, email, password string) (models.User, error) {
	user, err := g.findBy(ctx, "email", normalizeEmail(email))
	if errors.Is(err, apperr.ErrNotFound) {
		return models.User{}, apperr.ErrInvalidCredentials
	}
	if err != nil {
		return models.User{}, err
	}
	if user.PasswordHash == "" {
		return models.User{}, apperr.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, apperr.ErrInvalidCredentials
	}
	return user, nil
}

func (g *Gateway) Profile(ctx context.Context, id string) (models.User, error) {
	return g.findBy(ctx, "id", id)
}

// UpsertOIDC returns the profile linked to the provider subject, creating it on first sign-in.
// An existing local account with the same email is linked only when the provider has verified
// that email; otherwise the address counts as taken.
func (g *Gateway) UpsertOIDC(ctx context.Context, claims Claims) (models.User, error) {
	subject := claims.Sub
	user, err := g.findBy(ctx, "oidc_id", subject)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		return models.User{}, err
	}

	email := normalizeEmail(claims.Email)
	if email == "" {
		return models.User{}, &apperr.ValidationError{Fields: []string{"email"}}
	}

	existing, err := g.findBy(ctx, "email", email)
	switch {
	case err == nil:
		if !claims.EmailVerified {
			return models.User{}, apperr.ErrEmailTaken
		}
		if _, err := g.records.UpdateRecords(ctx, backend.TableUsers,
			backend.Filter{"id": existing.ID}, map[string]any{"oidc_id": subject}); err != nil {
			return models.User{}, &apperr.SubmissionError{Err: err}
		}
		existing.OIDCID = &subject
		return existing, nil
	case !errors.Is(err, apperr.ErrNotFound):
		return models.User{}, err
	}

	user = models.User{OIDCID: &subject, Name: strings.TrimSpace(claims.Name), Email: email, Role: models.RoleCustomer}
	if err := g.records.CreateRecord(ctx, backend.TableUsers, &user); err != nil {
		return models.User{}, &apperr.SubmissionError{Err: err}
	}
	return user, nil
}

func (g *Gateway) findBy(ctx context.Context, column, value string) (models.User, error) {
	var users []models.User
	q := backend.Query{Filter: backend.Filter{column: value}, Limit: 1}
	if err := g.records.QueryRecords(ctx, backend.TableUsers, q, &users); err != nil {
		return models.User{}, &apperr.FetchError{Err: err}
	}
	if len(users) == 0 {
		return models.User{}, fmt.Errorf("user %s=%s: %w", column, value, apperr.ErrNotFound)
	}
	return users[0], nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
