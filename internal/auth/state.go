package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const stateIssuer = "food-storefront"

var errStateMismatch = errors.New("oauth state does not match this session")

// StateSigner issues the OAuth state parameter as a short-lived HS256 token. Its jti is
// also kept in the session so a state minted for one browser is useless in another.
type StateSigner struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

func NewStateSigner(secret string, ttl time.Duration) *StateSigner {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &StateSigner{key: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue returns the signed state and the nonce to remember in the session.
func (s *StateSigner) Issue() (state, nonce string, err error) {
	now := s.now()
	nonce = uuid.NewString()
	claims := jwt.RegisteredClaims{
		Issuer:    stateIssuer,
		ID:        nonce,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	state, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return "", "", fmt.Errorf("sign oauth state: %w", err)
	}
	return state, nonce, nil
}

// Verify checks the signature, expiry and that the state carries nonce.
func (s *StateSigner) Verify(state, nonce string) error {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(state, &claims, func(*jwt.Token) (any, error) {
		return s.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(stateIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return fmt.Errorf("verify oauth state: %w", err)
	}
	if nonce == "" || claims.ID != nonce {
		return errStateMismatch
	}
	return nil
}
