package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	config "github.com/Keoroanthony/go-food-ordering/configs"
)

// Claims are the ID token fields used to build a profile.
type Claims struct {
	Sub           string `json:"sub"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Phone         string `json:"phone_number"`
}

// OIDC runs the authorization code flow against one provider.
type OIDC struct {
	verifier     *oidc.IDTokenVerifier
	oauth2Config *oauth2.Config
}

// NewOIDC discovers the provider. It returns nil when no issuer is configured.
func NewOIDC(ctx context.Context, cfg config.OIDCConfig) (*OIDC, error) {
	if cfg.Issuer == "" {
		return nil, nil
	}

	provider, err := oidc.NewProvider(ctx, cfg.Issuer)
	if err != nil {
		return nil, fmt.Errorf("OIDC provider init: %w", err)
	}

	return &OIDC{
		verifier: provider.Verifier(&oidc.Config{ClientID: cfg.ClientID}),
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint:     provider.Endpoint(),
			Scopes:       []string{oidc.ScopeOpenID, "profile", "email", "phone"},
		},
	}, nil
}

func (o *OIDC) AuthCodeURL(state string) string {
	return o.oauth2Config.AuthCodeURL(state)
}

// Exchange trades the callback code for a verified ID token and returns its claims.
func (o *OIDC) Exchange(ctx context.Context, code string) (Claims, error) {
	token, err := o.oauth2Config.Exchange(ctx, code)
	if err != nil {
		return Claims{}, fmt.Errorf("token exchange failed: %w", err)
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok {
		return Claims{}, errors.New("no id_token in token response")
	}

	idToken, err := o.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return Claims{}, fmt.Errorf("token verification failed: %w", err)
	}

	var claims Claims
	if err := idToken.Claims(&claims); err != nil {
		return Claims{}, fmt.Errorf("claims parse error: %w", err)
	}
	return claims, nil
}
