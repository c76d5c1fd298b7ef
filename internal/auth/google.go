package auth

import (
	"context"
	"fmt"

	"google.golang.org/api/idtoken"
)

// GoogleClaims are the verified identity claims the gateway needs from a
// Google ID token. Email may legitimately be absent from a token; the caller
// decides how to treat that.
type GoogleClaims struct {
	Email      string
	GivenName  string
	FamilyName string
}

// IDTokenVerifier validates an externally issued identity token and returns
// its verified claims.
type IDTokenVerifier interface {
	Verify(ctx context.Context, rawToken string) (GoogleClaims, error)
}

// GoogleVerifier verifies Google ID tokens against Google's public keys,
// constrained to the configured OAuth2 client ID audience.
type GoogleVerifier struct {
	clientID string
}

// NewGoogleVerifier creates a verifier expecting tokens issued for clientID.
func NewGoogleVerifier(clientID string) *GoogleVerifier {
	return &GoogleVerifier{clientID: clientID}
}

func (v *GoogleVerifier) Verify(ctx context.Context, rawToken string) (GoogleClaims, error) {
	payload, err := idtoken.Validate(ctx, rawToken, v.clientID)
	if err != nil {
		return GoogleClaims{}, fmt.Errorf("invalid ID token: %w", err)
	}

	return GoogleClaims{
		Email:      claimString(payload.Claims, "email"),
		GivenName:  claimString(payload.Claims, "given_name"),
		FamilyName: claimString(payload.Claims, "family_name"),
	}, nil
}

func claimString(claims map[string]any, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}
