package auth

import (
	"context"

	fbauth "firebase.google.com/go/v4/auth"

	"pridenomad-hub/internal/domain/users"
)

// idTokenVerifier is the part of *auth.Client used here.
type idTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error)
}

// Firebase verifies Firebase Authentication ID tokens.
type Firebase struct {
	client idTokenVerifier
}

func NewFirebase(client *fbauth.Client) *Firebase {
	return &Firebase{client: client}
}

func (f *Firebase) Verify(ctx context.Context, rawToken string) (*Identity, error) {
	tok, err := f.client.VerifyIDToken(ctx, rawToken)
	if err != nil {
		return nil, ErrInvalidToken
	}

	email, _ := tok.Claims["email"].(string)
	if email == "" {
		return nil, ErrInvalidToken
	}
	name, _ := tok.Claims["name"].(string)

	return &Identity{
		Email:    users.NormalizeEmail(email),
		Name:     name,
		Provider: users.ProviderFirebase,
		Subject:  tok.UID,
	}, nil
}
