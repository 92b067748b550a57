// Package auth verifies bearer tokens and issues the hub's own session JWTs.
package auth

import (
	"context"
	"errors"
)

// Identity is who a verified token belongs to. UserID is only known for
// tokens the hub issued itself; external identities are resolved to a user
// by the accounts service.
type Identity struct {
	UserID   string
	Email    string
	Name     string
	Provider string
	Subject  string
}

type Verifier interface {
	Verify(ctx context.Context, rawToken string) (*Identity, error)
}

var ErrInvalidToken = errors.New("invalid or expired token")

// Chain tries each verifier in turn and returns the first success.
type Chain []Verifier

func (c Chain) Verify(ctx context.Context, rawToken string) (*Identity, error) {
	for _, v := range c {
		if v == nil {
			continue
		}
		if id, err := v.Verify(ctx, rawToken); err == nil {
			return id, nil
		}
	}
	return nil, ErrInvalidToken
}
