package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pridenomad-hub/internal/domain/users"
)

func TestTokens_IssueAndVerify(t *testing.T) {
	tokens := NewTokens("secret", time.Hour)
	u := &users.User{ID: "u-1", Email: "a@x.com", Role: users.RolePremium}

	raw, err := tokens.Issue(u)
	require.NoError(t, err)

	id, err := tokens.Verify(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t, "u-1", id.UserID)
	assert.Equal(t, "a@x.com", id.Email)
	assert.Equal(t, users.ProviderLocal, id.Provider)
}

func TestTokens_RejectsExpiredAndForeign(t *testing.T) {
	tokens := NewTokens("secret", time.Minute)
	raw, err := tokens.Issue(&users.User{ID: "u-1"})
	require.NoError(t, err)

	tokens.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	_, err = tokens.Verify(context.Background(), raw)
	assert.ErrorIs(t, err, ErrInvalidToken)

	other := NewTokens("other-secret", time.Hour)
	raw, err = other.Issue(&users.User{ID: "u-1"})
	require.NoError(t, err)
	_, err = NewTokens("secret", time.Hour).Verify(context.Background(), raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

type fakeFirebase struct {
	tok *fbauth.Token
	err error
}

func (f fakeFirebase) VerifyIDToken(context.Context, string) (*fbauth.Token, error) {
	return f.tok, f.err
}

func TestFirebase_Verify(t *testing.T) {
	fb := &Firebase{client: fakeFirebase{tok: &fbauth.Token{
		UID:    "fb-uid",
		Claims: map[string]interface{}{"email": "Owner@Example.com", "name": "Owner"},
	}}}

	id, err := fb.Verify(context.Background(), "raw")
	require.NoError(t, err)
	assert.Equal(t, "owner@example.com", id.Email)
	assert.Equal(t, "fb-uid", id.Subject)
	assert.Equal(t, users.ProviderFirebase, id.Provider)
	assert.Empty(t, id.UserID)

	fb = &Firebase{client: fakeFirebase{tok: &fbauth.Token{UID: "x", Claims: map[string]interface{}{}}}}
	_, err = fb.Verify(context.Background(), "raw")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestChain_FirstSuccessWins(t *testing.T) {
	tokens := NewTokens("secret", time.Hour)
	raw, err := tokens.Issue(&users.User{ID: "u-1"})
	require.NoError(t, err)

	failing := &Firebase{client: fakeFirebase{err: errors.New("not a firebase token")}}
	id, err := Chain{failing, nil, tokens}.Verify(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t, "u-1", id.UserID)

	_, err = Chain{failing}.Verify(context.Background(), raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
