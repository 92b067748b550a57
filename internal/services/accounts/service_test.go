package accounts

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pridenomad-hub/internal/auth"
	"pridenomad-hub/internal/domain/access"
	"pridenomad-hub/internal/domain/admins"
	"pridenomad-hub/internal/domain/users"
	apperr "pridenomad-hub/internal/pkg/errors"
	"pridenomad-hub/internal/pkg/logger"
	"pridenomad-hub/internal/store/gormstore"
	"pridenomad-hub/internal/testutil"
)

func newService(t *testing.T) (*Service, *auth.Tokens) {
	t.Helper()
	tokens := auth.NewTokens("test-secret", time.Hour)
	st := gormstore.New(testutil.NewTestDB(t))
	return NewService(st, tokens, admins.NewRegistry("boss@example.com"), logger.Nop()), tokens
}

func TestRegisterAndLogin(t *testing.T) {
	svc, tokens := newService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Name: "A", Email: "a@example.com", Password: "short"})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	sess, err := svc.Register(ctx, RegisterInput{Name: "A", Email: "A@Example.com", Password: "rainbow123"})
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", sess.User.Email)
	assert.Equal(t, users.RoleRegular, sess.User.Role)

	id, err := tokens.Verify(ctx, sess.Token)
	require.NoError(t, err)
	assert.Equal(t, sess.User.ID, id.UserID)

	_, err = svc.Register(ctx, RegisterInput{Name: "B", Email: "a@example.com", Password: "rainbow123"})
	assert.ErrorIs(t, err, apperr.ErrConflict)

	_, err = svc.Login(ctx, "a@example.com", "wrong-pass1")
	assert.Equal(t, apperr.ErrCodeUnauthorized, apperr.As(err).Code)
	_, err = svc.Login(ctx, "nobody@example.com", "rainbow123")
	assert.Equal(t, apperr.ErrCodeUnauthorized, apperr.As(err).Code)

	sess, err = svc.Login(ctx, "A@example.com", "rainbow123")
	require.NoError(t, err)
	assert.NotEmpty(t, sess.Token)
}

func TestEnsure_LinksAndCreates(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	local, err := svc.Register(ctx, RegisterInput{Name: "L", Email: "linked@example.com", Password: "rainbow123"})
	require.NoError(t, err)

	u, err := svc.Ensure(ctx, &auth.Identity{Email: "linked@example.com", Provider: users.ProviderGoogle, Subject: "g-1"})
	require.NoError(t, err)
	assert.Equal(t, local.User.ID, u.ID)
	require.NotNil(t, u.GoogleSub)
	assert.Equal(t, "g-1", *u.GoogleSub)

	again, err := svc.Ensure(ctx, &auth.Identity{Email: "changed@example.com", Provider: users.ProviderGoogle, Subject: "g-1"})
	require.NoError(t, err)
	assert.Equal(t, local.User.ID, again.ID)

	fresh, err := svc.Ensure(ctx, &auth.Identity{Email: "new@example.com", Name: "New", Provider: users.ProviderFirebase, Subject: "fb-1"})
	require.NoError(t, err)
	assert.NotEqual(t, local.User.ID, fresh.ID)
	assert.Equal(t, users.RoleRegular, fresh.Role)
	assert.Equal(t, users.ProviderFirebase, fresh.AuthProvider)

	byUID, err := svc.Ensure(ctx, &auth.Identity{Provider: users.ProviderFirebase, Subject: "fb-1"})
	require.NoError(t, err)
	assert.Equal(t, fresh.ID, byUID.ID)

	_, err = svc.Ensure(ctx, &auth.Identity{UserID: "missing"})
	assert.Equal(t, apperr.ErrCodeUnauthorized, apperr.As(err).Code)
}

func TestMe_IncludesPolicy(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	sess, err := svc.Register(ctx, RegisterInput{Name: "Boss", Email: "boss@example.com", Password: "rainbow123"})
	require.NoError(t, err)

	p, err := svc.Me(ctx, sess.User.ID)
	require.NoError(t, err)
	assert.True(t, p.Policy.IsAdmin)
	assert.True(t, p.Policy.Can(access.CapModerate))
	assert.Equal(t, users.RoleRegular, p.Policy.Role)
}
