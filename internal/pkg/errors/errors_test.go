package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIs_MatchesByCode(t *testing.T) {
	err := fmt.Errorf("confirm: %w", NotFound("pending claim"))

	assert.True(t, stderrors.Is(err, ErrNotFound))
	assert.False(t, stderrors.Is(err, ErrUnknownPlan))
}

func TestRemoteService_HidesCause(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := RemoteService("load user", cause)

	assert.Equal(t, "load user failed", err.Message)
	assert.Equal(t, http.StatusInternalServerError, err.StatusCode)
	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrRemoteService)
}

func TestAs(t *testing.T) {
	assert.Equal(t, ErrCodeUnknownPlan, As(UnknownPlan("gold")).Code)

	plain := As(stderrors.New("boom"))
	assert.Equal(t, ErrCodeInternal, plain.Code)
	assert.Equal(t, http.StatusInternalServerError, plain.StatusCode)
}
