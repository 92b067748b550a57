package respond

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperr "pridenomad-hub/internal/pkg/errors"
)

func TestError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantLogged bool
	}{
		{"not found", apperr.NotFound("claim"), http.StatusNotFound, apperr.ErrCodeNotFound, false},
		{"validation", apperr.ValidationError("bad", map[string]string{"f": "x"}), http.StatusBadRequest, apperr.ErrCodeValidation, false},
		{"remote", apperr.RemoteService("load", errors.New("boom")), http.StatusInternalServerError, apperr.ErrCodeRemoteService, true},
		{"plain", errors.New("boom"), http.StatusInternalServerError, apperr.ErrCodeInternal, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			Error(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.True(t, c.IsAborted())
			assert.Equal(t, tt.wantLogged, len(c.Errors) > 0)

			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tt.wantCode, body["code"])
			assert.NotContains(t, body["message"], "boom")
		})
	}
}
