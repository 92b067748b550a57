package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"

	"pridenomad-hub/internal/api/respond"
	apperr "pridenomad-hub/internal/pkg/errors"
)

// SanitizeAndCleanInputMiddleware strips markup from every string in a JSON
// body, nested objects and arrays included. Password fields are left as sent.
func SanitizeAndCleanInputMiddleware() gin.HandlerFunc {
	policy := bluemonday.StrictPolicy()
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost &&
			c.Request.Method != http.MethodPut &&
			c.Request.Method != http.MethodPatch {
			c.Next()
			return
		}
		if !strings.HasPrefix(c.ContentType(), "application/json") {
			c.Next()
			return
		}

		buf, err := io.ReadAll(c.Request.Body)
		if err != nil {
			respond.Error(c, apperr.BadRequest("Invalid body"))
			return
		}
		if len(bytes.TrimSpace(buf)) == 0 {
			c.Request.Body = io.NopCloser(bytes.NewReader(buf))
			c.Next()
			return
		}

		var body interface{}
		if err := json.Unmarshal(buf, &body); err != nil {
			respond.Error(c, apperr.BadRequest("Malformed JSON"))
			return
		}

		newBody, err := json.Marshal(sanitize(policy, body))
		if err != nil {
			respond.Error(c, apperr.BadRequest("Malformed JSON"))
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(newBody))
		c.Request.ContentLength = int64(len(newBody))

		c.Next()
	}
}

func sanitize(p *bluemonday.Policy, v interface{}) interface{} {
	switch t := v.(type) {
	case string:
		return p.Sanitize(t)
	case map[string]interface{}:
		for k, inner := range t {
			if strings.EqualFold(k, "password") {
				continue
			}
			t[k] = sanitize(p, inner)
		}
		return t
	case []interface{}:
		for i, inner := range t {
			t[i] = sanitize(p, inner)
		}
		return t
	default:
		return v
	}
}
