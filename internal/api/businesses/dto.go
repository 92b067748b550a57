package businesses

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"pridenomad-hub/internal/domain/listings"
	"pridenomad-hub/internal/domain/plans"
	"pridenomad-hub/internal/services/directory"
)

// ---------- requests

type ReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"max=2000"`
}

// ---------- responses

type ListResponse struct {
	Items  []interface{} `json:"items"`
	Total  int64         `json:"total"`
	Limit  int           `json:"limit"`
	Offset int           `json:"offset"`
}

// filterFromQuery reads ?q=&category=&city=&tier=&verified=&mine=&status=&limit=&offset=
func filterFromQuery(c *gin.Context, actor directory.Actor) listings.Filter {
	f := listings.Filter{
		Query:    c.Query("q"),
		Category: c.Query("category"),
		City:     c.Query("city"),
		Status:   c.Query("status"),
	}
	if t, ok := plans.ParseTier(c.Query("tier")); ok {
		f.Tier = t
	}
	f.VerifiedOnly, _ = strconv.ParseBool(c.Query("verified"))
	if mine, _ := strconv.ParseBool(c.Query("mine")); mine && actor.UserID != "" {
		f.UserID = actor.UserID
	}
	f.Limit, _ = strconv.Atoi(c.Query("limit"))
	f.Offset, _ = strconv.Atoi(c.Query("offset"))
	if f.Offset < 0 {
		f.Offset = 0
	}
	return f
}

// view renders a listing for actor: owners and admins get every field,
// everyone else gets the tier-gated public projection.
func view(actor directory.Actor, b *listings.Business) interface{} {
	if actor.IsAdmin || b.OwnedBy(actor.UserID) {
		return b
	}
	return listings.PublicView(b)
}
