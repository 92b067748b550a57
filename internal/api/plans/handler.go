package plans

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pridenomad-hub/internal/domain/plans"
)

type tierDTO struct {
	Tier   plans.Tier   `json:"tier"`
	Rank   int          `json:"rank"`
	Limits plans.Limits `json:"limits"`
}

// ListPlans handles GET /plans.
func ListPlans(c *gin.Context) {
	c.JSON(http.StatusOK, plans.Catalog())
}

// ListTiers handles GET /tiers.
func ListTiers(c *gin.Context) {
	tiers := plans.Tiers()
	out := make([]tierDTO, 0, len(tiers))
	for _, t := range tiers {
		out = append(out, tierDTO{Tier: t, Rank: t.Rank(), Limits: plans.LimitsFor(t)})
	}
	c.JSON(http.StatusOK, out)
}
