package access

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pridenomad-hub/internal/domain/plans"
	"pridenomad-hub/internal/domain/users"
)

func TestComputePolicy(t *testing.T) {
	tests := []struct {
		name    string
		role    users.Role
		isAdmin bool
		can     []Capability
		cannot  []Capability
	}{
		{
			name:   "regular user",
			role:   users.RoleRegular,
			can:    []Capability{CapCreateListing, CapReview, CapUploadPhotos},
			cannot: []Capability{CapVideo, CapSubCategories, CapModerate},
		},
		{
			name:   "premium user",
			role:   users.RolePremium,
			can:    []Capability{CapVideo, CapSubCategories},
			cannot: []Capability{CapFeatured, CapModerate},
		},
		{
			name: "elite user",
			role: users.RoleElite,
			can:  []Capability{CapFeatured, CapVideo},
		},
		{
			name:    "admin with regular role",
			role:    users.RoleRegular,
			isAdmin: true,
			can:     []Capability{CapModerate, CapManageAdmins},
			cannot:  []Capability{CapVideo},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ComputePolicy(users.User{Role: tt.role}, tt.isAdmin)
			for _, c := range tt.can {
				assert.True(t, p.Can(c), "expected %s", c)
			}
			for _, c := range tt.cannot {
				assert.False(t, p.Can(c), "unexpected %s", c)
			}
		})
	}
}

func TestComputePolicy_LimitsFollowRole(t *testing.T) {
	p := ComputePolicy(users.User{Role: users.RoleEnhanced}, false)
	assert.Equal(t, plans.TierEnhanced, p.Tier)
	assert.Equal(t, 3, p.Limits.MaxCategories)
}
