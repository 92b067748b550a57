package access

import (
	"slices"

	"pridenomad-hub/internal/domain/plans"
	"pridenomad-hub/internal/domain/users"
)

// Policy is what a signed-in user may do, derived from their role.
type Policy struct {
	Role         users.Role   `json:"role"`
	Tier         plans.Tier   `json:"tier"`
	IsAdmin      bool         `json:"isAdmin"`
	Capabilities []Capability `json:"capabilities"`
	Limits       plans.Limits `json:"limits"`
}

func ComputePolicy(u users.User, isAdmin bool) Policy {
	tier := u.Role.Tier()
	return Policy{
		Role:         u.Role,
		Tier:         tier,
		IsAdmin:      isAdmin,
		Capabilities: CapabilitiesFor(tier, isAdmin),
		Limits:       plans.LimitsFor(tier),
	}
}

func (p Policy) Can(c Capability) bool {
	return slices.Contains(p.Capabilities, c)
}
