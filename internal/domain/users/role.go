package users

import (
	"pridenomad-hub/internal/domain/plans"
	apperr "pridenomad-hub/internal/pkg/errors"
)

type Role string

const (
	RoleRegular  Role = "Regular User"
	RoleEnhanced Role = "Enhanced User"
	RolePremium  Role = "Premium User"
	RoleElite    Role = "Elite User"
)

var planRoles = map[string]Role{
	"essentials": RoleRegular,
	"enhanced":   RoleEnhanced,
	"premium":    RolePremium,
	"elite":      RoleElite,
}

var roleTiers = map[Role]plans.Tier{
	RoleRegular:  plans.TierEssentials,
	RoleEnhanced: plans.TierEnhanced,
	RolePremium:  plans.TierPremium,
	RoleElite:    plans.TierElite,
}

// RoleForPlan maps a selected plan id to the role it grants.
func RoleForPlan(planID string) (Role, error) {
	role, ok := planRoles[planID]
	if !ok {
		return "", apperr.UnknownPlan(planID)
	}
	return role, nil
}

// Rank orders roles Regular < Enhanced < Premium < Elite. Unknown roles rank
// with Regular so they can always be upgraded.
func (r Role) Rank() int {
	return r.Tier().Rank()
}

// Tier is the listing tier a role is entitled to.
func (r Role) Tier() plans.Tier {
	if t, ok := roleTiers[r]; ok {
		return t
	}
	return plans.TierEssentials
}

func (r Role) Valid() bool {
	_, ok := roleTiers[r]
	return ok
}

// MaxRole returns the higher of two roles; a tie keeps current.
func MaxRole(current, next Role) Role {
	if next.Rank() > current.Rank() {
		return next
	}
	if !current.Valid() {
		return RoleRegular
	}
	return current
}
