package users

import (
	"pridenomad-hub/internal/domain/access"
	"pridenomad-hub/internal/domain/plans"
	"pridenomad-hub/internal/domain/users"
)

func BuildUserDTO(u *users.User) UserDTO {
	return UserDTO{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		Role:         string(u.Role),
		AuthProvider: u.AuthProvider,
		CreatedAt:    u.CreatedAt,
	}
}

// BuildPlanDTO returns the plan matching the user's tier, or nil when the
// catalog has no plan for it.
func BuildPlanDTO(tier plans.Tier) *PlanDTO {
	p, ok := plans.Lookup(string(tier))
	if !ok {
		return nil
	}
	return &PlanDTO{
		ID:           p.ID,
		Name:         p.Name,
		Tier:         string(p.Tier),
		MonthlyPrice: p.MonthlyPrice,
		YearlyPrice:  p.YearlyPrice,
	}
}

func BuildAccessDTO(p access.Policy) AccessDTO {
	caps := make([]string, 0, len(p.Capabilities))
	for _, c := range p.Capabilities {
		caps = append(caps, string(c))
	}
	return AccessDTO{
		IsAdmin:      p.IsAdmin,
		Capabilities: caps,
		Limits: LimitsDTO{
			MaxCategories:        p.Limits.MaxCategories,
			MaxImages:            p.Limits.MaxImages,
			MaxDescriptionLength: p.Limits.MaxDescriptionLength,
			AllowsVideo:          p.Limits.AllowsVideo,
			AllowsSubCategories:  p.Limits.AllowsSubCategories,
		},
	}
}
