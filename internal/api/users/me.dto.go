package users

import "time"

type MeResponse struct {
	User   UserDTO   `json:"user"`
	Plan   *PlanDTO  `json:"plan"`
	Access AccessDTO `json:"access"`
}

/* ---------- USER ---------- */

type UserDTO struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	AuthProvider string    `json:"authProvider"`
	CreatedAt    time.Time `json:"createdAt"`
}

/* ---------- PLAN ---------- */

type PlanDTO struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Tier         string  `json:"tier"`
	MonthlyPrice float64 `json:"monthlyPrice"`
	YearlyPrice  float64 `json:"yearlyPrice"`
}

/* ---------- ACCESS ---------- */

type AccessDTO struct {
	IsAdmin      bool      `json:"isAdmin"`
	Capabilities []string  `json:"capabilities"`
	Limits       LimitsDTO `json:"limits"`
}

type LimitsDTO struct {
	MaxCategories        int  `json:"maxCategories"`
	MaxImages            int  `json:"maxImages"`
	MaxDescriptionLength int  `json:"maxDescriptionLength"`
	AllowsVideo          bool `json:"allowsVideo"`
	AllowsSubCategories  bool `json:"allowsSubCategories"`
}
