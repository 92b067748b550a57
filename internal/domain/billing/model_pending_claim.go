package billing

import (
	"time"

	"pridenomad-hub/internal/domain/listings"
)

const (
	ClaimStatusPending   = "pending"
	ClaimStatusCompleted = "completed"
)

// PendingClaim records a user's intent to pay for, and own, a listing.
// BusinessID is set when an existing listing is being claimed; otherwise the
// listing is created from BusinessData once payment is confirmed.
type PendingClaim struct {
	ID           string            `gorm:"primaryKey;type:varchar(36)" json:"id" firestore:"-"`
	UserID       string            `gorm:"not null;index" json:"userId" firestore:"userId"`
	UserEmail    string            `gorm:"not null;index" json:"userEmail" firestore:"userEmail"`
	SelectedPlan string            `gorm:"not null" json:"selectedPlan" firestore:"selectedPlan"`
	IsYearly     bool              `json:"isYearly" firestore:"isYearly"`
	BusinessID   string            `json:"businessId,omitempty" firestore:"businessId,omitempty"`
	BusinessData listings.Business `gorm:"type:text;serializer:json" json:"businessData" firestore:"businessData"`
	Status       string            `gorm:"type:varchar(20);not null;default:'pending';index" json:"status" firestore:"status"`
	CreatedAt    time.Time         `gorm:"index" json:"createdAt" firestore:"createdAt"`
}
