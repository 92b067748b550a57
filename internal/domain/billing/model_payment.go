package billing

import (
	"time"

	"pridenomad-hub/internal/domain/listings"
)

const PaymentStatusCompleted = "completed"

// Payment is append-only; one row per confirmed provider callback.
type Payment struct {
	ID           string            `gorm:"primaryKey;type:varchar(36)" json:"id" firestore:"-"`
	UserID       string            `gorm:"not null;index" json:"userId" firestore:"userId"`
	Email        string            `gorm:"not null;index" json:"email" firestore:"email"`
	PlanID       string            `gorm:"not null" json:"planId" firestore:"planId"`
	IsYearly     bool              `json:"isYearly" firestore:"isYearly"`
	Amount       float64           `json:"amount" firestore:"amount"`
	BusinessID   string            `json:"businessId,omitempty" firestore:"businessId,omitempty"`
	BusinessData listings.Business `gorm:"type:text;serializer:json" json:"businessData" firestore:"businessData"`
	Status       string            `gorm:"type:varchar(20);not null" json:"status" firestore:"status"`
	Timestamp    time.Time         `gorm:"not null;index" json:"timestamp" firestore:"timestamp"`
}

const (
	DefaultPaymentPage = 50
	MaxPaymentPage     = 500
)

// PaymentPageSize clamps an admin listing limit into [1, MaxPaymentPage].
func PaymentPageSize(limit int) int {
	switch {
	case limit <= 0:
		return DefaultPaymentPage
	case limit > MaxPaymentPage:
		return MaxPaymentPage
	default:
		return limit
	}
}

// PaymentStats aggregates the whole payments log.
type PaymentStats struct {
	Count         int64            `json:"count"`
	Revenue       float64          `json:"revenue"`
	RecentRevenue float64          `json:"recentRevenue"`
	PerPlan       map[string]int64 `json:"perPlan"`
}

// Add folds one payment into s; payments at or after since count as recent.
func (s *PaymentStats) Add(p Payment, since time.Time) {
	if s.PerPlan == nil {
		s.PerPlan = map[string]int64{}
	}
	s.Count++
	s.Revenue += p.Amount
	if !p.Timestamp.Before(since) {
		s.RecentRevenue += p.Amount
	}
	s.PerPlan[p.PlanID]++
}
