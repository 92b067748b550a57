package billing

import (
	"context"

	"pridenomad-hub/internal/domain/billing"
	"pridenomad-hub/internal/domain/listings"
	"pridenomad-hub/internal/services/claims"
	"pridenomad-hub/internal/services/directory"
)

type ClaimService interface {
	CreatePendingClaim(ctx context.Context, in claims.CreateInput) (*claims.CreateResult, error)
	AbandonClaim(ctx context.Context, claimID, userID string) error
}

type ListingCreator interface {
	Create(ctx context.Context, actor directory.Actor, in listings.Business) (*listings.Business, error)
}

type PaymentHistory interface {
	Payments(ctx context.Context, userID string) ([]billing.Payment, error)
}

type Handler struct {
	claims   ClaimService
	listings ListingCreator
	payments PaymentHistory
}

func NewHandler(c ClaimService, l ListingCreator, p PaymentHistory) *Handler {
	return &Handler{claims: c, listings: l, payments: p}
}
