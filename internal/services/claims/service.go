// Package claims runs the pending-claim / payment-confirmation workflow:
// a user picks a paid plan, a pending claim is stored, the payment provider
// calls back with the payer's email and the claim is turned into a role
// upgrade, a payment record and a verified listing.
package claims

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"pridenomad-hub/internal/domain/billing"
	"pridenomad-hub/internal/domain/listings"
	"pridenomad-hub/internal/domain/plans"
	"pridenomad-hub/internal/domain/users"
	"pridenomad-hub/internal/infra/mailer"
	apperr "pridenomad-hub/internal/pkg/errors"
	"pridenomad-hub/internal/pkg/logger"
	"pridenomad-hub/internal/pkg/metrics"
	"pridenomad-hub/internal/store"
)

// Gateway turns a claim into the URL the payer is sent to.
type Gateway interface {
	CheckoutURL(ctx context.Context, claim *billing.PendingClaim, plan plans.Plan) (string, error)
}

type Notifier interface {
	SendPaymentReceipt(ctx context.Context, to string, r mailer.Receipt) error
}

type Service struct {
	store    store.Store
	gateway  Gateway
	notifier Notifier
	log      *logger.Logger
	now      func() time.Time
}

func NewService(st store.Store, gw Gateway, n Notifier, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{store: st, gateway: gw, notifier: n, log: log, now: time.Now}
}

type CreateInput struct {
	UserID     string
	Email      string
	PlanID     string
	IsYearly   bool
	BusinessID string
	Business   listings.Business
}

type CreateResult struct {
	Claim       *billing.PendingClaim `json:"claim"`
	CheckoutURL string                `json:"checkoutUrl"`
}

// CreatePendingClaim records the intent to pay for in.PlanID and returns the
// provider checkout URL.
func (s *Service) CreatePendingClaim(ctx context.Context, in CreateInput) (*CreateResult, error) {
	plan, ok := plans.Lookup(in.PlanID)
	if !ok {
		return nil, apperr.UnknownPlan(in.PlanID)
	}
	if plan.IsFree() {
		return nil, apperr.ValidationError("the selected plan does not require payment", []listings.FieldError{
			{Field: "selectedPlan", Message: "choose a paid plan"},
		})
	}
	email := users.NormalizeEmail(in.Email)
	if email == "" || in.UserID == "" {
		return nil, apperr.ValidationError("user email is required", []listings.FieldError{
			{Field: "userEmail", Message: "required"},
		})
	}

	snapshot := in.Business
	if in.BusinessID != "" {
		existing, err := s.store.Businesses().Get(ctx, in.BusinessID)
		if err != nil {
			return nil, err
		}
		if existing.UserID != nil && !existing.OwnedBy(in.UserID) {
			return nil, apperr.Conflict("this business has already been claimed")
		}
		if strings.TrimSpace(snapshot.BusinessName) == "" {
			snapshot = *existing
		}
	}
	snapshot.ID = ""
	snapshot.Tier = plan.Tier

	if errs := listings.Validate(plan.Tier, &snapshot); len(errs) > 0 {
		return nil, apperr.ValidationError("business details do not fit the selected plan", errs)
	}

	claim := &billing.PendingClaim{
		UserID:       in.UserID,
		UserEmail:    email,
		SelectedPlan: plan.ID,
		IsYearly:     in.IsYearly,
		BusinessID:   in.BusinessID,
		BusinessData: snapshot,
		Status:       billing.ClaimStatusPending,
		CreatedAt:    s.now().UTC(),
	}
	// A user holds at most one pending claim; a new one replaces the old.
	var replaced int64
	err := s.store.WithinTx(ctx, func(tx store.Store) error {
		n, err := tx.Claims().DeletePendingByUser(ctx, in.UserID)
		if err != nil {
			return err
		}
		replaced = n
		return tx.Claims().Create(ctx, claim)
	})
	if err != nil {
		return nil, err
	}

	url, err := s.gateway.CheckoutURL(ctx, claim, plan)
	if err != nil {
		if delErr := s.store.Claims().DeletePending(ctx, claim.ID); delErr != nil {
			s.log.WithError(delErr).With("claim_id", claim.ID).Warn("failed to drop claim after checkout error")
		}
		return nil, apperr.RemoteService("create checkout", err)
	}

	metrics.RecordClaimCreated(plan.ID)
	s.log.WithFields(map[string]interface{}{
		"claim_id": claim.ID,
		"user_id":  claim.UserID,
		"plan":     plan.ID,
		"yearly":   claim.IsYearly,
		"replaced": replaced,
	}).Info("pending claim created")

	return &CreateResult{Claim: claim, CheckoutURL: url}, nil
}

// Confirmation is what a successful payment callback produced.
type Confirmation struct {
	UserRole   users.Role `json:"userRole"`
	PlanID     string     `json:"planId"`
	IsYearly   bool       `json:"isYearly"`
	BusinessID string     `json:"businessId,omitempty"`
	Amount     float64    `json:"amount"`
	Upgraded   bool       `json:"-"`
}

// ConfirmPayment settles the pending claim of userEmail. This is the path
// for callbacks that only carry the payer's email.
func (s *Service) ConfirmPayment(ctx context.Context, userEmail string) (*Confirmation, error) {
	email := users.NormalizeEmail(userEmail)
	if email == "" {
		return nil, apperr.ValidationError("user_email is required", nil)
	}
	return s.settle(ctx, func(tx store.Store) (*users.User, *billing.PendingClaim, error) {
		user, err := tx.Users().GetByEmail(ctx, email)
		if err != nil {
			return nil, nil, err
		}
		claim, err := tx.Claims().FirstPendingByEmail(ctx, email)
		if err != nil {
			return nil, nil, err
		}
		return user, claim, nil
	})
}

// ConfirmClaim settles one specific claim, for providers that echo back the
// claim id. The claim's owner is upgraded whatever email they paid with.
func (s *Service) ConfirmClaim(ctx context.Context, claimID string) (*Confirmation, error) {
	if claimID == "" {
		return nil, apperr.ValidationError("claim id is required", nil)
	}
	return s.settle(ctx, func(tx store.Store) (*users.User, *billing.PendingClaim, error) {
		claim, err := tx.Claims().Get(ctx, claimID)
		if err != nil {
			return nil, nil, err
		}
		if claim.Status != billing.ClaimStatusPending {
			return nil, nil, apperr.NotFound("pending claim")
		}
		user, err := tx.Users().GetByID(ctx, claim.UserID)
		if err != nil {
			return nil, nil, err
		}
		return user, claim, nil
	})
}

// settle turns the claim picked by load into a payment. All reads and writes
// share one transaction and the claim delete is conditional, so a repeated or
// concurrent settlement fails with NotFound and grants nothing.
func (s *Service) settle(ctx context.Context, load func(tx store.Store) (*users.User, *billing.PendingClaim, error)) (*Confirmation, error) {
	var (
		res      Confirmation
		receipt  mailer.Receipt
		previous users.Role
		email    string
	)
	err := s.store.WithinTx(ctx, func(tx store.Store) error {
		user, claim, err := load(tx)
		if err != nil {
			return err
		}
		email = user.Email
		var existing *listings.Business
		if claim.BusinessID != "" {
			existing, err = tx.Businesses().Get(ctx, claim.BusinessID)
			if err != nil && !apperr.IsNotFound(err) {
				return err
			}
		}

		role, err := users.RoleForPlan(claim.SelectedPlan)
		if err != nil {
			return err
		}
		plan, ok := plans.Lookup(claim.SelectedPlan)
		if !ok {
			return apperr.UnknownPlan(claim.SelectedPlan)
		}

		if err := tx.Claims().DeletePending(ctx, claim.ID); err != nil {
			return err
		}

		previous = user.Role
		next := users.MaxRole(user.Role, role)
		if next != user.Role {
			if err := tx.Users().UpdateRole(ctx, user.ID, next); err != nil {
				return err
			}
		}

		business := claim.BusinessData
		if existing != nil {
			business = *existing
		} else {
			business.ID = uuid.NewString()
		}

		payment := &billing.Payment{
			UserID:       user.ID,
			Email:        email,
			PlanID:       plan.ID,
			IsYearly:     claim.IsYearly,
			Amount:       plan.Price(claim.IsYearly),
			BusinessID:   business.ID,
			BusinessData: claim.BusinessData,
			Status:       billing.PaymentStatusCompleted,
			Timestamp:    s.now().UTC(),
		}
		if err := tx.Payments().Create(ctx, payment); err != nil {
			return err
		}

		if plan.Tier.Rank() > business.Tier.Rank() || business.Tier == "" {
			business.Tier = plan.Tier
		}
		business.Verified = true
		business.Status = listings.StatusApproved
		ownerEmail := user.Email
		business.UserID = &user.ID
		business.OwnerEmail = &ownerEmail
		if business.Slug == "" {
			business.Slug = listings.BusinessSlug(business.BusinessName, business.ID)
		}
		if existing != nil {
			err = tx.Businesses().Update(ctx, &business)
		} else {
			err = tx.Businesses().Create(ctx, &business)
		}
		if err != nil {
			return err
		}

		res = Confirmation{
			UserRole:   next,
			PlanID:     plan.ID,
			IsYearly:   claim.IsYearly,
			BusinessID: business.ID,
			Amount:     payment.Amount,
			Upgraded:   next != previous,
		}
		receipt = mailer.Receipt{
			PlanName:     plan.Name,
			Amount:       payment.Amount,
			IsYearly:     claim.IsYearly,
			BusinessName: business.BusinessName,
			Role:         string(next),
		}
		return nil
	})
	if err != nil {
		metrics.RecordPaymentFailure(apperr.As(err).Code)
		return nil, err
	}

	metrics.RecordPaymentConfirmed(res.PlanID, res.IsYearly)
	if res.Upgraded {
		metrics.RecordRoleUpgrade(string(res.UserRole))
	}
	s.log.WithFields(map[string]interface{}{
		"email":       email,
		"plan":        res.PlanID,
		"role":        res.UserRole,
		"business_id": res.BusinessID,
	}).Info("payment confirmed")

	if s.notifier != nil {
		if err := s.notifier.SendPaymentReceipt(ctx, email, receipt); err != nil {
			s.log.WithError(err).With("email", email).Warn("failed to send payment receipt")
		}
	}
	return &res, nil
}

// AbandonClaim deletes one of the caller's own pending claims. Claims of
// other users are reported as missing.
func (s *Service) AbandonClaim(ctx context.Context, claimID, userID string) error {
	claim, err := s.store.Claims().Get(ctx, claimID)
	if err != nil {
		return err
	}
	if claim.UserID != userID {
		return apperr.NotFound("pending claim")
	}
	return s.store.Claims().DeletePending(ctx, claimID)
}

func (s *Service) ListPending(ctx context.Context) ([]billing.PendingClaim, error) {
	return s.store.Claims().ListPending(ctx)
}

// PurgeStale drops pending claims older than olderThan.
func (s *Service) PurgeStale(ctx context.Context, olderThan time.Duration) (int64, error) {
	n, err := s.store.Claims().DeleteCreatedBefore(ctx, s.now().UTC().Add(-olderThan))
	if err != nil {
		return 0, err
	}
	if n > 0 {
		metrics.RecordClaimsPurged(int(n))
		s.log.Infof("purged %d stale pending claims", n)
	}
	return n, nil
}
