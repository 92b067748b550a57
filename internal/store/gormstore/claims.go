package gormstore

import (
	"context"
	"time"

	"gorm.io/gorm"

	"pridenomad-hub/internal/domain/billing"
	"pridenomad-hub/internal/domain/users"
	apperr "pridenomad-hub/internal/pkg/errors"
)

type claimsRepo struct {
	db *gorm.DB
}

func (r claimsRepo) Create(ctx context.Context, c *billing.PendingClaim) error {
	if c.ID == "" {
		c.ID = newID()
	}
	if c.Status == "" {
		c.Status = billing.ClaimStatusPending
	}
	c.UserEmail = users.NormalizeEmail(c.UserEmail)
	return translate(r.db.WithContext(ctx).Create(c).Error, "claim", "create claim")
}

func (r claimsRepo) Get(ctx context.Context, id string) (*billing.PendingClaim, error) {
	var c billing.PendingClaim
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, translate(err, "claim", "load claim")
	}
	return &c, nil
}

func (r claimsRepo) FirstPendingByEmail(ctx context.Context, email string) (*billing.PendingClaim, error) {
	var c billing.PendingClaim
	err := r.db.WithContext(ctx).
		Where("user_email = ? AND status = ?", users.NormalizeEmail(email), billing.ClaimStatusPending).
		Order("created_at ASC").
		Limit(1).
		First(&c).Error
	if err != nil {
		return nil, translate(err, "pending claim", "load pending claim")
	}
	return &c, nil
}

func (r claimsRepo) DeletePending(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND status = ?", id, billing.ClaimStatusPending).
		Delete(&billing.PendingClaim{})
	if res.Error != nil {
		return apperr.RemoteService("delete claim", res.Error)
	}
	if res.RowsAffected != 1 {
		return apperr.NotFound("pending claim")
	}
	return nil
}

func (r claimsRepo) ListPending(ctx context.Context) ([]billing.PendingClaim, error) {
	var out []billing.PendingClaim
	err := r.db.WithContext(ctx).
		Where("status = ?", billing.ClaimStatusPending).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, apperr.RemoteService("list claims", err)
	}
	return out, nil
}

func (r claimsRepo) DeletePendingByUser(ctx context.Context, userID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, billing.ClaimStatusPending).
		Delete(&billing.PendingClaim{})
	if res.Error != nil {
		return 0, apperr.RemoteService("replace claims", res.Error)
	}
	return res.RowsAffected, nil
}

func (r claimsRepo) DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("status = ? AND created_at < ?", billing.ClaimStatusPending, cutoff).
		Delete(&billing.PendingClaim{})
	if res.Error != nil {
		return 0, apperr.RemoteService("purge claims", res.Error)
	}
	return res.RowsAffected, nil
}
