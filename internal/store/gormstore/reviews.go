package gormstore

import (
	"context"

	"gorm.io/gorm"

	"pridenomad-hub/internal/domain/listings"
	apperr "pridenomad-hub/internal/pkg/errors"
)

type reviewsRepo struct {
	db *gorm.DB
}

func (r reviewsRepo) Create(ctx context.Context, rv *listings.Review) error {
	if rv.ID == "" {
		rv.ID = newID()
	}
	err := r.db.WithContext(ctx).Create(rv).Error
	if err != nil && isDuplicate(err) {
		return apperr.Conflict("you have already reviewed this business")
	}
	return translate(err, "review", "create review")
}

func (r reviewsRepo) ListByBusiness(ctx context.Context, businessID string) ([]listings.Review, error) {
	var out []listings.Review
	err := r.db.WithContext(ctx).
		Where("business_id = ?", businessID).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, apperr.RemoteService("list reviews", err)
	}
	return out, nil
}
