package gormstore

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"pridenomad-hub/internal/domain/listings"
	"pridenomad-hub/internal/domain/plans"
	apperr "pridenomad-hub/internal/pkg/errors"
)

type businessesRepo struct {
	db *gorm.DB
}

// featuredOrder puts higher tiers first, then verified listings, newest last.
const featuredOrder = `CASE tier WHEN 'elite' THEN 0 WHEN 'premium' THEN 1 WHEN 'enhanced' THEN 2 ELSE 3 END, verified DESC, created_at DESC`

func (r businessesRepo) Create(ctx context.Context, b *listings.Business) error {
	if b.ID == "" {
		b.ID = newID()
	}
	if b.Tier == "" {
		b.Tier = plans.TierEssentials
	}
	if b.Status == "" {
		b.Status = listings.StatusPending
	}
	return translate(r.db.WithContext(ctx).Create(b).Error, "business", "create business")
}

func (r businessesRepo) Get(ctx context.Context, id string) (*listings.Business, error) {
	var b listings.Business
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&b).Error; err != nil {
		return nil, translate(err, "business", "load business")
	}
	return &b, nil
}

func (r businessesRepo) Update(ctx context.Context, b *listings.Business) error {
	res := r.db.WithContext(ctx).Model(b).Select("*").Omit("created_at").Updates(b)
	if res.Error != nil {
		return translate(res.Error, "business", "update business")
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("business")
	}
	return nil
}

func (r businessesRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&listings.Business{})
	if res.Error != nil {
		return apperr.RemoteService("delete business", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("business")
	}
	return nil
}

func (r businessesRepo) List(ctx context.Context, f listings.Filter) ([]listings.Business, int64, error) {
	q := r.db.WithContext(ctx).Model(&listings.Business{})

	if s := strings.ToLower(strings.TrimSpace(f.Query)); s != "" {
		like := "%" + s + "%"
		q = q.Where("LOWER(business_name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}
	if f.Category != "" {
		q = q.Where("categories LIKE ?", `%"`+f.Category+`"%`)
	}
	if f.City != "" {
		q = q.Where("LOWER(city) = ?", strings.ToLower(strings.TrimSpace(f.City)))
	}
	if f.Tier != "" {
		q = q.Where("tier = ?", f.Tier)
	}
	if f.VerifiedOnly {
		q = q.Where("verified = ?", true)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.UserID != "" {
		q = q.Where("user_id = ?", f.UserID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, apperr.RemoteService("count businesses", err)
	}

	var out []listings.Business
	err := q.Order(featuredOrder).
		Limit(f.PageSize()).
		Offset(max(f.Offset, 0)).
		Find(&out).Error
	if err != nil {
		return nil, 0, apperr.RemoteService("list businesses", err)
	}
	return out, total, nil
}
