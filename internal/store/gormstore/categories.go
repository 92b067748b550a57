package gormstore

import (
	"context"

	"gorm.io/gorm"

	"pridenomad-hub/internal/domain/listings"
	apperr "pridenomad-hub/internal/pkg/errors"
)

type categoriesRepo struct {
	db *gorm.DB
}

func (r categoriesRepo) Create(ctx context.Context, c *listings.Category) error {
	if c.ID == "" {
		c.ID = newID()
	}
	return translate(r.db.WithContext(ctx).Create(c).Error, "category", "create category")
}

func (r categoriesRepo) List(ctx context.Context) ([]listings.Category, error) {
	var out []listings.Category
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&out).Error; err != nil {
		return nil, apperr.RemoteService("list categories", err)
	}
	return out, nil
}

// Delete removes a category and its direct sub-categories.
func (r categoriesRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ?", id).Delete(&listings.Category{})
		if res.Error != nil {
			return apperr.RemoteService("delete category", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound("category")
		}
		if err := tx.Where("parent_id = ?", id).Delete(&listings.Category{}).Error; err != nil {
			return apperr.RemoteService("delete sub-categories", err)
		}
		return nil
	})
}
