package gormstore

import (
	"context"
	"slices"
	"time"

	"gorm.io/gorm"

	"pridenomad-hub/internal/domain/admins"
	"pridenomad-hub/internal/domain/users"
	apperr "pridenomad-hub/internal/pkg/errors"
)

type adminsRepo struct {
	db       *gorm.DB
	interval time.Duration
}

func (r adminsRepo) List(ctx context.Context) ([]admins.Admin, error) {
	var out []admins.Admin
	if err := r.db.WithContext(ctx).Order("email ASC").Find(&out).Error; err != nil {
		return nil, apperr.RemoteService("list admins", err)
	}
	return out, nil
}

func (r adminsRepo) Add(ctx context.Context, a *admins.Admin) error {
	a.Email = users.NormalizeEmail(a.Email)
	return translate(r.db.WithContext(ctx).Create(a).Error, "admin", "add admin")
}

func (r adminsRepo) Remove(ctx context.Context, email string) error {
	res := r.db.WithContext(ctx).Where("email = ?", users.NormalizeEmail(email)).Delete(&admins.Admin{})
	if res.Error != nil {
		return apperr.RemoteService("remove admin", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("admin")
	}
	return nil
}

// Watch polls the admins table and calls fn whenever the set changes.
// Read failures keep the previous list.
func (r adminsRepo) Watch(ctx context.Context, fn func(emails []string)) error {
	var last []string
	first := true

	poll := func() {
		list, err := r.List(ctx)
		if err != nil {
			return
		}
		emails := make([]string, len(list))
		for i, a := range list {
			emails[i] = a.Email
		}
		if first || !slices.Equal(emails, last) {
			first = false
			last = emails
			fn(emails)
		}
	}

	poll()
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			poll()
		}
	}
}
