package gormstore

import (
	"context"

	"gorm.io/gorm"

	"pridenomad-hub/internal/domain/users"
	apperr "pridenomad-hub/internal/pkg/errors"
)

type usersRepo struct {
	db *gorm.DB
}

func (r usersRepo) Create(ctx context.Context, u *users.User) error {
	if u.ID == "" {
		u.ID = newID()
	}
	u.Email = users.NormalizeEmail(u.Email)
	if u.Role == "" {
		u.Role = users.RoleRegular
	}
	return translate(r.db.WithContext(ctx).Create(u).Error, "user", "create user")
}

func (r usersRepo) GetByID(ctx context.Context, id string) (*users.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r usersRepo) GetByEmail(ctx context.Context, email string) (*users.User, error) {
	return r.first(ctx, "email = ?", users.NormalizeEmail(email))
}

func (r usersRepo) GetByGoogleSub(ctx context.Context, sub string) (*users.User, error) {
	return r.first(ctx, "google_sub = ?", sub)
}

func (r usersRepo) GetByFirebaseUID(ctx context.Context, uid string) (*users.User, error) {
	return r.first(ctx, "firebase_uid = ?", uid)
}

func (r usersRepo) first(ctx context.Context, query string, arg any) (*users.User, error) {
	var u users.User
	if err := r.db.WithContext(ctx).Where(query, arg).First(&u).Error; err != nil {
		return nil, translate(err, "user", "load user")
	}
	return &u, nil
}

func (r usersRepo) Update(ctx context.Context, u *users.User) error {
	u.Email = users.NormalizeEmail(u.Email)
	return translate(r.db.WithContext(ctx).Save(u).Error, "user", "update user")
}

func (r usersRepo) UpdateRole(ctx context.Context, id string, role users.Role) error {
	res := r.db.WithContext(ctx).Model(&users.User{}).Where("id = ?", id).Update("role", role)
	if res.Error != nil {
		return apperr.RemoteService("update user role", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("user")
	}
	return nil
}
