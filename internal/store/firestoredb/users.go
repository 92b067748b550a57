package firestoredb

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"

	"pridenomad-hub/internal/domain/users"
	apperr "pridenomad-hub/internal/pkg/errors"
)

type usersRepo struct {
	conn
}

func (r usersRepo) col() *firestore.CollectionRef {
	return r.client.Collection(colUsers)
}

// Create enforces email uniqueness with a lookup; Firestore has no unique
// indexes.
func (r usersRepo) Create(ctx context.Context, u *users.User) error {
	u.Email = users.NormalizeEmail(u.Email)
	if _, err := r.GetByEmail(ctx, u.Email); err == nil {
		return apperr.Conflict("user already exists")
	} else if !apperr.IsNotFound(err) {
		return err
	}

	if u.ID == "" {
		u.ID = newID()
	}
	if u.Role == "" {
		u.Role = users.RoleRegular
	}
	now := time.Now().UTC()
	u.CreatedAt, u.UpdatedAt = now, now
	return translate(r.create(ctx, r.col().Doc(u.ID), u), "user", "create user")
}

func (r usersRepo) GetByID(ctx context.Context, id string) (*users.User, error) {
	snap, err := r.get(ctx, r.col().Doc(id))
	if err != nil {
		return nil, translate(err, "user", "load user")
	}
	return decodeUser(snap)
}

func (r usersRepo) GetByEmail(ctx context.Context, email string) (*users.User, error) {
	return r.firstWhere(ctx, "email", users.NormalizeEmail(email))
}

func (r usersRepo) GetByGoogleSub(ctx context.Context, sub string) (*users.User, error) {
	return r.firstWhere(ctx, "googleSub", sub)
}

func (r usersRepo) GetByFirebaseUID(ctx context.Context, uid string) (*users.User, error) {
	return r.firstWhere(ctx, "firebaseUid", uid)
}

func (r usersRepo) firstWhere(ctx context.Context, path string, value any) (*users.User, error) {
	docs, err := r.all(ctx, r.col().Where(path, "==", value).Limit(1))
	if err != nil {
		return nil, apperr.RemoteService("load user", err)
	}
	if len(docs) == 0 {
		return nil, apperr.NotFound("user")
	}
	return decodeUser(docs[0])
}

func (r usersRepo) Update(ctx context.Context, u *users.User) error {
	u.Email = users.NormalizeEmail(u.Email)
	u.UpdatedAt = time.Now().UTC()
	return translate(r.set(ctx, r.col().Doc(u.ID), u), "user", "update user")
}

func (r usersRepo) UpdateRole(ctx context.Context, id string, role users.Role) error {
	err := r.update(ctx, r.col().Doc(id), []firestore.Update{
		{Path: "role", Value: role},
		{Path: "updatedAt", Value: time.Now().UTC()},
	})
	return translate(err, "user", "update user role")
}

func decodeUser(snap *firestore.DocumentSnapshot) (*users.User, error) {
	var u users.User
	if err := snap.DataTo(&u); err != nil {
		return nil, apperr.RemoteService("decode user", err)
	}
	u.ID = snap.Ref.ID
	return &u, nil
}
