package firestoredb

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"

	"pridenomad-hub/internal/domain/admins"
	"pridenomad-hub/internal/domain/users"
	apperr "pridenomad-hub/internal/pkg/errors"
)

type adminsRepo struct {
	conn
}

func (r adminsRepo) col() *firestore.CollectionRef {
	return r.client.Collection(colAdmins)
}

func (r adminsRepo) List(ctx context.Context) ([]admins.Admin, error) {
	docs, err := r.all(ctx, r.col().OrderBy("email", firestore.Asc))
	if err != nil {
		return nil, apperr.RemoteService("list admins", err)
	}
	return decodeAdmins(docs)
}

func (r adminsRepo) Add(ctx context.Context, a *admins.Admin) error {
	a.Email = users.NormalizeEmail(a.Email)
	a.AddedAt = time.Now().UTC()
	return translate(r.create(ctx, r.col().Doc(a.Email), a), "admin", "add admin")
}

func (r adminsRepo) Remove(ctx context.Context, email string) error {
	return translate(r.deleteExisting(ctx, r.col().Doc(users.NormalizeEmail(email))), "admin", "remove admin")
}

// Watch follows the admins collection through a snapshot listener.
func (r adminsRepo) Watch(ctx context.Context, fn func(emails []string)) error {
	it := r.col().Snapshots(ctx)
	defer it.Stop()

	for {
		qs, err := it.Next()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return apperr.RemoteService("watch admins", err)
		}
		docs, err := qs.Documents.GetAll()
		if err != nil {
			return apperr.RemoteService("watch admins", err)
		}
		list, err := decodeAdmins(docs)
		if err != nil {
			return err
		}
		emails := make([]string, len(list))
		for i, a := range list {
			emails[i] = a.Email
		}
		fn(emails)
	}
}

func decodeAdmins(docs []*firestore.DocumentSnapshot) ([]admins.Admin, error) {
	out := make([]admins.Admin, 0, len(docs))
	for _, d := range docs {
		var a admins.Admin
		if err := d.DataTo(&a); err != nil {
			return nil, apperr.RemoteService("decode admin", err)
		}
		if a.Email == "" {
			a.Email = d.Ref.ID
		}
		out = append(out, a)
	}
	return out, nil
}
