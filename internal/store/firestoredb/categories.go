package firestoredb

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"

	"pridenomad-hub/internal/domain/listings"
	apperr "pridenomad-hub/internal/pkg/errors"
)

type categoriesRepo struct {
	conn
}

func (r categoriesRepo) col() *firestore.CollectionRef {
	return r.client.Collection(colCategories)
}

func (r categoriesRepo) Create(ctx context.Context, c *listings.Category) error {
	docs, err := r.all(ctx, r.col().Where("slug", "==", c.Slug).Limit(1))
	if err != nil {
		return apperr.RemoteService("create category", err)
	}
	if len(docs) > 0 {
		return apperr.Conflict("category already exists")
	}
	if c.ID == "" {
		c.ID = newID()
	}
	c.CreatedAt = time.Now().UTC()
	return translate(r.create(ctx, r.col().Doc(c.ID), c), "category", "create category")
}

func (r categoriesRepo) List(ctx context.Context) ([]listings.Category, error) {
	docs, err := r.all(ctx, r.col().OrderBy("name", firestore.Asc))
	if err != nil {
		return nil, apperr.RemoteService("list categories", err)
	}
	out := make([]listings.Category, 0, len(docs))
	for _, d := range docs {
		var c listings.Category
		if err := d.DataTo(&c); err != nil {
			return nil, apperr.RemoteService("decode category", err)
		}
		c.ID = d.Ref.ID
		out = append(out, c)
	}
	return out, nil
}

func (r categoriesRepo) Delete(ctx context.Context, id string) error {
	children, err := r.all(ctx, r.col().Where("parentId", "==", id))
	if err != nil {
		return apperr.RemoteService("delete category", err)
	}
	if err := r.deleteExisting(ctx, r.col().Doc(id)); err != nil {
		return translate(err, "category", "delete category")
	}
	for _, c := range children {
		if err := r.deleteExisting(ctx, c.Ref); err != nil {
			return translate(err, "category", "delete sub-categories")
		}
	}
	return nil
}
