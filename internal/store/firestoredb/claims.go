package firestoredb

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"

	"pridenomad-hub/internal/domain/billing"
	"pridenomad-hub/internal/domain/users"
	apperr "pridenomad-hub/internal/pkg/errors"
)

type claimsRepo struct {
	conn
}

func (r claimsRepo) col() *firestore.CollectionRef {
	return r.client.Collection(colClaims)
}

func (r claimsRepo) Create(ctx context.Context, c *billing.PendingClaim) error {
	if c.ID == "" {
		c.ID = newID()
	}
	if c.Status == "" {
		c.Status = billing.ClaimStatusPending
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	c.UserEmail = users.NormalizeEmail(c.UserEmail)
	return translate(r.create(ctx, r.col().Doc(c.ID), c), "claim", "create claim")
}

func (r claimsRepo) Get(ctx context.Context, id string) (*billing.PendingClaim, error) {
	snap, err := r.get(ctx, r.col().Doc(id))
	if err != nil {
		return nil, translate(err, "claim", "load claim")
	}
	return decodeClaim(snap)
}

func (r claimsRepo) FirstPendingByEmail(ctx context.Context, email string) (*billing.PendingClaim, error) {
	q := r.col().
		Where("userEmail", "==", users.NormalizeEmail(email)).
		Where("status", "==", billing.ClaimStatusPending).
		OrderBy("createdAt", firestore.Asc).
		Limit(1)
	docs, err := r.all(ctx, q)
	if err != nil {
		return nil, apperr.RemoteService("load pending claim", err)
	}
	if len(docs) == 0 {
		return nil, apperr.NotFound("pending claim")
	}
	return decodeClaim(docs[0])
}

// DeletePending relies on the Exists precondition. Completed claims are never
// kept, so an existing document is a pending one.
func (r claimsRepo) DeletePending(ctx context.Context, id string) error {
	return translate(r.deleteExisting(ctx, r.col().Doc(id)), "pending claim", "delete claim")
}

func (r claimsRepo) ListPending(ctx context.Context) ([]billing.PendingClaim, error) {
	docs, err := r.all(ctx, r.col().Where("status", "==", billing.ClaimStatusPending).OrderBy("createdAt", firestore.Desc))
	if err != nil {
		return nil, apperr.RemoteService("list claims", err)
	}
	out := make([]billing.PendingClaim, 0, len(docs))
	for _, d := range docs {
		c, err := decodeClaim(d)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, nil
}

func (r claimsRepo) DeletePendingByUser(ctx context.Context, userID string) (int64, error) {
	docs, err := r.all(ctx, r.col().
		Where("userId", "==", userID).
		Where("status", "==", billing.ClaimStatusPending))
	if err != nil {
		return 0, apperr.RemoteService("replace claims", err)
	}
	return r.deleteDocs(ctx, docs, "replace claims")
}

func (r claimsRepo) DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	docs, err := r.all(ctx, r.col().Where("createdAt", "<", cutoff))
	if err != nil {
		return 0, apperr.RemoteService("purge claims", err)
	}
	return r.deleteDocs(ctx, docs, "purge claims")
}

// deleteDocs skips documents another writer already removed.
func (r claimsRepo) deleteDocs(ctx context.Context, docs []*firestore.DocumentSnapshot, op string) (int64, error) {
	var n int64
	for _, d := range docs {
		if err := r.deleteExisting(ctx, d.Ref); err != nil {
			if apperr.IsNotFound(translate(err, "claim", op)) {
				continue
			}
			return n, apperr.RemoteService(op, err)
		}
		n++
	}
	return n, nil
}

func decodeClaim(snap *firestore.DocumentSnapshot) (*billing.PendingClaim, error) {
	var c billing.PendingClaim
	if err := snap.DataTo(&c); err != nil {
		return nil, apperr.RemoteService("decode claim", err)
	}
	c.ID = snap.Ref.ID
	return &c, nil
}
