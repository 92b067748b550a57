package firestoredb

import (
	"context"
	"sort"
	"strings"
	"time"

	"cloud.google.com/go/firestore"

	"pridenomad-hub/internal/domain/listings"
	"pridenomad-hub/internal/domain/plans"
	apperr "pridenomad-hub/internal/pkg/errors"
)

type businessesRepo struct {
	conn
}

func (r businessesRepo) col() *firestore.CollectionRef {
	return r.client.Collection(colBusinesses)
}

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
	now := time.Now().UTC()
	b.CreatedAt, b.UpdatedAt = now, now
	return translate(r.create(ctx, r.col().Doc(b.ID), b), "business", "create business")
}

func (r businessesRepo) Get(ctx context.Context, id string) (*listings.Business, error) {
	snap, err := r.get(ctx, r.col().Doc(id))
	if err != nil {
		return nil, translate(err, "business", "load business")
	}
	return decodeBusiness(snap)
}

// Update replaces the document. Inside a transaction the caller has already
// read the listing, so the existence check is skipped to keep reads first.
func (r businessesRepo) Update(ctx context.Context, b *listings.Business) error {
	ref := r.col().Doc(b.ID)
	if r.tx == nil {
		if _, err := ref.Get(ctx); err != nil {
			return translate(err, "business", "update business")
		}
	}
	b.UpdatedAt = time.Now().UTC()
	return translate(r.set(ctx, ref, b), "business", "update business")
}

func (r businessesRepo) Delete(ctx context.Context, id string) error {
	return translate(r.deleteExisting(ctx, r.col().Doc(id)), "business", "delete business")
}

// List pushes equality filters to Firestore and applies text, city, ordering
// and paging in memory.
func (r businessesRepo) List(ctx context.Context, f listings.Filter) ([]listings.Business, int64, error) {
	q := r.col().Query
	if f.Category != "" {
		q = q.Where("categories", "array-contains", f.Category)
	}
	if f.Tier != "" {
		q = q.Where("tier", "==", f.Tier)
	}
	if f.VerifiedOnly {
		q = q.Where("verified", "==", true)
	}
	if f.Status != "" {
		q = q.Where("status", "==", f.Status)
	}
	if f.UserID != "" {
		q = q.Where("userId", "==", f.UserID)
	}

	docs, err := r.all(ctx, q)
	if err != nil {
		return nil, 0, apperr.RemoteService("list businesses", err)
	}

	text := strings.ToLower(strings.TrimSpace(f.Query))
	city := strings.ToLower(strings.TrimSpace(f.City))
	var matched []listings.Business
	for _, d := range docs {
		b, err := decodeBusiness(d)
		if err != nil {
			return nil, 0, err
		}
		if text != "" && !strings.Contains(strings.ToLower(b.BusinessName), text) &&
			!strings.Contains(strings.ToLower(b.Description), text) {
			continue
		}
		if city != "" && strings.ToLower(b.City) != city {
			continue
		}
		matched = append(matched, *b)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if a.Tier.Rank() != b.Tier.Rank() {
			return a.Tier.Rank() > b.Tier.Rank()
		}
		if a.Verified != b.Verified {
			return a.Verified
		}
		return a.CreatedAt.After(b.CreatedAt)
	})

	total := int64(len(matched))
	start := min(max(f.Offset, 0), len(matched))
	end := min(start+f.PageSize(), len(matched))
	return matched[start:end], total, nil
}

func decodeBusiness(snap *firestore.DocumentSnapshot) (*listings.Business, error) {
	var b listings.Business
	if err := snap.DataTo(&b); err != nil {
		return nil, apperr.RemoteService("decode business", err)
	}
	b.ID = snap.Ref.ID
	return &b, nil
}
