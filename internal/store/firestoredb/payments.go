package firestoredb

import (
	"context"
	"errors"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"pridenomad-hub/internal/domain/billing"
	apperr "pridenomad-hub/internal/pkg/errors"
)

type paymentsRepo struct {
	conn
}

func (r paymentsRepo) col() *firestore.CollectionRef {
	return r.client.Collection(colPayments)
}

func (r paymentsRepo) Create(ctx context.Context, p *billing.Payment) error {
	if p.ID == "" {
		p.ID = newID()
	}
	if p.Timestamp.IsZero() {
		p.Timestamp = time.Now().UTC()
	}
	return translate(r.create(ctx, r.col().Doc(p.ID), p), "payment", "record payment")
}

func (r paymentsRepo) ListByUser(ctx context.Context, userID string) ([]billing.Payment, error) {
	return r.list(ctx, r.col().Where("userId", "==", userID).OrderBy("timestamp", firestore.Desc))
}

func (r paymentsRepo) List(ctx context.Context, limit, offset int) ([]billing.Payment, error) {
	q := r.col().OrderBy("timestamp", firestore.Desc).
		Offset(max(offset, 0)).
		Limit(billing.PaymentPageSize(limit))
	return r.list(ctx, q)
}

func (r paymentsRepo) list(ctx context.Context, q firestore.Query) ([]billing.Payment, error) {
	docs, err := r.all(ctx, q)
	if err != nil {
		return nil, apperr.RemoteService("list payments", err)
	}
	out := make([]billing.Payment, 0, len(docs))
	for _, d := range docs {
		var p billing.Payment
		if err := d.DataTo(&p); err != nil {
			return nil, apperr.RemoteService("decode payment", err)
		}
		p.ID = d.Ref.ID
		out = append(out, p)
	}
	return out, nil
}

// Stats streams the whole collection; Firestore has no grouped aggregation.
func (r paymentsRepo) Stats(ctx context.Context, since time.Time) (*billing.PaymentStats, error) {
	stats := &billing.PaymentStats{PerPlan: map[string]int64{}}
	iter := r.col().Select("planId", "amount", "timestamp").Documents(ctx)
	defer iter.Stop()
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, apperr.RemoteService("aggregate payments", err)
		}
		var p billing.Payment
		if err := doc.DataTo(&p); err != nil {
			return nil, apperr.RemoteService("decode payment", err)
		}
		stats.Add(p, since)
	}
	return stats, nil
}
