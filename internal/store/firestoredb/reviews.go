package firestoredb

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"pridenomad-hub/internal/domain/listings"
	apperr "pridenomad-hub/internal/pkg/errors"
)

func alreadyReviewed() error {
	return apperr.Conflict("you have already reviewed this business")
}

type reviewsRepo struct {
	conn
}

func (r reviewsRepo) col() *firestore.CollectionRef {
	return r.client.Collection(colReviews)
}

// Create keys the document on business and user so a second review by the
// same user collides. Transactional creates only fail at commit, so inside a
// transaction the document is read first.
func (r reviewsRepo) Create(ctx context.Context, rv *listings.Review) error {
	rv.ID = rv.BusinessID + "_" + rv.UserID
	if rv.CreatedAt.IsZero() {
		rv.CreatedAt = time.Now().UTC()
	}
	ref := r.col().Doc(rv.ID)
	if r.tx != nil {
		_, err := r.tx.Get(ref)
		switch {
		case err == nil:
			return alreadyReviewed()
		case status.Code(err) != codes.NotFound:
			return apperr.RemoteService("create review", err)
		}
	}
	err := translate(r.create(ctx, ref, rv), "review", "create review")
	if apperr.As(err).Code == apperr.ErrCodeConflict {
		return alreadyReviewed()
	}
	return err
}

func (r reviewsRepo) ListByBusiness(ctx context.Context, businessID string) ([]listings.Review, error) {
	docs, err := r.all(ctx, r.col().Where("businessId", "==", businessID).OrderBy("createdAt", firestore.Desc))
	if err != nil {
		return nil, apperr.RemoteService("list reviews", err)
	}
	out := make([]listings.Review, 0, len(docs))
	for _, d := range docs {
		var rv listings.Review
		if err := d.DataTo(&rv); err != nil {
			return nil, apperr.RemoteService("decode review", err)
		}
		rv.ID = d.Ref.ID
		out = append(out, rv)
	}
	return out, nil
}
