// Package firestoredb implements store.Store on Cloud Firestore.
//
// Transactions follow Firestore rules: every read must happen before the
// first write, so callers of WithinTx read everything they need up front.
package firestoredb

import (
	"context"
	"errors"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	apperr "pridenomad-hub/internal/pkg/errors"
	"pridenomad-hub/internal/store"
)

const (
	colUsers      = "users"
	colClaims     = "pendingClaims"
	colPayments   = "payments"
	colBusinesses = "businesses"
	colCategories = "categories"
	colReviews    = "reviews"
	colAdmins     = "admins"
)

type Store struct {
	conn
}

func New(client *firestore.Client) *Store {
	return &Store{conn: conn{client: client}}
}

var _ store.Store = (*Store)(nil)

func (s *Store) Users() store.Users           { return usersRepo{s.conn} }
func (s *Store) Claims() store.Claims         { return claimsRepo{s.conn} }
func (s *Store) Payments() store.Payments     { return paymentsRepo{s.conn} }
func (s *Store) Businesses() store.Businesses { return businessesRepo{s.conn} }
func (s *Store) Categories() store.Categories { return categoriesRepo{s.conn} }
func (s *Store) Reviews() store.Reviews       { return reviewsRepo{s.conn} }
func (s *Store) Admins() store.Admins         { return adminsRepo{s.conn} }

// WithinTx runs fn inside RunTransaction. Firestore may call fn more than
// once when the transaction is contended. Nested calls join the outer
// transaction.
func (s *Store) WithinTx(ctx context.Context, fn func(tx store.Store) error) error {
	if s.tx != nil {
		return fn(s)
	}
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		return fn(&Store{conn: conn{client: s.client, tx: tx}})
	})
	var appErr *apperr.AppError
	if err == nil || errors.As(err, &appErr) {
		return err
	}
	return translate(err, "record", "commit transaction")
}

func (s *Store) Close() error {
	return s.client.Close()
}

// conn routes reads and writes through the current transaction, if any.
type conn struct {
	client *firestore.Client
	tx     *firestore.Transaction
}

func (c conn) get(ctx context.Context, ref *firestore.DocumentRef) (*firestore.DocumentSnapshot, error) {
	if c.tx != nil {
		return c.tx.Get(ref)
	}
	return ref.Get(ctx)
}

func (c conn) all(ctx context.Context, q firestore.Query) ([]*firestore.DocumentSnapshot, error) {
	if c.tx != nil {
		return c.tx.Documents(q).GetAll()
	}
	return q.Documents(ctx).GetAll()
}

func (c conn) create(ctx context.Context, ref *firestore.DocumentRef, data any) error {
	if c.tx != nil {
		return c.tx.Create(ref, data)
	}
	_, err := ref.Create(ctx, data)
	return err
}

func (c conn) set(ctx context.Context, ref *firestore.DocumentRef, data any) error {
	if c.tx != nil {
		return c.tx.Set(ref, data)
	}
	_, err := ref.Set(ctx, data)
	return err
}

func (c conn) update(ctx context.Context, ref *firestore.DocumentRef, updates []firestore.Update) error {
	if c.tx != nil {
		return c.tx.Update(ref, updates)
	}
	_, err := ref.Update(ctx, updates)
	return err
}

// deleteExisting fails with NotFound when ref does not exist.
func (c conn) deleteExisting(ctx context.Context, ref *firestore.DocumentRef) error {
	if c.tx != nil {
		return c.tx.Delete(ref, firestore.Exists)
	}
	_, err := ref.Delete(ctx, firestore.Exists)
	return err
}

func newID() string {
	return uuid.NewString()
}

func translate(err error, resource, op string) error {
	if err == nil {
		return nil
	}
	switch status.Code(err) {
	case codes.NotFound:
		return apperr.NotFound(resource)
	case codes.AlreadyExists:
		return apperr.Conflict(resource + " already exists")
	default:
		return apperr.RemoteService(op, err)
	}
}
