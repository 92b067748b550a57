// Package gormstore implements store.Store on gorm (Postgres in production,
// SQLite in tests).
package gormstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperr "pridenomad-hub/internal/pkg/errors"
	"pridenomad-hub/internal/store"
)

type Store struct {
	db           *gorm.DB
	pollInterval time.Duration
}

type Option func(*Store)

// WithAdminPollInterval sets how often Admins().Watch re-reads the table.
func WithAdminPollInterval(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.pollInterval = d
		}
	}
}

func New(db *gorm.DB, opts ...Option) *Store {
	s := &Store{db: db, pollInterval: time.Minute}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ store.Store = (*Store)(nil)

func (s *Store) Users() store.Users           { return usersRepo{db: s.db} }
func (s *Store) Claims() store.Claims         { return claimsRepo{db: s.db} }
func (s *Store) Payments() store.Payments     { return paymentsRepo{db: s.db} }
func (s *Store) Businesses() store.Businesses { return businessesRepo{db: s.db} }
func (s *Store) Categories() store.Categories { return categoriesRepo{db: s.db} }
func (s *Store) Reviews() store.Reviews       { return reviewsRepo{db: s.db} }
func (s *Store) Admins() store.Admins         { return adminsRepo{db: s.db, interval: s.pollInterval} }

// WithinTx runs fn in a database transaction; a nested call uses a savepoint.
func (s *Store) WithinTx(ctx context.Context, fn func(tx store.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx, pollInterval: s.pollInterval})
	})
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func newID() string {
	return uuid.NewString()
}

// translate maps gorm errors onto the application taxonomy.
func translate(err error, resource, op string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperr.NotFound(resource)
	case isDuplicate(err):
		return apperr.Conflict(resource + " already exists")
	default:
		return apperr.RemoteService(op, err)
	}
}

func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "duplicate key value")
}
