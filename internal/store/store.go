// Package store declares the persistence contracts shared by the gorm and
// Firestore backends. Implementations return apperr NotFound for missing
// records and apperr RemoteService for driver failures.
package store

import (
	"context"
	"time"

	"pridenomad-hub/internal/domain/admins"
	"pridenomad-hub/internal/domain/billing"
	"pridenomad-hub/internal/domain/listings"
	"pridenomad-hub/internal/domain/users"
)

type Users interface {
	Create(ctx context.Context, u *users.User) error
	GetByID(ctx context.Context, id string) (*users.User, error)
	GetByEmail(ctx context.Context, email string) (*users.User, error)
	GetByGoogleSub(ctx context.Context, sub string) (*users.User, error)
	GetByFirebaseUID(ctx context.Context, uid string) (*users.User, error)
	Update(ctx context.Context, u *users.User) error
	UpdateRole(ctx context.Context, id string, role users.Role) error
}

type Claims interface {
	Create(ctx context.Context, c *billing.PendingClaim) error
	Get(ctx context.Context, id string) (*billing.PendingClaim, error)
	// FirstPendingByEmail returns the oldest pending claim for email.
	FirstPendingByEmail(ctx context.Context, email string) (*billing.PendingClaim, error)
	// DeletePending removes a claim only while it is still pending. A claim
	// that is already gone yields NotFound.
	DeletePending(ctx context.Context, id string) error
	ListPending(ctx context.Context) ([]billing.PendingClaim, error)
	// DeletePendingByUser drops every pending claim of userID.
	DeletePendingByUser(ctx context.Context, userID string) (int64, error)
	DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type Payments interface {
	Create(ctx context.Context, p *billing.Payment) error
	ListByUser(ctx context.Context, userID string) ([]billing.Payment, error)
	List(ctx context.Context, limit, offset int) ([]billing.Payment, error)
	// Stats aggregates every payment; RecentRevenue covers payments at or
	// after since.
	Stats(ctx context.Context, since time.Time) (*billing.PaymentStats, error)
}

type Businesses interface {
	Create(ctx context.Context, b *listings.Business) error
	Get(ctx context.Context, id string) (*listings.Business, error)
	Update(ctx context.Context, b *listings.Business) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f listings.Filter) ([]listings.Business, int64, error)
}

type Categories interface {
	Create(ctx context.Context, c *listings.Category) error
	List(ctx context.Context) ([]listings.Category, error)
	Delete(ctx context.Context, id string) error
}

type Reviews interface {
	// Create returns Conflict when the user already reviewed the business.
	Create(ctx context.Context, r *listings.Review) error
	ListByBusiness(ctx context.Context, businessID string) ([]listings.Review, error)
}

type Admins interface {
	admins.Source
	List(ctx context.Context) ([]admins.Admin, error)
	Add(ctx context.Context, a *admins.Admin) error
	Remove(ctx context.Context, email string) error
}

// Store groups the repositories. Repositories obtained from the Store passed
// to WithinTx's fn share that transaction.
type Store interface {
	Users() Users
	Claims() Claims
	Payments() Payments
	Businesses() Businesses
	Categories() Categories
	Reviews() Reviews
	Admins() Admins

	WithinTx(ctx context.Context, fn func(tx Store) error) error
	Close() error
}
