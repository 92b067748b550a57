package listings

import (
	"time"

	"gorm.io/datatypes"

	"pridenomad-hub/internal/domain/plans"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

type Business struct {
	ID            string            `gorm:"primaryKey;type:varchar(36)" json:"id" firestore:"-"`
	BusinessName  string            `gorm:"not null;index" json:"businessName" firestore:"businessName" validate:"required,max=120"`
	Slug          string            `gorm:"index" json:"slug" firestore:"slug"`
	Description   string            `json:"description" firestore:"description"`
	Categories    []string          `gorm:"type:text;serializer:json" json:"categories" firestore:"categories"`
	SubCategories []string          `gorm:"type:text;serializer:json" json:"subCategories" firestore:"subCategories"`
	Photos        []string          `gorm:"type:text;serializer:json" json:"photos" firestore:"photos"`
	VideoURL      string            `json:"videoUrl" firestore:"videoUrl" validate:"omitempty,url"`
	Tier          plans.Tier        `gorm:"type:varchar(20);not null;default:'essentials';index" json:"tier" firestore:"tier"`
	Verified      bool              `gorm:"not null;default:false" json:"verified" firestore:"verified"`
	Status        string            `gorm:"type:varchar(20);not null;default:'pending';index" json:"status" firestore:"status"`
	UserID        *string           `gorm:"index" json:"userId,omitempty" firestore:"userId,omitempty"`
	OwnerEmail    *string           `json:"ownerEmail,omitempty" firestore:"ownerEmail,omitempty" validate:"omitempty,email"`
	Phone         string            `json:"phone" firestore:"phone" validate:"max=40"`
	Email         string            `json:"email" firestore:"email" validate:"omitempty,email"`
	Website       string            `json:"website" firestore:"website" validate:"omitempty,url"`
	Address       string            `json:"address" firestore:"address"`
	City          string            `gorm:"index" json:"city" firestore:"city"`
	State         string            `json:"state" firestore:"state"`
	Country       string            `json:"country" firestore:"country"`
	Attributes    datatypes.JSONMap `json:"attributes,omitempty" firestore:"attributes,omitempty"`
	RatingCount   int               `gorm:"not null;default:0" json:"ratingCount" firestore:"ratingCount"`
	RatingAverage float64           `gorm:"not null;default:0" json:"ratingAverage" firestore:"ratingAverage"`

	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt"`
}

// OwnedBy reports whether userID owns the listing.
func (b *Business) OwnedBy(userID string) bool {
	return b.UserID != nil && *b.UserID == userID && userID != ""
}

type Category struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id" firestore:"-"`
	Name      string    `gorm:"not null" json:"name" firestore:"name"`
	Slug      string    `gorm:"not null;uniqueIndex:idx_categories_slug" json:"slug" firestore:"slug"`
	ParentID  *string   `gorm:"index" json:"parentId,omitempty" firestore:"parentId,omitempty"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
}

type Review struct {
	ID         string    `gorm:"primaryKey;type:varchar(36)" json:"id" firestore:"-"`
	BusinessID string    `gorm:"not null;uniqueIndex:idx_reviews_business_user" json:"businessId" firestore:"businessId"`
	UserID     string    `gorm:"not null;uniqueIndex:idx_reviews_business_user" json:"userId" firestore:"userId"`
	Rating     int       `gorm:"not null" json:"rating" firestore:"rating"`
	Comment    string    `json:"comment" firestore:"comment"`
	CreatedAt  time.Time `json:"createdAt" firestore:"createdAt"`
}

// Filter narrows List queries. Zero values mean "any".
type Filter struct {
	Query        string
	Category     string
	City         string
	Tier         plans.Tier
	VerifiedOnly bool
	Status       string
	UserID       string
	Limit        int
	Offset       int
}

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PageSize clamps Limit into [1, MaxPageSize].
func (f Filter) PageSize() int {
	switch {
	case f.Limit <= 0:
		return DefaultPageSize
	case f.Limit > MaxPageSize:
		return MaxPageSize
	default:
		return f.Limit
	}
}
