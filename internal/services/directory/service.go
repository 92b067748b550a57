// Package directory manages business listings, their reviews, photos and the
// category tree. Tier limits are enforced on every write.
package directory

import (
	"context"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	"pridenomad-hub/internal/domain/listings"
	"pridenomad-hub/internal/domain/plans"
	"pridenomad-hub/internal/domain/users"
	"pridenomad-hub/internal/infra/objectstore"
	apperr "pridenomad-hub/internal/pkg/errors"
	"pridenomad-hub/internal/pkg/logger"
	"pridenomad-hub/internal/store"
)

// Actor is the caller of a listing operation.
type Actor struct {
	UserID  string
	Email   string
	Role    users.Role
	IsAdmin bool
}

func (a Actor) canEdit(b *listings.Business) bool {
	return a.IsAdmin || b.OwnedBy(a.UserID)
}

// PhotoStore keeps uploaded images and returns their public URL.
type PhotoStore interface {
	Upload(ctx context.Context, name, contentType string, r io.Reader) (string, error)
}

type Service struct {
	store  store.Store
	photos PhotoStore
	log    *logger.Logger
	policy *bluemonday.Policy
}

func NewService(st store.Store, photos PhotoStore, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{store: st, photos: photos, log: log, policy: bluemonday.StrictPolicy()}
}

func (s *Service) clean(b *listings.Business) {
	b.BusinessName = strings.TrimSpace(s.policy.Sanitize(b.BusinessName))
	b.Description = strings.TrimSpace(s.policy.Sanitize(b.Description))
	b.Address = s.policy.Sanitize(b.Address)
	b.City = strings.TrimSpace(b.City)
}

func validate(tier plans.Tier, b *listings.Business) error {
	if errs := listings.Validate(tier, b); len(errs) > 0 {
		return apperr.ValidationError("business details do not fit the "+string(plans.NormalizeTier(string(tier)))+" tier", errs)
	}
	return nil
}

// Create adds a listing owned by actor. It starts unverified and pending
// moderation, on the tier of the owner's role.
func (s *Service) Create(ctx context.Context, actor Actor, in listings.Business) (*listings.Business, error) {
	b := in
	s.clean(&b)
	b.ID = uuid.NewString()
	b.Tier = actor.Role.Tier()
	b.Verified = false
	b.Status = listings.StatusPending
	b.RatingCount, b.RatingAverage = 0, 0
	b.UserID = &actor.UserID
	if actor.Email != "" {
		email := actor.Email
		b.OwnerEmail = &email
	}
	b.Slug = listings.BusinessSlug(b.BusinessName, b.ID)

	if err := validate(b.Tier, &b); err != nil {
		return nil, err
	}
	if err := s.store.Businesses().Create(ctx, &b); err != nil {
		return nil, err
	}
	s.log.With("business_id", b.ID).With("user_id", actor.UserID).Info("business created")
	return &b, nil
}

// Update replaces the editable fields of a listing. Tier, ownership,
// moderation state and ratings are kept from the stored record.
func (s *Service) Update(ctx context.Context, actor Actor, id string, patch listings.Business) (*listings.Business, error) {
	current, err := s.store.Businesses().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.canEdit(current) {
		return nil, apperr.Forbidden("you cannot edit this business")
	}

	next := patch
	s.clean(&next)
	next.ID = current.ID
	next.Tier = current.Tier
	next.Verified = current.Verified
	next.Status = current.Status
	next.UserID = current.UserID
	next.OwnerEmail = current.OwnerEmail
	next.RatingCount = current.RatingCount
	next.RatingAverage = current.RatingAverage
	next.CreatedAt = current.CreatedAt
	if next.Photos == nil {
		next.Photos = current.Photos
	}
	if next.BusinessName != current.BusinessName || current.Slug == "" {
		next.Slug = listings.BusinessSlug(next.BusinessName, next.ID)
	} else {
		next.Slug = current.Slug
	}

	if err := validate(next.Tier, &next); err != nil {
		return nil, err
	}
	if err := s.store.Businesses().Update(ctx, &next); err != nil {
		return nil, err
	}
	return &next, nil
}

func (s *Service) Delete(ctx context.Context, actor Actor, id string) error {
	b, err := s.store.Businesses().Get(ctx, id)
	if err != nil {
		return err
	}
	if !actor.canEdit(b) {
		return apperr.Forbidden("you cannot delete this business")
	}
	return s.store.Businesses().Delete(ctx, id)
}

// Get returns a listing. Listings that are not approved are only visible to
// their owner and admins.
func (s *Service) Get(ctx context.Context, actor Actor, id string) (*listings.Business, error) {
	b, err := s.store.Businesses().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.Status != listings.StatusApproved && !actor.canEdit(b) {
		return nil, apperr.NotFound("business")
	}
	return b, nil
}

// List searches listings. Non-admins only ever see approved listings unless
// they ask for their own.
func (s *Service) List(ctx context.Context, actor Actor, f listings.Filter) ([]listings.Business, int64, error) {
	if !actor.IsAdmin && !(f.UserID != "" && f.UserID == actor.UserID) {
		f.Status = listings.StatusApproved
	}
	return s.store.Businesses().List(ctx, f)
}

func (s *Service) setStatus(ctx context.Context, id, status string) (*listings.Business, error) {
	b, err := s.store.Businesses().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	b.Status = status
	if err := s.store.Businesses().Update(ctx, b); err != nil {
		return nil, err
	}
	s.log.With("business_id", id).With("status", status).Info("business moderated")
	return b, nil
}

func (s *Service) Approve(ctx context.Context, id string) (*listings.Business, error) {
	return s.setStatus(ctx, id, listings.StatusApproved)
}

func (s *Service) Reject(ctx context.Context, id string) (*listings.Business, error) {
	return s.setStatus(ctx, id, listings.StatusRejected)
}

// SetTier moves a listing to another tier. Content that exceeds the new
// tier's limits is rejected rather than silently trimmed.
func (s *Service) SetTier(ctx context.Context, id, tier string) (*listings.Business, error) {
	t, ok := plans.ParseTier(tier)
	if !ok {
		return nil, apperr.ValidationError("unknown tier", []listings.FieldError{{Field: "tier", Message: "unknown tier " + tier}})
	}
	b, err := s.store.Businesses().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	b.Tier = t
	if err := validate(t, b); err != nil {
		return nil, err
	}
	if err := s.store.Businesses().Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// AddReview records one review per user per business and keeps the
// listing's rating aggregate in step.
func (s *Service) AddReview(ctx context.Context, userID, businessID string, rating int, comment string) (*listings.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, apperr.ValidationError("invalid rating", []listings.FieldError{{Field: "rating", Message: "must be between 1 and 5"}})
	}
	comment = strings.TrimSpace(s.policy.Sanitize(comment))
	if len([]rune(comment)) > 2000 {
		return nil, apperr.ValidationError("invalid comment", []listings.FieldError{{Field: "comment", Message: "must be at most 2000 characters"}})
	}

	review := &listings.Review{
		BusinessID: businessID,
		UserID:     userID,
		Rating:     rating,
		Comment:    comment,
		CreatedAt:  time.Now().UTC(),
	}
	err := s.store.WithinTx(ctx, func(tx store.Store) error {
		b, err := tx.Businesses().Get(ctx, businessID)
		if err != nil {
			return err
		}
		if b.Status != listings.StatusApproved {
			return apperr.NotFound("business")
		}
		if b.OwnedBy(userID) {
			return apperr.Forbidden("you cannot review your own business")
		}
		if err := tx.Reviews().Create(ctx, review); err != nil {
			return err
		}
		total := b.RatingAverage*float64(b.RatingCount) + float64(rating)
		b.RatingCount++
		b.RatingAverage = math.Round(total/float64(b.RatingCount)*100) / 100
		return tx.Businesses().Update(ctx, b)
	})
	if err != nil {
		return nil, err
	}
	return review, nil
}

func (s *Service) ListReviews(ctx context.Context, businessID string) ([]listings.Review, error) {
	return s.store.Reviews().ListByBusiness(ctx, businessID)
}

var allowedPhotoTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// AddPhoto uploads an image and appends it to the listing, refusing when the
// tier's image allowance is used up.
func (s *Service) AddPhoto(ctx context.Context, actor Actor, businessID, filename, contentType string, r io.Reader) (*listings.Business, error) {
	if s.photos == nil {
		return nil, apperr.New(apperr.ErrCodeInternal, "photo uploads are not configured", http.StatusServiceUnavailable)
	}
	if !allowedPhotoTypes[contentType] {
		return nil, apperr.ValidationError("unsupported image type", []listings.FieldError{{Field: "photo", Message: "must be jpeg, png, webp or gif"}})
	}

	b, err := s.store.Businesses().Get(ctx, businessID)
	if err != nil {
		return nil, err
	}
	if !actor.canEdit(b) {
		return nil, apperr.Forbidden("you cannot edit this business")
	}
	limits := plans.LimitsFor(b.Tier)
	if plans.Exceeds(len(b.Photos)+1, limits.MaxImages) {
		return nil, apperr.ValidationError("photo limit reached", []listings.FieldError{{Field: "photos", Message: "your tier allows no more photos"}})
	}

	url, err := s.photos.Upload(ctx, objectstore.ObjectName(b.ID, uuid.NewString(), filename), contentType, r)
	if err != nil {
		return nil, apperr.RemoteService("upload photo", err)
	}
	b.Photos = append(b.Photos, url)
	if err := s.store.Businesses().Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Service) ListCategories(ctx context.Context) ([]listings.Category, error) {
	return s.store.Categories().List(ctx)
}

// CreateCategory adds a top-level category, or a sub-category when parentID
// is set.
func (s *Service) CreateCategory(ctx context.Context, name string, parentID *string) (*listings.Category, error) {
	clean := strings.TrimSpace(s.policy.Sanitize(name))
	if clean == "" {
		return nil, apperr.ValidationError("invalid category", []listings.FieldError{{Field: "name", Message: "required"}})
	}
	c := &listings.Category{Name: clean, Slug: listings.MakeSlug(name), ParentID: parentID}
	if parentID != nil && *parentID != "" {
		all, err := s.store.Categories().List(ctx)
		if err != nil {
			return nil, err
		}
		var parent *listings.Category
		for i := range all {
			if all[i].ID == *parentID {
				parent = &all[i]
			}
		}
		if parent == nil {
			return nil, apperr.NotFound("parent category")
		}
		c.Slug = parent.Slug + "-" + c.Slug
	} else {
		c.ParentID = nil
	}
	if err := s.store.Categories().Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) DeleteCategory(ctx context.Context, id string) error {
	return s.store.Categories().Delete(ctx, id)
}
