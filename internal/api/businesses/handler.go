package businesses

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"pridenomad-hub/internal/api/respond"
	"pridenomad-hub/internal/app/http/middleware"
	"pridenomad-hub/internal/domain/listings"
	apperr "pridenomad-hub/internal/pkg/errors"
	"pridenomad-hub/internal/services/directory"
)

// maxPhotoBytes caps a single upload.
const maxPhotoBytes = 10 << 20

type Directory interface {
	Create(ctx context.Context, actor directory.Actor, in listings.Business) (*listings.Business, error)
	Update(ctx context.Context, actor directory.Actor, id string, patch listings.Business) (*listings.Business, error)
	Delete(ctx context.Context, actor directory.Actor, id string) error
	Get(ctx context.Context, actor directory.Actor, id string) (*listings.Business, error)
	List(ctx context.Context, actor directory.Actor, f listings.Filter) ([]listings.Business, int64, error)
	AddReview(ctx context.Context, userID, businessID string, rating int, comment string) (*listings.Review, error)
	ListReviews(ctx context.Context, businessID string) ([]listings.Review, error)
	AddPhoto(ctx context.Context, actor directory.Actor, businessID, filename, contentType string, r io.Reader) (*listings.Business, error)
	ListCategories(ctx context.Context) ([]listings.Category, error)
}

type Handler struct {
	dir Directory
}

func NewHandler(d Directory) *Handler {
	return &Handler{dir: d}
}

// ListBusinesses handles GET /businesses.
func (h *Handler) ListBusinesses(c *gin.Context) {
	actor := middleware.Actor(c)
	f := filterFromQuery(c, actor)

	items, total, err := h.dir.List(c.Request.Context(), actor, f)
	if err != nil {
		respond.Error(c, err)
		return
	}

	out := ListResponse{
		Items:  make([]interface{}, 0, len(items)),
		Total:  total,
		Limit:  f.PageSize(),
		Offset: f.Offset,
	}
	for i := range items {
		out.Items = append(out.Items, view(actor, &items[i]))
	}
	c.JSON(http.StatusOK, out)
}

// GetBusiness handles GET /businesses/:id.
func (h *Handler) GetBusiness(c *gin.Context) {
	actor := middleware.Actor(c)
	b, err := h.dir.Get(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, view(actor, b))
}

// CreateBusiness handles POST /businesses.
func (h *Handler) CreateBusiness(c *gin.Context) {
	var req listings.Business
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BindError(c, err)
		return
	}

	b, err := h.dir.Create(c.Request.Context(), middleware.Actor(c), req)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// UpdateBusiness handles PUT /businesses/:id.
func (h *Handler) UpdateBusiness(c *gin.Context) {
	var req listings.Business
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BindError(c, err)
		return
	}

	b, err := h.dir.Update(c.Request.Context(), middleware.Actor(c), c.Param("id"), req)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// DeleteBusiness handles DELETE /businesses/:id.
func (h *Handler) DeleteBusiness(c *gin.Context) {
	if err := h.dir.Delete(c.Request.Context(), middleware.Actor(c), c.Param("id")); err != nil {
		respond.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListReviews handles GET /businesses/:id/reviews.
func (h *Handler) ListReviews(c *gin.Context) {
	reviews, err := h.dir.ListReviews(c.Request.Context(), c.Param("id"))
	if err != nil {
		respond.Error(c, err)
		return
	}
	if reviews == nil {
		reviews = []listings.Review{}
	}
	c.JSON(http.StatusOK, reviews)
}

// CreateReview handles POST /businesses/:id/reviews.
func (h *Handler) CreateReview(c *gin.Context) {
	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BindError(c, err)
		return
	}

	userID := middleware.UserID(c)
	if userID == "" {
		respond.Error(c, apperr.Unauthorized("Unauthorized"))
		return
	}

	review, err := h.dir.AddReview(c.Request.Context(), userID, c.Param("id"), req.Rating, req.Comment)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}

// UploadPhoto handles POST /businesses/:id/photos with a multipart "photo"
// field.
func (h *Handler) UploadPhoto(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxPhotoBytes)

	fh, err := c.FormFile("photo")
	if err != nil {
		respond.Error(c, apperr.BadRequest("photo file is required"))
		return
	}
	f, err := fh.Open()
	if err != nil {
		respond.Error(c, apperr.BadRequest("unreadable upload"))
		return
	}
	defer f.Close()

	b, err := h.dir.AddPhoto(c.Request.Context(), middleware.Actor(c), c.Param("id"), fh.Filename, fh.Header.Get("Content-Type"), f)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// ListCategories handles GET /categories.
func (h *Handler) ListCategories(c *gin.Context) {
	cats, err := h.dir.ListCategories(c.Request.Context())
	if err != nil {
		respond.Error(c, err)
		return
	}
	if cats == nil {
		cats = []listings.Category{}
	}
	c.JSON(http.StatusOK, cats)
}
