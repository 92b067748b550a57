package businesses

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pridenomad-hub/internal/app/http/middleware"
	"pridenomad-hub/internal/domain/users"
	"pridenomad-hub/internal/pkg/logger"
	"pridenomad-hub/internal/services/directory"
	"pridenomad-hub/internal/store/gormstore"
	"pridenomad-hub/internal/testutil"
)

type memPhotos struct{ names []string }

func (m *memPhotos) Upload(_ context.Context, name, _ string, r io.Reader) (string, error) {
	_, _ = io.Copy(io.Discard, r)
	m.names = append(m.names, name)
	return "https://cdn.test/" + name, nil
}

var (
	owner    = &users.User{ID: "owner-1", Email: "owner@hub.test", Role: users.RoleRegular}
	reviewer = &users.User{ID: "rev-1", Email: "rev@hub.test", Role: users.RoleRegular}
	admin    = &users.User{ID: "admin-1", Email: "boss@hub.test", Role: users.RoleRegular}
)

type fixture struct {
	router *gin.Engine
	dir    *directory.Service
	photos *memPhotos
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	photos := &memPhotos{}
	dir := directory.NewService(gormstore.New(testutil.NewTestDB(t)), photos, logger.Nop())
	h := NewHandler(dir)

	// X-Test-User picks the caller; absent means anonymous.
	who := func(c *gin.Context) {
		switch c.GetHeader("X-Test-User") {
		case owner.ID:
			middleware.SetUser(c, owner, false)
		case reviewer.ID:
			middleware.SetUser(c, reviewer, false)
		case admin.ID:
			middleware.SetUser(c, admin, true)
		}
	}

	r := gin.New()
	r.Use(who)
	r.GET("/businesses", h.ListBusinesses)
	r.POST("/businesses", h.CreateBusiness)
	r.GET("/businesses/:id", h.GetBusiness)
	r.PUT("/businesses/:id", h.UpdateBusiness)
	r.DELETE("/businesses/:id", h.DeleteBusiness)
	r.GET("/businesses/:id/reviews", h.ListReviews)
	r.POST("/businesses/:id/reviews", h.CreateReview)
	r.POST("/businesses/:id/photos", h.UploadPhoto)
	r.GET("/categories", h.ListCategories)
	return &fixture{router: r, dir: dir, photos: photos}
}

func (f *fixture) do(method, path, user, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if user != "" {
		req.Header.Set("X-Test-User", user)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func (f *fixture) createApproved(t *testing.T) string {
	t.Helper()
	w := f.do(http.MethodPost, "/businesses", owner.ID,
		`{"businessName":"Rainbow Cafe","categories":["Food"],"phone":"555-0100","city":"Berlin"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	id := decode(t, w)["id"].(string)

	_, err := f.dir.Approve(context.Background(), id)
	require.NoError(t, err)
	return id
}

func TestPendingListingHiddenFromPublic(t *testing.T) {
	f := newFixture(t)
	w := f.do(http.MethodPost, "/businesses", owner.ID, `{"businessName":"Hidden Bar","categories":["Bars"]}`)
	require.Equal(t, http.StatusCreated, w.Code)
	id := decode(t, w)["id"].(string)

	assert.Equal(t, http.StatusNotFound, f.do(http.MethodGet, "/businesses/"+id, "", "").Code)
	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/businesses/"+id, owner.ID, "").Code)
	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/businesses/"+id, admin.ID, "").Code)
}

func TestPublicViewHidesGatedFields(t *testing.T) {
	f := newFixture(t)
	id := f.createApproved(t)

	public := decode(t, f.do(http.MethodGet, "/businesses/"+id, "", ""))
	assert.Equal(t, "Rainbow Cafe", public["businessName"])
	assert.NotContains(t, public, "phone")

	own := decode(t, f.do(http.MethodGet, "/businesses/"+id, owner.ID, ""))
	assert.Equal(t, "555-0100", own["phone"])
}

func TestListBusinesses(t *testing.T) {
	f := newFixture(t)
	f.createApproved(t)
	f.do(http.MethodPost, "/businesses", owner.ID, `{"businessName":"Pending Place","categories":["Food"]}`)

	w := f.do(http.MethodGet, "/businesses?city=berlin", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	var resp ListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.EqualValues(t, 1, resp.Total)
	assert.Len(t, resp.Items, 1)

	require.NoError(t, json.Unmarshal(f.do(http.MethodGet, "/businesses?mine=true", owner.ID, "").Body.Bytes(), &resp))
	assert.EqualValues(t, 2, resp.Total)
}

func TestUpdateAndDeletePermissions(t *testing.T) {
	f := newFixture(t)
	id := f.createApproved(t)

	body := `{"businessName":"Rainbow Cafe","description":"Now with cake","categories":["Food"]}`
	assert.Equal(t, http.StatusForbidden, f.do(http.MethodPut, "/businesses/"+id, reviewer.ID, body).Code)

	w := f.do(http.MethodPut, "/businesses/"+id, owner.ID, body)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Now with cake", decode(t, w)["description"])

	assert.Equal(t, http.StatusForbidden, f.do(http.MethodDelete, "/businesses/"+id, reviewer.ID, "").Code)
	assert.Equal(t, http.StatusNoContent, f.do(http.MethodDelete, "/businesses/"+id, owner.ID, "").Code)
	assert.Equal(t, http.StatusNotFound, f.do(http.MethodGet, "/businesses/"+id, owner.ID, "").Code)
}

func TestReviews(t *testing.T) {
	f := newFixture(t)
	id := f.createApproved(t)

	assert.Equal(t, http.StatusBadRequest, f.do(http.MethodPost, "/businesses/"+id+"/reviews", reviewer.ID, `{"rating":6}`).Code)
	assert.Equal(t, http.StatusForbidden, f.do(http.MethodPost, "/businesses/"+id+"/reviews", owner.ID, `{"rating":5}`).Code)

	w := f.do(http.MethodPost, "/businesses/"+id+"/reviews", reviewer.ID, `{"rating":4,"comment":"Lovely"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, http.StatusConflict, f.do(http.MethodPost, "/businesses/"+id+"/reviews", reviewer.ID, `{"rating":5}`).Code)

	var reviews []map[string]interface{}
	require.NoError(t, json.Unmarshal(f.do(http.MethodGet, "/businesses/"+id+"/reviews", "", "").Body.Bytes(), &reviews))
	require.Len(t, reviews, 1)
	assert.Equal(t, "Lovely", reviews[0]["comment"])

	b := decode(t, f.do(http.MethodGet, "/businesses/"+id, "", ""))
	assert.EqualValues(t, 1, b["ratingCount"])
	assert.EqualValues(t, 4, b["ratingAverage"])
}

func photoRequest(t *testing.T, path, user, contentType string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", `form-data; name="photo"; filename="front.jpg"`)
	hdr.Set("Content-Type", contentType)
	part, err := mw.CreatePart(hdr)
	require.NoError(t, err)
	_, _ = part.Write([]byte("\xff\xd8\xff fake jpeg"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("X-Test-User", user)
	return req
}

func TestUploadPhoto(t *testing.T) {
	f := newFixture(t)
	id := f.createApproved(t)

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, photoRequest(t, "/businesses/"+id+"/photos", owner.ID, "image/jpeg"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.Len(t, f.photos.names, 1)
	assert.Contains(t, f.photos.names[0], "businesses/"+id+"/")

	// essentials allows a single image
	w = httptest.NewRecorder()
	f.router.ServeHTTP(w, photoRequest(t, "/businesses/"+id+"/photos", owner.ID, "image/jpeg"))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	f.router.ServeHTTP(w, photoRequest(t, "/businesses/"+id+"/photos", owner.ID, "application/pdf"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListCategories_Empty(t *testing.T) {
	f := newFixture(t)
	w := f.do(http.MethodGet, "/categories", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}
