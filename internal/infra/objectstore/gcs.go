// Package objectstore keeps listing photos in Google Cloud Storage.
package objectstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

type GCS struct {
	client  *storage.Client
	bucket  string
	baseURL string
}

// NewGCS connects with application default credentials, or to
// fake-gcs-server when GCS_EMULATOR_HOST is set.
func NewGCS(ctx context.Context, bucket string, opts ...option.ClientOption) (*GCS, error) {
	baseURL := "https://storage.googleapis.com"
	if host := os.Getenv("GCS_EMULATOR_HOST"); host != "" {
		opts = append(opts,
			option.WithEndpoint("http://"+host+"/storage/v1/"),
			option.WithoutAuthentication(),
		)
		baseURL = "http://" + host
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	return &GCS{client: client, bucket: bucket, baseURL: baseURL}, nil
}

// Upload writes r under name and returns its public URL.
func (g *GCS) Upload(ctx context.Context, name, contentType string, r io.Reader) (string, error) {
	w := g.client.Bucket(g.bucket).Object(name).NewWriter(ctx)
	w.ContentType = contentType
	w.CacheControl = "public, max-age=86400"

	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("upload %s: %w", name, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("finalize %s: %w", name, err)
	}
	return g.publicURL(name), nil
}

func (g *GCS) Delete(ctx context.Context, name string) error {
	if err := g.client.Bucket(g.bucket).Object(name).Delete(ctx); err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
		return fmt.Errorf("delete %s: %w", name, err)
	}
	return nil
}

func (g *GCS) Close() error {
	return g.client.Close()
}

func (g *GCS) publicURL(name string) string {
	return g.baseURL + "/" + g.bucket + "/" + (&url.URL{Path: name}).EscapedPath()
}

// ObjectName builds "businesses/<id>/<uuid><ext>" from an upload's filename.
func ObjectName(businessID, uniqueID, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp", ".gif":
	default:
		ext = ""
	}
	return path.Join("businesses", businessID, uniqueID+ext)
}
