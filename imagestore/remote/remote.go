// Package remote stores uploaded images on a stowry object-store server.
// Writes and deletes go through presigned URLs from the stowry-go SDK; the
// returned image URLs are fully qualified and rely on the server being
// configured for public reads.
package remote

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	stowry "github.com/sagarc03/stowry-go"

	"github.com/bestemiy/inkstudio"
)

// presignTTL is how long a presigned request stays valid, in seconds.
const presignTTL = 900

const defaultKeyPrefix = "/uploads"

// Config points the store at a stowry server.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string

	// KeyPrefix namespaces this site's objects on a shared server.
	// Defaults to "/uploads".
	KeyPrefix string

	// HTTPClient overrides the default 30s-timeout client, mainly for
	// tests.
	HTTPClient *http.Client
}

// Store is the remote image backend.
type Store struct {
	client     *stowry.Client
	httpClient *http.Client
	endpoint   string
	prefix     string
}

// New creates a Store for the given endpoint and credentials.
func New(cfg Config) *Store {
	endpoint := strings.TrimRight(cfg.Endpoint, "/")

	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	if !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}
	prefix = strings.TrimRight(prefix, "/")

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	return &Store{
		client:     stowry.NewClient(endpoint, cfg.AccessKey, cfg.SecretKey),
		httpClient: httpClient,
		endpoint:   endpoint,
		prefix:     prefix,
	}
}

// Upload PUTs content to a freshly named key and returns the
// fully-qualified URL the object is served from.
func (s *Store) Upload(ctx context.Context, filename, contentType string, content io.Reader) (string, error) {
	key := s.prefix + "/" + uuid.New().String() + extension(filename)

	presignURL := s.client.PresignPut(key, presignTTL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, presignURL, content)
	if err != nil {
		return "", fmt.Errorf("remote upload: create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("remote upload: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("remote upload: %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	return s.endpoint + key, nil
}

// Delete issues a presigned DELETE for the object behind url. Unlike the
// local backend, a not-found response propagates as an error.
func (s *Store) Delete(ctx context.Context, url string) error {
	key := strings.TrimPrefix(url, s.endpoint)
	if key == url || !strings.HasPrefix(key, "/") {
		return fmt.Errorf("remote delete: %w: url %q is not on this store", inkstudio.ErrInvalidInput, url)
	}

	presignURL := s.client.PresignDelete(key, presignTTL)

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, presignURL, nil)
	if err != nil {
		return fmt.Errorf("remote delete: create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("remote delete: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("remote delete: %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	return nil
}

func extension(filename string) string {
	ext := filepath.Ext(filepath.Base(filename))
	if ext == "" || ext == "." {
		return ".png"
	}
	return ext
}
