package blobstore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/omriland/CasaTrack-sub000/internal/contextkeys"
	"github.com/omriland/CasaTrack-sub000/internal/core/port"
)

// BucketClient talks to the hosted object-store over its HTTP API.
// Objects live under "{baseURL}/{bucket}/{key}" and are publicly
// readable; writes carry a bearer token.
type BucketClient struct {
	baseURL    string
	bucket     string
	token      string
	httpClient *http.Client
}

// Config holds the bucket connection settings.
type Config struct {
	BaseURL string
	Bucket  string
	Token   string
}

// NewBucketClient creates the client.
func NewBucketClient(cfg Config) (*BucketClient, error) {
	if cfg.BaseURL == "" || cfg.Bucket == "" {
		return nil, fmt.Errorf("blob store base URL and bucket are required")
	}
	return &BucketClient{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		bucket:     cfg.Bucket,
		token:      cfg.Token,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}, nil
}

// doRequest builds a request with the trace and auth headers set.
func (c *BucketClient) doRequest(ctx context.Context, method, objectURL, contentType string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, objectURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if traceID := contextkeys.TraceIDFromContext(ctx); traceID != "" {
		req.Header.Set("X-Trace-ID", traceID)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	return c.httpClient.Do(req)
}

// Upload stores the object under the given key, overwriting any
// existing content.
func (c *BucketClient) Upload(ctx context.Context, key, contentType string, data []byte) error {
	clientLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "BucketClient",
		"key":       key,
		"size":      len(data),
	})

	resp, err := c.doRequest(ctx, http.MethodPut, c.objectURL(key), contentType, bytes.NewReader(data))
	if err != nil {
		clientLogger.Error("Failed to perform upload request", err, nil)
		return fmt.Errorf("blob upload %s: %w", key, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		clientLogger.Warn("Bucket rejected upload", port.Fields{"status": resp.StatusCode})
		return fmt.Errorf("blob upload %s: unexpected status %d", key, resp.StatusCode)
	}
	return nil
}

// Delete removes the object. A missing object is not an error; the
// desired end state is the same.
func (c *BucketClient) Delete(ctx context.Context, key string) error {
	resp, err := c.doRequest(ctx, http.MethodDelete, c.objectURL(key), "", nil)
	if err != nil {
		return fmt.Errorf("blob delete %s: %w", key, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound && (resp.StatusCode < 200 || resp.StatusCode >= 300) {
		return fmt.Errorf("blob delete %s: unexpected status %d", key, resp.StatusCode)
	}
	return nil
}

// PublicURL returns the URL clients fetch the blob from.
func (c *BucketClient) PublicURL(key string) string {
	return c.objectURL(key)
}

func (c *BucketClient) objectURL(key string) string {
	// Keys contain a slash between property id and file name; escape
	// each segment separately so the path structure survives.
	segments := strings.Split(key, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return fmt.Sprintf("%s/%s/%s", c.baseURL, c.bucket, strings.Join(segments, "/"))
}
