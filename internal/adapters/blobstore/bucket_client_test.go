package blobstore

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/omriland/CasaTrack-sub000/internal/contextkeys"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedRequest struct {
	method      string
	path        string
	auth        string
	contentType string
	traceID     string
	body        []byte
}

func bucketServer(t *testing.T, status int, captured *capturedRequest) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.method = r.Method
		captured.path = r.URL.Path
		captured.auth = r.Header.Get("Authorization")
		captured.contentType = r.Header.Get("Content-Type")
		captured.traceID = r.Header.Get("X-Trace-ID")
		captured.body, _ = io.ReadAll(r.Body)
		w.WriteHeader(status)
	}))
}

func TestBucketClient_Upload(t *testing.T) {
	t.Run("puts the object with auth and trace headers", func(t *testing.T) {
		var captured capturedRequest
		srv := bucketServer(t, http.StatusOK, &captured)
		defer srv.Close()

		client, err := NewBucketClient(Config{BaseURL: srv.URL, Bucket: "casatrack", Token: "secret"})
		require.NoError(t, err)

		ctx := contextkeys.ContextWithTraceID(context.Background(), "trace-123")
		err = client.Upload(ctx, "prop-1/photo.jpg", "image/jpeg", []byte("bytes"))
		require.NoError(t, err)

		assert.Equal(t, http.MethodPut, captured.method)
		assert.Equal(t, "/casatrack/prop-1/photo.jpg", captured.path)
		assert.Equal(t, "Bearer secret", captured.auth)
		assert.Equal(t, "image/jpeg", captured.contentType)
		assert.Equal(t, "trace-123", captured.traceID)
		assert.Equal(t, []byte("bytes"), captured.body)
	})

	t.Run("non-2xx status is an error", func(t *testing.T) {
		var captured capturedRequest
		srv := bucketServer(t, http.StatusForbidden, &captured)
		defer srv.Close()

		client, err := NewBucketClient(Config{BaseURL: srv.URL, Bucket: "casatrack"})
		require.NoError(t, err)

		err = client.Upload(context.Background(), "k", "text/plain", []byte("x"))
		assert.ErrorContains(t, err, "403")
	})
}

func TestBucketClient_Delete(t *testing.T) {
	t.Run("404 counts as success", func(t *testing.T) {
		var captured capturedRequest
		srv := bucketServer(t, http.StatusNotFound, &captured)
		defer srv.Close()

		client, err := NewBucketClient(Config{BaseURL: srv.URL, Bucket: "casatrack"})
		require.NoError(t, err)

		assert.NoError(t, client.Delete(context.Background(), "gone.jpg"))
		assert.Equal(t, http.MethodDelete, captured.method)
	})

	t.Run("server errors surface", func(t *testing.T) {
		var captured capturedRequest
		srv := bucketServer(t, http.StatusInternalServerError, &captured)
		defer srv.Close()

		client, err := NewBucketClient(Config{BaseURL: srv.URL, Bucket: "casatrack"})
		require.NoError(t, err)

		assert.Error(t, client.Delete(context.Background(), "k"))
	})
}

func TestBucketClient_PublicURL(t *testing.T) {
	client, err := NewBucketClient(Config{BaseURL: "https://blobs.example.com/", Bucket: "casatrack"})
	require.NoError(t, err)

	t.Run("joins base, bucket and key", func(t *testing.T) {
		assert.Equal(t,
			"https://blobs.example.com/casatrack/prop-1/file.pdf",
			client.PublicURL("prop-1/file.pdf"),
		)
	})

	t.Run("escapes each key segment separately", func(t *testing.T) {
		url := client.PublicURL("prop-1/with space.jpg")
		assert.Equal(t, "https://blobs.example.com/casatrack/prop-1/with%20space.jpg", url)
	})
}

func TestNewBucketClient_RequiresConfig(t *testing.T) {
	_, err := NewBucketClient(Config{Bucket: "casatrack"})
	assert.Error(t, err)

	_, err = NewBucketClient(Config{BaseURL: "https://blobs.example.com"})
	assert.Error(t, err)
}
