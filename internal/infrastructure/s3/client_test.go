package s3infra

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/cp-portal/internal/config"
	"github.com/cp-portal/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBucket serves path-style PUT and GET requests from memory.
type fakeBucket struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func (b *fakeBucket) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	switch r.Method {
	case http.MethodPut:
		body, _ := io.ReadAll(r.Body)
		b.objects[r.URL.Path] = body
		w.Header().Set("ETag", `"etag"`)
		w.WriteHeader(http.StatusOK)
	case http.MethodGet:
		body, ok := b.objects[r.URL.Path]
		if !ok {
			w.Header().Set("Content-Type", "application/xml")
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `<Error><Code>NoSuchKey</Code><Message>missing</Message></Error>`)
			return
		}
		_, _ = w.Write(body)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func newTestStore(t *testing.T) (*Store, *fakeBucket) {
	t.Helper()
	bucket := &fakeBucket{objects: map[string][]byte{}}
	srv := httptest.NewServer(bucket)
	t.Cleanup(srv.Close)

	awsCfg := aws.Config{
		Region:      "us-east-1",
		Credentials: credentials.NewStaticCredentialsProvider("test", "test", ""),
	}
	return NewStore(NewClient(awsCfg, &config.Config{AWSEndpointURL: srv.URL}), "kb"), bucket
}

func TestStore_UploadThenDownload(t *testing.T) {
	store, bucket := newTestStore(t)
	ctx := context.Background()

	uri, err := store.Upload(ctx, "knowledge/base.json", bytes.NewReader([]byte(`[]`)), "application/json")
	require.NoError(t, err)
	assert.Equal(t, "s3://kb/knowledge/base.json", uri)
	assert.Contains(t, bucket.objects, "/kb/knowledge/base.json")

	rc, err := store.Download(ctx, "knowledge/base.json")
	require.NoError(t, err)
	defer rc.Close()
	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(body))
}

func TestStore_DownloadMissing(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Download(context.Background(), "nope.json")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
