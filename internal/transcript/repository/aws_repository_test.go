package repository

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/amankumarsingh77/yt-transcriber/internal/transcript"
	awsclient "github.com/amankumarsingh77/yt-transcriber/pkg/db/aws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAwsRepositoryArchive verifies transcripts are PUT under the bucket and a GET link is presigned.
func TestAwsRepositoryArchive(t *testing.T) {
	var (
		mu     sync.Mutex
		method string
		path   string
		body   string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		mu.Lock()
		method, path, body = r.Method, r.URL.Path, string(b)
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client, presign, err := awsclient.NewAWSClient(srv.URL, "us-east-1", "key", "secret")
	require.NoError(t, err)
	repo := NewAwsRepository(client, presign, "transcripts", 10*time.Minute)

	key := transcript.TranscriptKey("dQw4w9WgXcQ", "job-1")
	assert.Equal(t, "transcripts/dQw4w9WgXcQ/job-1.txt", key)

	require.NoError(t, repo.PutTranscript(context.Background(), key, "never gonna give you up"))
	mu.Lock()
	assert.Equal(t, http.MethodPut, method)
	assert.Equal(t, "/transcripts/"+key, path)
	assert.Contains(t, body, "never gonna give you up")
	mu.Unlock()

	url, err := repo.PresignTranscript(context.Background(), key)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, srv.URL+"/transcripts/"+key))
	assert.Contains(t, url, "X-Amz-Signature")
}
