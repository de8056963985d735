package storage

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(endpoint string) *S3Storage {
	client := s3.New(s3.Options{
		Region:       "eu-west-3",
		Credentials:  credentials.NewStaticCredentialsProvider("access", "secret", ""),
		BaseEndpoint: aws.String(endpoint),
		UsePathStyle: true,
	})
	return &S3Storage{
		client:        client,
		presignClient: s3.NewPresignClient(client),
		bucket:        "dealmarket",
	}
}

func TestS3Storage_PresignPut(t *testing.T) {
	s := newTestStorage("http://minio.local:9000")

	raw, err := s.PresignPut(context.Background(), "deals/panier_1700000000000.png", 15*time.Minute)
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "minio.local:9000", u.Host)
	assert.Equal(t, "/dealmarket/deals/panier_1700000000000.png", u.Path)
	assert.Equal(t, "900", u.Query().Get("X-Amz-Expires"))
	assert.NotEmpty(t, u.Query().Get("X-Amz-Signature"))
}

func TestS3Storage_PresignGet(t *testing.T) {
	s := newTestStorage("http://minio.local:9000")

	raw, err := s.PresignGet(context.Background(), "utilisateurs/moi_1700000000000.jpg", time.Hour)
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "/dealmarket/utilisateurs/moi_1700000000000.jpg", u.Path)
	assert.Equal(t, "3600", u.Query().Get("X-Amz-Expires"))
}

func TestS3Storage_EnsureBucketCreatesMissingBucket(t *testing.T) {
	var mu sync.Mutex
	var calls []string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls = append(calls, r.Method)
		mu.Unlock()

		if r.Method == http.MethodHead {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	s := newTestStorage(server.URL)

	err := s.ensureBucket(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{http.MethodHead, http.MethodPut}, calls)
}
