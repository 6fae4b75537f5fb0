package storage

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFromDriver_Unknown(t *testing.T) {
	_, err := NewFromDriver(context.Background(), "ftp", FactoryOptions{})
	assert.ErrorIs(t, err, ErrUnknownDriver)
}

func TestNewFromDriver_MinIO(t *testing.T) {
	stg, err := NewFromDriver(context.Background(), " MinIO ", FactoryOptions{
		MinIO: MinIOOptions{Endpoint: "localhost:9000", AccessKey: "ak", SecretKey: "sk", Region: "us-east-1"},
	})
	require.NoError(t, err)
	assert.IsType(t, &MinIOAdapter{}, stg)
	assert.NoError(t, stg.Close())
}

func TestMinIOAdapter_PresignGet(t *testing.T) {
	m, err := NewMinIO(MinIOOptions{Endpoint: "localhost:9000", AccessKey: "ak", SecretKey: "sk", Region: "us-east-1"})
	require.NoError(t, err)

	raw, err := m.PresignGet(context.Background(), "photos", "42/selfie.jpg", 10*time.Minute)
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "/photos/42/selfie.jpg", u.Path)
	assert.Equal(t, "600", u.Query().Get("X-Amz-Expires"))
	assert.NotEmpty(t, u.Query().Get("X-Amz-Signature"))
}

func TestS3Adapter_PresignGet(t *testing.T) {
	s, err := NewS3(context.Background(), S3Options{
		Endpoint:     "http://localhost:4566",
		AccessKey:    "ak",
		SecretKey:    "sk",
		UsePathStyle: true,
	})
	require.NoError(t, err)

	raw, err := s.PresignGet(context.Background(), "results", "7/out.jpg", time.Minute)
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "localhost:4566", u.Host)
	assert.Equal(t, "/results/7/out.jpg", u.Path)
	assert.Equal(t, "60", u.Query().Get("X-Amz-Expires"))
}

func TestGCSAdapter_PresignGetWithoutSigner(t *testing.T) {
	g := &GCSAdapter{}

	_, err := g.PresignGet(context.Background(), "photos", "k", time.Minute)
	assert.ErrorIs(t, err, ErrMissingSigner)
}
