package usecase

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	gallery "github.com/shandysiswandi/artmatch/internal/gallery/usecase"
	"github.com/shandysiswandi/artmatch/internal/matching/entity"
	"github.com/shandysiswandi/artmatch/internal/pkg/config"
	"github.com/shandysiswandi/artmatch/internal/pkg/goerror"
	"github.com/shandysiswandi/artmatch/internal/pkg/instrument"
	"github.com/shandysiswandi/artmatch/internal/pkg/jwt"
	"github.com/shandysiswandi/artmatch/internal/pkg/storage"
	"github.com/shandysiswandi/artmatch/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRepoAI struct{ mock.Mock }

func (m *mockRepoAI) FindMatch(ctx context.Context, image []byte, filename string) (*entity.Match, error) {
	args := m.Called(ctx, image, filename)
	out, _ := args.Get(0).(*entity.Match)
	return out, args.Error(1)
}

func (m *mockRepoAI) SwapFace(ctx context.Context, image []byte, targetPath string) ([]byte, error) {
	args := m.Called(ctx, image, targetPath)
	out, _ := args.Get(0).([]byte)
	return out, args.Error(1)
}

func (m *mockRepoAI) IndexArtwork(ctx context.Context, art entity.Artwork, image []byte) (*entity.IndexResult, error) {
	args := m.Called(ctx, art, image)
	out, _ := args.Get(0).(*entity.IndexResult)
	return out, args.Error(1)
}

type mockResolver struct{ mock.Mock }

func (m *mockResolver) Resolve(matchID, style string) (string, error) {
	args := m.Called(matchID, style)
	return args.String(0), args.Error(1)
}

type mockPhotos struct{ mock.Mock }

func (m *mockPhotos) OpenPhoto(ctx context.Context, id int64) (*gallery.OpenPhotoOutput, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).(*gallery.OpenPhotoOutput)
	return out, args.Error(1)
}

type mockStorage struct{ mock.Mock }

func (m *mockStorage) Close() error { return nil }

func (m *mockStorage) EnsureBucket(ctx context.Context, bucket string) error {
	return m.Called(ctx, bucket).Error(0)
}

func (m *mockStorage) PutObject(ctx context.Context, bucket, key string, r io.Reader, opts storage.PutOptions) (storage.ObjectInfo, error) {
	body, _ := io.ReadAll(r)
	args := m.Called(ctx, bucket, key, body, opts)
	out, _ := args.Get(0).(storage.ObjectInfo)
	return out, args.Error(1)
}

func (m *mockStorage) GetObject(ctx context.Context, bucket, key string) (io.ReadCloser, storage.ObjectInfo, error) {
	args := m.Called(ctx, bucket, key)
	out, _ := args.Get(0).(io.ReadCloser)
	return out, storage.ObjectInfo{}, args.Error(1)
}

func (m *mockStorage) DeleteObject(ctx context.Context, bucket, key string) error {
	return m.Called(ctx, bucket, key).Error(0)
}

func (m *mockStorage) PresignGet(ctx context.Context, bucket, key string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, bucket, key, expiry)
	return args.String(0), args.Error(1)
}

type fixedUUID string

func (f fixedUUID) Generate() string { return string(f) }

const testConfig = `
modules:
  matching:
    result_bucket: results
    max_image_bytes: 16
    presign_expiry_minutes: 30
`

type fixture struct {
	uc       *Usecase
	ai       *mockRepoAI
	resolver *mockResolver
	photos   *mockPhotos
	storage  *mockStorage
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte(testConfig))
	require.NoError(t, err)

	v, err := validator.NewV10Validator()
	require.NoError(t, err)

	f := &fixture{
		ai:       &mockRepoAI{},
		resolver: &mockResolver{},
		photos:   &mockPhotos{},
		storage:  &mockStorage{},
	}
	f.uc = New(Dependency{
		RepoAI:     f.ai,
		Artwork:    f.resolver,
		Photos:     f.photos,
		Storage:    f.storage,
		Validator:  v,
		Config:     cfg,
		UUID:       fixedUUID("0190-uuid"),
		Instrument: instrument.NewNoop(),
	})

	t.Cleanup(func() {
		f.ai.AssertExpectations(t)
		f.resolver.AssertExpectations(t)
		f.photos.AssertExpectations(t)
		f.storage.AssertExpectations(t)
	})

	return f
}

func (f *fixture) expectPhoto(id int64, data string) {
	f.photos.On("OpenPhoto", mock.Anything, id).Return(&gallery.OpenPhotoOutput{
		Body:        io.NopCloser(strings.NewReader(data)),
		ContentType: "image/jpeg",
		Filename:    "selfie.jpg",
	}, nil)
}

func authCtx(userID int64) context.Context {
	return jwt.SetAuth(context.Background(), jwt.Claims{UserID: userID, UserEmail: "ada@example.com"})
}

func requireCode(t *testing.T, err error, code goerror.Code, msg string) {
	t.Helper()
	var gerr *goerror.Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, code, gerr.Code())
	if msg != "" {
		assert.Equal(t, msg, gerr.Msg())
	}
}
