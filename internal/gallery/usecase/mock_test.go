package usecase

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/shandysiswandi/artmatch/internal/gallery/entity"
	"github.com/shandysiswandi/artmatch/internal/pkg/clock"
	"github.com/shandysiswandi/artmatch/internal/pkg/config"
	"github.com/shandysiswandi/artmatch/internal/pkg/goerror"
	"github.com/shandysiswandi/artmatch/internal/pkg/instrument"
	"github.com/shandysiswandi/artmatch/internal/pkg/jwt"
	"github.com/shandysiswandi/artmatch/internal/pkg/storage"
	"github.com/shandysiswandi/artmatch/internal/pkg/validator"
	"github.com/shandysiswandi/artmatch/internal/shared/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRepoDB struct{ mock.Mock }

func (m *mockRepoDB) CreatePhoto(ctx context.Context, p entity.Photo) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockRepoDB) GetPhoto(ctx context.Context, id int64) (*entity.Photo, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).(*entity.Photo)
	return out, args.Error(1)
}

func (m *mockRepoDB) ListPhotos(ctx context.Context, f entity.PhotoFilter) ([]entity.Photo, int64, error) {
	args := m.Called(ctx, f)
	out, _ := args.Get(0).([]entity.Photo)
	total, _ := args.Get(1).(int64)
	return out, total, args.Error(2)
}

func (m *mockRepoDB) UpdateFaceStatus(ctx context.Context, id int64, status entity.FaceStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *mockRepoDB) DeletePhoto(ctx context.Context, id, userID int64) error {
	return m.Called(ctx, id, userID).Error(0)
}

type mockRepoMessaging struct{ mock.Mock }

func (m *mockRepoMessaging) PublishPhotoUploaded(ctx context.Context, msg event.PhotoUploadedMessage) error {
	return m.Called(ctx, msg).Error(0)
}

type mockFace struct{ mock.Mock }

func (m *mockFace) CheckFace(ctx context.Context, image []byte, filename string) (bool, error) {
	args := m.Called(ctx, image, filename)
	return args.Bool(0), args.Error(1)
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

type seqID struct{ next int64 }

func (s *seqID) Generate() int64 {
	s.next++
	return s.next
}

type fixedUUID string

func (f fixedUUID) Generate() string { return string(f) }

var testNow = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

const testConfig = `
modules:
  gallery:
    bucket: photos
    max_upload_bytes: 64
    presign_expiry_minutes: 15
`

// pngHeader is enough for content sniffing to report image/png.
var pngHeader = []byte("\x89PNG\r\n\x1a\n0000")

type fixture struct {
	uc      *Usecase
	repo    *mockRepoDB
	msg     *mockRepoMessaging
	face    *mockFace
	storage *mockStorage
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte(testConfig))
	require.NoError(t, err)

	v, err := validator.NewV10Validator()
	require.NoError(t, err)

	f := &fixture{
		repo:    &mockRepoDB{},
		msg:     &mockRepoMessaging{},
		face:    &mockFace{},
		storage: &mockStorage{},
	}
	f.uc = New(Dependency{
		RepoDB:        f.repo,
		RepoMessaging: f.msg,
		FaceChecker:   f.face,
		Storage:       f.storage,
		Validator:     v,
		Config:        cfg,
		UID:           &seqID{next: 10},
		UUID:          fixedUUID("0190-uuid"),
		Clock:         clock.Fixed{T: testNow},
		Instrument:    instrument.NewNoop(),
	})

	t.Cleanup(func() {
		f.repo.AssertExpectations(t)
		f.msg.AssertExpectations(t)
		f.face.AssertExpectations(t)
		f.storage.AssertExpectations(t)
	})

	return f
}

func (f *fixture) expectPresign(key string) {
	f.storage.On("PresignGet", mock.Anything, "photos", key, 15*time.Minute).Return("https://cdn/"+key, nil)
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
