package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shandysiswandi/artmatch/internal/identity/entity"
	"github.com/shandysiswandi/artmatch/internal/pkg/clock"
	"github.com/shandysiswandi/artmatch/internal/pkg/config"
	"github.com/shandysiswandi/artmatch/internal/pkg/hash"
	"github.com/shandysiswandi/artmatch/internal/pkg/idempotency"
	"github.com/shandysiswandi/artmatch/internal/pkg/instrument"
	"github.com/shandysiswandi/artmatch/internal/pkg/jwt"
	"github.com/shandysiswandi/artmatch/internal/pkg/validator"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRepoDB struct{ mock.Mock }

func (m *mockRepoDB) GetUserCredentialByEmail(ctx context.Context, email string) (*entity.UserCredentialInfo, error) {
	args := m.Called(ctx, email)
	out, _ := args.Get(0).(*entity.UserCredentialInfo)
	return out, args.Error(1)
}

func (m *mockRepoDB) GetUserCredentialByID(ctx context.Context, id int64) (*entity.UserCredentialInfo, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).(*entity.UserCredentialInfo)
	return out, args.Error(1)
}

func (m *mockRepoDB) GetUserByID(ctx context.Context, id int64) (*entity.User, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).(*entity.User)
	return out, args.Error(1)
}

func (m *mockRepoDB) GetUserRefreshToken(ctx context.Context, token string) (*entity.UserRefreshToken, error) {
	args := m.Called(ctx, token)
	out, _ := args.Get(0).(*entity.UserRefreshToken)
	return out, args.Error(1)
}

func (m *mockRepoDB) ExistsUserByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockRepoDB) CountUsers(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	total, _ := args.Get(0).(int64)
	return total, args.Error(1)
}

func (m *mockRepoDB) CreateRefreshToken(ctx context.Context, in entity.RefreshToken) error {
	return m.Called(ctx, in).Error(0)
}

func (m *mockRepoDB) RevokeRefreshToken(ctx context.Context, userID int64, token string) error {
	return m.Called(ctx, userID, token).Error(0)
}

func (m *mockRepoDB) RevokeAllRefreshToken(ctx context.Context, userID int64) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *mockRepoDB) NewUser(ctx context.Context, user entity.NewUser, hash string) error {
	return m.Called(ctx, user, hash).Error(0)
}

func (m *mockRepoDB) ReplaceUserCredential(ctx context.Context, userID int64, hash string) error {
	return m.Called(ctx, userID, hash).Error(0)
}

func (m *mockRepoDB) RotateRefreshToken(ctx context.Context, ro entity.RotateRefreshToken) error {
	return m.Called(ctx, ro).Error(0)
}

type mockHash struct{ mock.Mock }

func (m *mockHash) Hash(str string) ([]byte, error) {
	args := m.Called(str)
	out, _ := args.Get(0).([]byte)
	return out, args.Error(1)
}

func (m *mockHash) Verify(hashed, str string) bool {
	return m.Called(hashed, str).Bool(0)
}

type fakeIdempotency struct {
	err  error
	keys []string
}

func (f *fakeIdempotency) Exec(ctx context.Context, key string, fn func(context.Context) error, _ ...idempotency.Option) error {
	f.keys = append(f.keys, key)
	if f.err != nil {
		return f.err
	}
	return fn(ctx)
}

type stubJWT struct{ err error }

func (s stubJWT) Generate(uid int64, email string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return fmt.Sprintf("access-%d-%s", uid, email), nil
}

func (stubJWT) Verify(string) (jwt.Claims, error) { return jwt.Claims{}, nil }

type seqID struct{ next int64 }

func (s *seqID) Generate() int64 {
	s.next++
	return s.next
}

type seqToken struct{ next int }

func (s *seqToken) Generate() string {
	s.next++
	return fmt.Sprintf("refresh-%d", s.next)
}

var testNow = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

const testConfig = `
modules:
  identity:
    refresh_token_ttl_days: 7
    register_lock_seconds: 30
`

type fixture struct {
	uc       *Usecase
	repo     *mockRepoDB
	argon2id *mockHash
	hmac     hash.Hash
	idemp    *fakeIdempotency
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte(testConfig))
	require.NoError(t, err)

	v, err := validator.NewV10Validator()
	require.NoError(t, err)

	f := &fixture{
		repo:     &mockRepoDB{},
		argon2id: &mockHash{},
		hmac:     hash.NewHMACSHA256("test-secret"),
		idemp:    &fakeIdempotency{},
	}
	f.uc = New(Dependency{
		RepoDB:      f.repo,
		Idempotency: f.idemp,
		Validator:   v,
		Config:      cfg,
		HMAC:        f.hmac,
		Argon2ID:    f.argon2id,
		UID:         &seqID{next: 100},
		OID:         &seqToken{},
		Clock:       clock.Fixed{T: testNow},
		JWT:         stubJWT{},
		Instrument:  instrument.NewNoop(),
	})

	t.Cleanup(func() {
		f.repo.AssertExpectations(t)
		f.argon2id.AssertExpectations(t)
	})

	return f
}

func (f *fixture) hmacOf(s string) string {
	out, _ := f.hmac.Hash(s)
	return string(out)
}

func authCtx(userID int64, email string) context.Context {
	return jwt.SetAuth(context.Background(), jwt.Claims{UserID: userID, UserEmail: email})
}
