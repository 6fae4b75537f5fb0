package usecase

import (
	"context"

	"github.com/shandysiswandi/artmatch/internal/identity/entity"
	"github.com/shandysiswandi/artmatch/internal/pkg/clock"
	"github.com/shandysiswandi/artmatch/internal/pkg/config"
	"github.com/shandysiswandi/artmatch/internal/pkg/goerror"
	"github.com/shandysiswandi/artmatch/internal/pkg/hash"
	"github.com/shandysiswandi/artmatch/internal/pkg/idempotency"
	"github.com/shandysiswandi/artmatch/internal/pkg/instrument"
	"github.com/shandysiswandi/artmatch/internal/pkg/jwt"
	"github.com/shandysiswandi/artmatch/internal/pkg/uid"
	"github.com/shandysiswandi/artmatch/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/semaphore"
)

// dummyCredential is a well-formed stored value that matches no password.
// Login verifies against it when the email is unknown so both failure paths
// pay for one key derivation.
const dummyCredential = "pVkw4qEExXDEkGZG+KztgQB29XxLoj1BwlXpjxz+FPkuueGDGNQ1a38t/c5e+KMe"

const defaultMaxConcurrentKDF = 4

type repoDB interface {
	GetUserCredentialByEmail(ctx context.Context, email string) (*entity.UserCredentialInfo, error)
	GetUserCredentialByID(ctx context.Context, id int64) (*entity.UserCredentialInfo, error)
	GetUserByID(ctx context.Context, id int64) (*entity.User, error)
	GetUserRefreshToken(ctx context.Context, token string) (*entity.UserRefreshToken, error)
	ExistsUserByEmail(ctx context.Context, email string) (bool, error)
	CountUsers(ctx context.Context) (int64, error)

	CreateRefreshToken(ctx context.Context, in entity.RefreshToken) error
	RevokeRefreshToken(ctx context.Context, userID int64, token string) error
	RevokeAllRefreshToken(ctx context.Context, userID int64) error

	NewUser(ctx context.Context, user entity.NewUser, hash string) error
	ReplaceUserCredential(ctx context.Context, userID int64, hash string) error
	RotateRefreshToken(ctx context.Context, ro entity.RotateRefreshToken) error
}

type Usecase struct {
	repoDB    repoDB
	idemp     idempotency.Idempotency
	validator validator.Validator
	cfg       config.Config
	hmac      hash.Hash
	argon2id  hash.Hash
	uid       uid.NumberID
	oid       uid.StringID
	clock     clock.Clocker
	jwt       jwt.JWT
	ins       instrument.Instrumentation
	kdf       *semaphore.Weighted
}

type Dependency struct {
	RepoDB      repoDB
	Idempotency idempotency.Idempotency
	Validator   validator.Validator
	Config      config.Config
	HMAC        hash.Hash
	Argon2ID    hash.Hash
	UID         uid.NumberID
	OID         uid.StringID
	Clock       clock.Clocker
	JWT         jwt.JWT
	Instrument  instrument.Instrumentation
	// MaxConcurrentKDF bounds simultaneous Argon2id derivations, each of
	// which holds hash.Argon2idMemory KiB.
	MaxConcurrentKDF int
}

func New(dep Dependency) *Usecase {
	maxKDF := dep.MaxConcurrentKDF
	if maxKDF <= 0 {
		maxKDF = defaultMaxConcurrentKDF
	}

	return &Usecase{
		repoDB:    dep.RepoDB,
		idemp:     dep.Idempotency,
		validator: dep.Validator,
		cfg:       dep.Config,
		hmac:      dep.HMAC,
		argon2id:  dep.Argon2ID,
		uid:       dep.UID,
		oid:       dep.OID,
		clock:     dep.Clock,
		jwt:       dep.JWT,
		ins:       dep.Instrument,
		kdf:       semaphore.NewWeighted(int64(maxKDF)),
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("identity.usecase").Start(ctx, name)
}

func (s *Usecase) hashPassword(ctx context.Context, password string) (string, error) {
	if err := s.kdf.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer s.kdf.Release(1)

	hashed, err := s.argon2id.Hash(password)
	if err != nil {
		return "", err
	}

	return string(hashed), nil
}

func (s *Usecase) verifyPassword(ctx context.Context, stored, password string) (bool, error) {
	if err := s.kdf.Acquire(ctx, 1); err != nil {
		return false, err
	}
	defer s.kdf.Release(1)

	return s.argon2id.Verify(stored, password), nil
}

func (s *Usecase) authenticated(ctx context.Context) (*jwt.Claims, error) {
	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	return clm, nil
}

func errInvalidCredentials() error {
	return goerror.NewBusiness("Invalid email or password", goerror.CodeUnauthorized)
}

func errInvalidRefreshToken() error {
	return goerror.NewBusiness("Invalid or expired refresh token", goerror.CodeUnauthorized)
}
