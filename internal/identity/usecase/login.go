package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/artmatch/internal/identity/entity"
	"github.com/shandysiswandi/artmatch/internal/pkg/goerror"
)

type LoginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

type LoginOutput struct {
	AccessToken  string
	RefreshToken string
}

// Login answers an unknown email and a wrong password with the same error,
// after the same amount of key derivation work.
func (s *Usecase) Login(ctx context.Context, in LoginInput) (*LoginOutput, error) {
	ctx, span := s.startSpan(ctx, "Login")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	user, err := s.repoDB.GetUserCredentialByEmail(ctx, in.Email)
	if err != nil && !errors.Is(err, goerror.ErrNotFound) {
		slog.ErrorContext(ctx, "failed to repo get user credential", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	stored := dummyCredential
	if user != nil {
		stored = user.Password
	}

	ok, err := s.verifyPassword(ctx, stored, in.Password)
	if err != nil {
		slog.ErrorContext(ctx, "failed to wait for key derivation slot", "error", err)
		return nil, goerror.NewServer(err)
	}

	if user == nil {
		slog.WarnContext(ctx, "user account not found", "email", in.Email)
		return nil, errInvalidCredentials()
	}
	if !ok {
		slog.WarnContext(ctx, "password user account not match", "user_id", user.ID)
		return nil, errInvalidCredentials()
	}

	return s.issueTokens(ctx, user.ID, user.Email)
}

func (s *Usecase) issueTokens(ctx context.Context, userID int64, email string) (*LoginOutput, error) {
	acToken, err := s.jwt.Generate(userID, email)
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate access jwt token", "user_id", userID, "error", err)
		return nil, goerror.NewServer(err)
	}

	refToken := s.oid.Generate()
	refTokenHash, err := s.hmac.Hash(refToken)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash refresh token", "user_id", userID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := s.repoDB.CreateRefreshToken(ctx, entity.RefreshToken{
		ID:        s.uid.Generate(),
		UserID:    userID,
		Token:     string(refTokenHash),
		ExpiresAt: s.clock.Now().Add(s.cfg.GetDay("modules.identity.refresh_token_ttl_days")),
	}); err != nil {
		slog.ErrorContext(ctx, "failed to repo create refresh token user", "user_id", userID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &LoginOutput{AccessToken: acToken, RefreshToken: refToken}, nil
}
