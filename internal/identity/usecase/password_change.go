package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/artmatch/internal/pkg/goerror"
)

type PasswordChangeInput struct {
	CurrentPassword string `validate:"required"`
	NewPassword     string `validate:"required,password,nefield=CurrentPassword"`
}

// PasswordChange replaces the stored credential with a freshly salted one and
// signs the user out of every other session.
func (s *Usecase) PasswordChange(ctx context.Context, in PasswordChangeInput) error {
	ctx, span := s.startSpan(ctx, "PasswordChange")
	defer span.End()

	clm, err := s.authenticated(ctx)
	if err != nil {
		return err
	}

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	user, err := s.repoDB.GetUserCredentialByID(ctx, clm.UserID)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "user account not found", "user_id", clm.UserID)
		return goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user credential info", "user_id", clm.UserID, "error", err)
		return goerror.NewServer(err)
	}

	ok, err := s.verifyPassword(ctx, user.Password, in.CurrentPassword)
	if err != nil {
		slog.ErrorContext(ctx, "failed to wait for key derivation slot", "error", err)
		return goerror.NewServer(err)
	}
	if !ok {
		slog.WarnContext(ctx, "current password mismatch", "user_id", user.ID)
		return goerror.NewBusiness("Invalid password", goerror.CodeUnauthorized)
	}

	newHash, err := s.hashPassword(ctx, in.NewPassword)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash new password", "user_id", user.ID, "error", err)
		return goerror.NewServerMessage(err, "Password change failed")
	}

	if err := s.repoDB.ReplaceUserCredential(ctx, user.ID, newHash); err != nil {
		slog.ErrorContext(ctx, "failed to update user password", "user_id", user.ID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
