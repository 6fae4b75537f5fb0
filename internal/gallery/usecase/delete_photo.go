package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/artmatch/internal/pkg/goerror"
)

type DeletePhotoInput struct {
	ID int64 `validate:"gt=0"`
}

// DeletePhoto removes the row first so a failed object delete leaves an
// unreferenced object rather than a row pointing at nothing.
func (s *Usecase) DeletePhoto(ctx context.Context, in DeletePhotoInput) error {
	ctx, span := s.startSpan(ctx, "DeletePhoto")
	defer span.End()

	clm, err := s.authenticated(ctx)
	if err != nil {
		return err
	}

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	photo, err := s.ownedPhoto(ctx, in.ID, clm.UserID)
	if err != nil {
		return err
	}

	err = s.repoDB.DeletePhoto(ctx, photo.ID, clm.UserID)
	if errors.Is(err, goerror.ErrNotFound) {
		return errPhotoNotFound()
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo delete photo", "photo_id", photo.ID, "error", err)
		return goerror.NewServer(err)
	}

	if err := s.storage.DeleteObject(ctx, s.bucket(), photo.ObjectKey); err != nil {
		slog.ErrorContext(ctx, "failed to delete photo object", "object_key", photo.ObjectKey, "error", err)
	}

	return nil
}
