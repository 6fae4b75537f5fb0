package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path"

	"github.com/shandysiswandi/artmatch/internal/pkg/goerror"
	"github.com/shandysiswandi/artmatch/internal/pkg/storage"
)

type OpenPhotoOutput struct {
	Body        io.ReadCloser
	ContentType string
	Filename    string
}

// OpenPhoto opens the bytes of a photo owned by the authenticated user.
// Callers must close Body.
func (s *Usecase) OpenPhoto(ctx context.Context, id int64) (*OpenPhotoOutput, error) {
	ctx, span := s.startSpan(ctx, "OpenPhoto")
	defer span.End()

	clm, err := s.authenticated(ctx)
	if err != nil {
		return nil, err
	}

	photo, err := s.ownedPhoto(ctx, id, clm.UserID)
	if err != nil {
		return nil, err
	}

	body, _, err := s.storage.GetObject(ctx, s.bucket(), photo.ObjectKey)
	if errors.Is(err, storage.ErrObjectNotFound) {
		slog.WarnContext(ctx, "photo object missing", "photo_id", photo.ID, "object_key", photo.ObjectKey)
		return nil, errPhotoNotFound()
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to get photo object", "object_key", photo.ObjectKey, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &OpenPhotoOutput{
		Body:        body,
		ContentType: photo.ContentType,
		Filename:    path.Base(photo.ObjectKey),
	}, nil
}
