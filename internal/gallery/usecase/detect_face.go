package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path"

	"github.com/shandysiswandi/artmatch/internal/gallery/entity"
	"github.com/shandysiswandi/artmatch/internal/pkg/goerror"
	"github.com/shandysiswandi/artmatch/internal/pkg/storage"
)

type DetectFaceInput struct {
	PhotoID   int64  `validate:"required,gt=0"`
	UserID    int64  `validate:"required,gt=0"`
	ObjectKey string `validate:"required"`
}

// DetectFace records whether the AI service finds a face in an uploaded photo.
// Photos deleted before the event arrives are skipped. An AI failure marks the
// photo failed rather than leaving it pending.
func (s *Usecase) DetectFace(ctx context.Context, in DetectFaceInput) error {
	ctx, span := s.startSpan(ctx, "DetectFace")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		slog.ErrorContext(ctx, "invalid photo uploaded event", "error", err)
		return nil
	}

	body, _, err := s.storage.GetObject(ctx, s.bucket(), in.ObjectKey)
	if errors.Is(err, storage.ErrObjectNotFound) {
		slog.WarnContext(ctx, "photo object gone before face detection", "photo_id", in.PhotoID)
		return nil
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to get photo object", "object_key", in.ObjectKey, "error", err)
		return err
	}
	defer body.Close()

	image, err := io.ReadAll(io.LimitReader(body, s.maxUploadBytes()))
	if err != nil {
		slog.ErrorContext(ctx, "failed to read photo object", "object_key", in.ObjectKey, "error", err)
		return err
	}

	status := entity.FaceStatusNotDetected
	found, err := s.face.CheckFace(ctx, image, path.Base(in.ObjectKey))
	switch {
	case err != nil:
		slog.ErrorContext(ctx, "failed to check face", "photo_id", in.PhotoID, "error", err)
		status = entity.FaceStatusFailed
	case found:
		status = entity.FaceStatusDetected
	}

	err = s.repoDB.UpdateFaceStatus(ctx, in.PhotoID, status)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "photo deleted during face detection", "photo_id", in.PhotoID)
		return nil
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo update face status", "photo_id", in.PhotoID, "error", err)
		return err
	}

	slog.InfoContext(ctx, "face detection finished", "photo_id", in.PhotoID, "face_status", status.String())

	return nil
}
