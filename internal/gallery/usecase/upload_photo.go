package usecase

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/shandysiswandi/artmatch/internal/gallery/entity"
	"github.com/shandysiswandi/artmatch/internal/pkg/goerror"
	"github.com/shandysiswandi/artmatch/internal/pkg/storage"
	"github.com/shandysiswandi/artmatch/internal/shared/event"
)

type UploadPhotoInput struct {
	Data []byte
}

// UploadPhoto stores the image, records it as pending face detection and
// announces it on the photo_uploaded event. The content type is sniffed from
// the bytes, not taken from the client.
func (s *Usecase) UploadPhoto(ctx context.Context, in UploadPhotoInput) (*PhotoOutput, error) {
	ctx, span := s.startSpan(ctx, "UploadPhoto")
	defer span.End()

	clm, err := s.authenticated(ctx)
	if err != nil {
		return nil, err
	}

	if len(in.Data) == 0 {
		return nil, goerror.NewInvalidInput(nil, "file", "file is required")
	}
	if int64(len(in.Data)) > s.maxUploadBytes() {
		return nil, goerror.NewBusiness("File too large", goerror.CodeTooLarge)
	}

	contentType := http.DetectContentType(in.Data)
	ext, ok := allowedImages[contentType]
	if !ok {
		slog.WarnContext(ctx, "rejected photo content type", "content_type", contentType, "user_id", clm.UserID)
		return nil, goerror.NewInvalidInput(nil, "file", "file must be a JPEG, PNG or WebP image")
	}

	photo := entity.Photo{
		ID:          s.uid.Generate(),
		UserID:      clm.UserID,
		ObjectKey:   fmt.Sprintf("%d/%s%s", clm.UserID, s.uuid.Generate(), ext),
		ContentType: contentType,
		Size:        int64(len(in.Data)),
		FaceStatus:  entity.FaceStatusPending,
		UploadedAt:  s.clock.Now(),
	}

	_, err = s.storage.PutObject(ctx, s.bucket(), photo.ObjectKey, bytes.NewReader(in.Data), storage.PutOptions{
		Size:        photo.Size,
		ContentType: photo.ContentType,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to put photo object", "object_key", photo.ObjectKey, "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := s.repoDB.CreatePhoto(ctx, photo); err != nil {
		slog.ErrorContext(ctx, "failed to repo create photo", "user_id", clm.UserID, "error", err)
		if delErr := s.storage.DeleteObject(ctx, s.bucket(), photo.ObjectKey); delErr != nil {
			slog.ErrorContext(ctx, "failed to delete orphan photo object", "object_key", photo.ObjectKey, "error", delErr)
		}
		return nil, goerror.NewServer(err)
	}

	if err := s.repoMsg.PublishPhotoUploaded(ctx, event.PhotoUploadedMessage{
		PhotoID:     photo.ID,
		UserID:      photo.UserID,
		ObjectKey:   photo.ObjectKey,
		ContentType: photo.ContentType,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to publish photo uploaded", "photo_id", photo.ID, "error", err)
	}

	return s.toOutput(ctx, photo), nil
}

func (s *Usecase) toOutput(ctx context.Context, p entity.Photo) *PhotoOutput {
	return &PhotoOutput{
		ID:          p.ID,
		ContentType: p.ContentType,
		Size:        p.Size,
		FaceStatus:  p.FaceStatus,
		UploadedAt:  p.UploadedAt,
		URL:         s.presign(ctx, p.ObjectKey),
	}
}
