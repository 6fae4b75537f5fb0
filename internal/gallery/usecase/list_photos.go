package usecase

import (
	"context"
	"log/slog"

	"github.com/samber/lo"
	"github.com/shandysiswandi/artmatch/internal/gallery/entity"
	"github.com/shandysiswandi/artmatch/internal/pkg/goerror"
)

type ListPhotosInput struct {
	Page int32 `validate:"gte=1,lte=1000000"`
	Size int32 `validate:"gte=1,lte=100"`
}

type ListPhotosOutput struct {
	Photos []PhotoOutput
	Total  int64
	Page   int32
	Size   int32
}

func (s *Usecase) ListPhotos(ctx context.Context, in ListPhotosInput) (*ListPhotosOutput, error) {
	ctx, span := s.startSpan(ctx, "ListPhotos")
	defer span.End()

	clm, err := s.authenticated(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	photos, total, err := s.repoDB.ListPhotos(ctx, entity.PhotoFilter{
		UserID: clm.UserID,
		Limit:  in.Size,
		Offset: (in.Page - 1) * in.Size,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list photos", "user_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &ListPhotosOutput{
		Photos: lo.Map(photos, func(p entity.Photo, _ int) PhotoOutput {
			return *s.toOutput(ctx, p)
		}),
		Total: total,
		Page:  in.Page,
		Size:  in.Size,
	}, nil
}

type GetPhotoInput struct {
	ID int64 `validate:"gt=0"`
}

func (s *Usecase) GetPhoto(ctx context.Context, in GetPhotoInput) (*PhotoOutput, error) {
	ctx, span := s.startSpan(ctx, "GetPhoto")
	defer span.End()

	clm, err := s.authenticated(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	photo, err := s.ownedPhoto(ctx, in.ID, clm.UserID)
	if err != nil {
		return nil, err
	}

	return s.toOutput(ctx, *photo), nil
}
