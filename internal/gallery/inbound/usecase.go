package inbound

import (
	"context"

	"github.com/shandysiswandi/artmatch/internal/gallery/usecase"
)

type ucConsumer interface {
	DetectFace(ctx context.Context, in usecase.DetectFaceInput) error
}

type uc interface {
	UploadPhoto(ctx context.Context, in usecase.UploadPhotoInput) (*usecase.PhotoOutput, error)
	ListPhotos(ctx context.Context, in usecase.ListPhotosInput) (*usecase.ListPhotosOutput, error)
	GetPhoto(ctx context.Context, in usecase.GetPhotoInput) (*usecase.PhotoOutput, error)
	DeletePhoto(ctx context.Context, in usecase.DeletePhotoInput) error
}
