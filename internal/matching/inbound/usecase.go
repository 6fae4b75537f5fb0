package inbound

import (
	"context"

	"github.com/shandysiswandi/artmatch/internal/matching/usecase"
)

type uc interface {
	FindMatch(ctx context.Context, in usecase.FindMatchInput) (*usecase.FindMatchOutput, error)
	SwapFace(ctx context.Context, in usecase.SwapFaceInput) (*usecase.SwapFaceOutput, error)
	IndexArtwork(ctx context.Context, in usecase.IndexArtworkInput) (*usecase.IndexArtworkOutput, error)
}
