package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/artmatch/internal/matching/entity"
	"github.com/shandysiswandi/artmatch/internal/pkg/goerror"
)

type IndexArtworkInput struct {
	Name     string `validate:"required,matchid"`
	Category string `validate:"required,slug"`
	Style    string `validate:"required,slug"`
	Author   string `validate:"required"`
	Filename string
	Image    []byte
}

type IndexArtworkOutput struct {
	ID             string
	CollectionSize int64
}

// IndexArtwork adds an artwork to the AI collection used by FindMatch.
func (s *Usecase) IndexArtwork(ctx context.Context, in IndexArtworkInput) (*IndexArtworkOutput, error) {
	ctx, span := s.startSpan(ctx, "IndexArtwork")
	defer span.End()

	if _, err := s.authenticated(ctx); err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		slog.WarnContext(ctx, "invalid payload index artwork", "error", err)
		return nil, goerror.NewInvalidInput(err)
	}
	if len(in.Image) == 0 {
		return nil, goerror.NewInvalidInput(nil, "file", "file is required")
	}
	if int64(len(in.Image)) > s.maxImageBytes() {
		return nil, goerror.NewBusiness("File too large", goerror.CodeTooLarge)
	}

	filename := in.Filename
	if filename == "" {
		filename = in.Name + ".jpg"
	}

	res, err := s.repoAI.IndexArtwork(ctx, entity.Artwork{
		Name:     in.Name,
		Category: in.Category,
		Style:    in.Style,
		Author:   in.Author,
		Filename: filename,
	}, in.Image)
	if err != nil {
		slog.ErrorContext(ctx, "failed to ai index artwork", "name", in.Name, "error", err)
		return nil, goerror.NewUpstream(err, "Matching service unavailable")
	}

	slog.InfoContext(ctx, "artwork indexed", "name", in.Name, "collection_size", res.CollectionSize)

	return &IndexArtworkOutput{ID: res.ID, CollectionSize: res.CollectionSize}, nil
}
