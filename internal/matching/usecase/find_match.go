package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/artmatch/internal/matching/entity"
	"github.com/shandysiswandi/artmatch/internal/matching/outbound/ai"
	"github.com/shandysiswandi/artmatch/internal/pkg/goerror"
)

type FindMatchInput struct {
	PhotoID int64 `validate:"required,gt=0"`
}

type FindMatchOutput struct {
	MatchID            string
	Category           string
	SimilarityDistance float64
	Artwork            entity.Artwork
}

// FindMatch looks up the artwork that resembles one of the user's photos.
func (s *Usecase) FindMatch(ctx context.Context, in FindMatchInput) (*FindMatchOutput, error) {
	ctx, span := s.startSpan(ctx, "FindMatch")
	defer span.End()

	if _, err := s.authenticated(ctx); err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		slog.WarnContext(ctx, "invalid payload find match", "error", err)
		return nil, goerror.NewInvalidInput(err)
	}

	image, filename, err := s.readPhoto(ctx, in.PhotoID)
	if err != nil {
		return nil, err
	}

	match, err := s.repoAI.FindMatch(ctx, image, filename)
	if errors.Is(err, ai.ErrNoMatch) {
		slog.InfoContext(ctx, "no artwork matched photo", "photo_id", in.PhotoID)
		return nil, goerror.NewBusiness("No matching artwork found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to ai find match", "photo_id", in.PhotoID, "error", err)
		return nil, goerror.NewUpstream(err, "Matching service unavailable")
	}

	slog.InfoContext(ctx, "artwork matched", "photo_id", in.PhotoID, "match_id", match.MatchID,
		"similarity_distance", match.SimilarityDistance)

	return &FindMatchOutput{
		MatchID:            match.MatchID,
		Category:           match.Category,
		SimilarityDistance: match.SimilarityDistance,
		Artwork:            match.Artwork,
	}, nil
}
