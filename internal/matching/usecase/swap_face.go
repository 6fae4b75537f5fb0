package usecase

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/shandysiswandi/artmatch/internal/matching/outbound/ai"
	"github.com/shandysiswandi/artmatch/internal/matching/outbound/artwork"
	"github.com/shandysiswandi/artmatch/internal/pkg/goerror"
	"github.com/shandysiswandi/artmatch/internal/pkg/storage"
)

type SwapFaceInput struct {
	PhotoID int64  `validate:"required,gt=0"`
	MatchID string `validate:"required,matchid"`
	Style   string `validate:"required,slug"`
}

type SwapFaceOutput struct {
	ObjectKey string
	URL       string
}

// SwapFace renders the user's face into the artwork identified by MatchID and
// Style and stores the result in the result bucket.
func (s *Usecase) SwapFace(ctx context.Context, in SwapFaceInput) (*SwapFaceOutput, error) {
	ctx, span := s.startSpan(ctx, "SwapFace")
	defer span.End()

	clm, err := s.authenticated(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		slog.WarnContext(ctx, "invalid payload swap face", "error", err)
		return nil, goerror.NewInvalidInput(err)
	}

	target, err := s.artwork.Resolve(in.MatchID, in.Style)
	if errors.Is(err, artwork.ErrArtworkNotFound) {
		slog.WarnContext(ctx, "artwork not found", "match_id", in.MatchID, "style", in.Style)
		return nil, goerror.NewBusiness("Artwork not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to resolve artwork", "match_id", in.MatchID, "error", err)
		return nil, goerror.NewServer(err)
	}

	image, _, err := s.readPhoto(ctx, in.PhotoID)
	if err != nil {
		return nil, err
	}

	result, err := s.repoAI.SwapFace(ctx, image, target)
	if err != nil {
		slog.ErrorContext(ctx, "failed to ai swap face", "photo_id", in.PhotoID, "match_id", in.MatchID, "error", err)
		return nil, swapError(err)
	}

	bucket := s.cfg.GetString("modules.matching.result_bucket")
	key := strconv.FormatInt(clm.UserID, 10) + "/" + s.uuid.Generate() + ".jpg"

	_, err = s.storage.PutObject(ctx, bucket, key, bytes.NewReader(result), storage.PutOptions{
		Size:        int64(len(result)),
		ContentType: "image/jpeg",
		Metadata:    map[string]string{"match-id": in.MatchID, "style": in.Style},
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to put swap result", "object_key", key, "error", err)
		return nil, goerror.NewServer(err)
	}

	url, err := s.storage.PresignGet(ctx, bucket, key, s.cfg.GetMinute("modules.matching.presign_expiry_minutes"))
	if err != nil {
		slog.ErrorContext(ctx, "failed to presign swap result", "object_key", key, "error", err)
		return nil, goerror.NewServer(err)
	}

	slog.InfoContext(ctx, "face swapped", "photo_id", in.PhotoID, "match_id", in.MatchID, "object_key", key)

	return &SwapFaceOutput{ObjectKey: key, URL: url}, nil
}

// swapError keeps the reason of a rejected image (no face, unreadable file)
// and hides everything else behind a bad gateway.
func swapError(err error) error {
	var serr *ai.StatusError
	if errors.As(err, &serr) && serr.StatusCode >= http.StatusBadRequest && serr.StatusCode < http.StatusInternalServerError {
		msg := serr.Detail
		if msg == "" {
			msg = "Face swap rejected the image"
		}
		return goerror.NewBusiness(msg, goerror.CodeInvalidInput)
	}

	return goerror.NewUpstream(err, "Face swap service unavailable")
}
