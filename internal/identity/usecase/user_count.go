package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/artmatch/internal/pkg/goerror"
)

func (s *Usecase) UserCount(ctx context.Context) (int64, error) {
	ctx, span := s.startSpan(ctx, "UserCount")
	defer span.End()

	total, err := s.repoDB.CountUsers(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo count users", "error", err)
		return 0, goerror.NewServer(err)
	}

	return total, nil
}
