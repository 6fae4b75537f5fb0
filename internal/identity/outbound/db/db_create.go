package db

import (
	"context"

	"github.com/shandysiswandi/artmatch/internal/identity/entity"
)

func (s *DB) CreateRefreshToken(ctx context.Context, in entity.RefreshToken) (err error) {
	ctx, span := s.startSpan(ctx, "CreateRefreshToken")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx,
		`INSERT INTO identity_refresh_tokens (id, user_id, token, expires_at) VALUES ($1, $2, $3, $4)`,
		in.ID, in.UserID, in.Token, in.ExpiresAt,
	)
	err = s.mapError(err)
	return err
}
