package db

import (
	"context"
)

// RevokeRefreshToken revokes token only when it belongs to userID.
func (s *DB) RevokeRefreshToken(ctx context.Context, userID int64, token string) (err error) {
	ctx, span := s.startSpan(ctx, "RevokeRefreshToken")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx,
		`UPDATE identity_refresh_tokens SET revoked = TRUE WHERE token = $1 AND user_id = $2 AND revoked = FALSE`,
		token, userID,
	)
	err = s.mapError(err)
	return err
}

func (s *DB) RevokeAllRefreshToken(ctx context.Context, userID int64) (err error) {
	ctx, span := s.startSpan(ctx, "RevokeAllRefreshToken")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx,
		`UPDATE identity_refresh_tokens SET revoked = TRUE WHERE user_id = $1 AND revoked = FALSE`,
		userID,
	)
	err = s.mapError(err)
	return err
}
