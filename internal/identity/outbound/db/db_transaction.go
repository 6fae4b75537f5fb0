package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/shandysiswandi/artmatch/internal/identity/entity"
	"github.com/shandysiswandi/artmatch/internal/pkg/goerror"
)

// NewUser stores the user and its credential atomically. A duplicate email
// surfaces as goerror.ErrConflict.
func (s *DB) NewUser(ctx context.Context, user entity.NewUser, hash string) (err error) {
	ctx, span := s.startSpan(ctx, "NewUser")
	defer func() { s.endSpan(span, err) }()

	err = s.withTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx,
			`INSERT INTO identity_users (id, email) VALUES ($1, $2)`,
			user.ID, user.Email,
		); err != nil {
			return err
		}

		_, err := tx.Exec(ctx,
			`INSERT INTO identity_user_credentials (user_id, password) VALUES ($1, $2)`,
			user.ID, hash,
		)
		return err
	})
	return err
}

// ReplaceUserCredential overwrites the stored credential and revokes every
// refresh token of the user.
func (s *DB) ReplaceUserCredential(ctx context.Context, userID int64, hash string) (err error) {
	ctx, span := s.startSpan(ctx, "ReplaceUserCredential")
	defer func() { s.endSpan(span, err) }()

	err = s.withTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`UPDATE identity_user_credentials SET password = $2, updated_at = NOW() WHERE user_id = $1`,
			userID, hash,
		)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return goerror.ErrNotFound
		}

		if _, err := tx.Exec(ctx,
			`UPDATE identity_users SET updated_at = NOW() WHERE id = $1`,
			userID,
		); err != nil {
			return err
		}

		_, err = tx.Exec(ctx,
			`UPDATE identity_refresh_tokens SET revoked = TRUE WHERE user_id = $1 AND revoked = FALSE`,
			userID,
		)
		return err
	})
	return err
}

// RotateRefreshToken revokes the old token, links it to the new one and
// stores the new one. goerror.ErrNotFound means the old token was already
// rotated or revoked concurrently.
func (s *DB) RotateRefreshToken(ctx context.Context, ro entity.RotateRefreshToken) (err error) {
	ctx, span := s.startSpan(ctx, "RotateRefreshToken")
	defer func() { s.endSpan(span, err) }()

	err = s.withTx(ctx, func(tx pgx.Tx) error {
		// the new row must exist before the old one can reference it
		if _, err := tx.Exec(ctx,
			`INSERT INTO identity_refresh_tokens (id, user_id, token, expires_at) VALUES ($1, $2, $3, $4)`,
			ro.NewID, ro.UserID, ro.NewToken, ro.NewExpiresAt,
		); err != nil {
			return err
		}

		tag, err := tx.Exec(ctx,
			`UPDATE identity_refresh_tokens SET revoked = TRUE, replaced_by_token_id = $1
			WHERE id = $2 AND revoked = FALSE`,
			ro.NewID, ro.OldID,
		)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return goerror.ErrNotFound
		}

		return nil
	})
	return err
}
