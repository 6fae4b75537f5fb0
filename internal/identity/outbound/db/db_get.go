package db

import (
	"context"

	"github.com/shandysiswandi/artmatch/internal/identity/entity"
)

func (s *DB) GetUserCredentialByEmail(ctx context.Context, email string) (_ *entity.UserCredentialInfo, err error) {
	ctx, span := s.startSpan(ctx, "GetUserCredentialByEmail")
	defer func() { s.endSpan(span, err) }()

	const q = `SELECT u.id, u.email, c.password
		FROM identity_users u
		JOIN identity_user_credentials c ON c.user_id = u.id
		WHERE u.email = $1`

	var out entity.UserCredentialInfo
	if err := s.conn.QueryRow(ctx, q, email).Scan(&out.ID, &out.Email, &out.Password); err != nil {
		return nil, s.mapError(err)
	}

	return &out, nil
}

func (s *DB) GetUserCredentialByID(ctx context.Context, id int64) (_ *entity.UserCredentialInfo, err error) {
	ctx, span := s.startSpan(ctx, "GetUserCredentialByID")
	defer func() { s.endSpan(span, err) }()

	const q = `SELECT u.id, u.email, c.password
		FROM identity_users u
		JOIN identity_user_credentials c ON c.user_id = u.id
		WHERE u.id = $1`

	var out entity.UserCredentialInfo
	if err := s.conn.QueryRow(ctx, q, id).Scan(&out.ID, &out.Email, &out.Password); err != nil {
		return nil, s.mapError(err)
	}

	return &out, nil
}

func (s *DB) GetUserByID(ctx context.Context, id int64) (_ *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "GetUserByID")
	defer func() { s.endSpan(span, err) }()

	const q = `SELECT id, email, created_at, updated_at FROM identity_users WHERE id = $1`

	var out entity.User
	if err := s.conn.QueryRow(ctx, q, id).Scan(&out.ID, &out.Email, &out.CreatedAt, &out.UpdatedAt); err != nil {
		return nil, s.mapError(err)
	}

	return &out, nil
}

func (s *DB) ExistsUserByEmail(ctx context.Context, email string) (_ bool, err error) {
	ctx, span := s.startSpan(ctx, "ExistsUserByEmail")
	defer func() { s.endSpan(span, err) }()

	var exists bool
	err = s.conn.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM identity_users WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, s.mapError(err)
	}

	return exists, nil
}

func (s *DB) CountUsers(ctx context.Context) (_ int64, err error) {
	ctx, span := s.startSpan(ctx, "CountUsers")
	defer func() { s.endSpan(span, err) }()

	var total int64
	if err := s.conn.QueryRow(ctx, `SELECT COUNT(*) FROM identity_users`).Scan(&total); err != nil {
		return 0, s.mapError(err)
	}

	return total, nil
}

func (s *DB) GetUserRefreshToken(ctx context.Context, token string) (_ *entity.UserRefreshToken, err error) {
	ctx, span := s.startSpan(ctx, "GetUserRefreshToken")
	defer func() { s.endSpan(span, err) }()

	const q = `SELECT u.id, u.email, rt.id, rt.revoked, rt.replaced_by_token_id, rt.expires_at
		FROM identity_refresh_tokens rt
		JOIN identity_users u ON u.id = rt.user_id
		WHERE rt.token = $1`

	var out entity.UserRefreshToken
	err = s.conn.QueryRow(ctx, q, token).Scan(
		&out.UserID,
		&out.UserEmail,
		&out.RefreshID,
		&out.Revoked,
		&out.ReplacedByTokenID,
		&out.ExpiresAt,
	)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &out, nil
}
