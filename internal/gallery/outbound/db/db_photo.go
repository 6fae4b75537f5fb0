package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/shandysiswandi/artmatch/internal/gallery/entity"
	"github.com/shandysiswandi/artmatch/internal/pkg/goerror"
)

const photoColumns = `id, user_id, object_key, content_type, size, face_status, uploaded_at`

func scanPhoto(row pgx.Row) (*entity.Photo, error) {
	var p entity.Photo
	err := row.Scan(&p.ID, &p.UserID, &p.ObjectKey, &p.ContentType, &p.Size, &p.FaceStatus, &p.UploadedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *DB) CreatePhoto(ctx context.Context, p entity.Photo) (err error) {
	ctx, span := s.startSpan(ctx, "CreatePhoto")
	defer func() { s.endSpan(span, err) }()

	const q = `INSERT INTO gallery_photos (` + photoColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err = s.conn.Exec(ctx, q, p.ID, p.UserID, p.ObjectKey, p.ContentType, p.Size, p.FaceStatus, p.UploadedAt)
	return s.mapError(err)
}

func (s *DB) GetPhoto(ctx context.Context, id int64) (_ *entity.Photo, err error) {
	ctx, span := s.startSpan(ctx, "GetPhoto")
	defer func() { s.endSpan(span, err) }()

	const q = `SELECT ` + photoColumns + ` FROM gallery_photos WHERE id = $1`

	p, err := scanPhoto(s.conn.QueryRow(ctx, q, id))
	if err != nil {
		return nil, s.mapError(err)
	}

	return p, nil
}

// ListPhotos returns one page of the user's photos, newest first, and the
// user's total photo count.
func (s *DB) ListPhotos(ctx context.Context, f entity.PhotoFilter) (_ []entity.Photo, _ int64, err error) {
	ctx, span := s.startSpan(ctx, "ListPhotos")
	defer func() { s.endSpan(span, err) }()

	var total int64
	err = s.conn.QueryRow(ctx, `SELECT COUNT(*) FROM gallery_photos WHERE user_id = $1`, f.UserID).Scan(&total)
	if err != nil {
		return nil, 0, s.mapError(err)
	}

	const q = `SELECT ` + photoColumns + ` FROM gallery_photos
		WHERE user_id = $1
		ORDER BY uploaded_at DESC, id DESC
		LIMIT $2 OFFSET $3`

	rows, err := s.conn.Query(ctx, q, f.UserID, f.Limit, f.Offset)
	if err != nil {
		return nil, 0, s.mapError(err)
	}
	defer rows.Close()

	photos := make([]entity.Photo, 0, f.Limit)
	for rows.Next() {
		p, err := scanPhoto(rows)
		if err != nil {
			return nil, 0, err
		}
		photos = append(photos, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return photos, total, nil
}

func (s *DB) UpdateFaceStatus(ctx context.Context, id int64, status entity.FaceStatus) (err error) {
	ctx, span := s.startSpan(ctx, "UpdateFaceStatus")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, `UPDATE gallery_photos SET face_status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}

	return nil
}

// DeletePhoto removes the photo only when it belongs to userID.
func (s *DB) DeletePhoto(ctx context.Context, id, userID int64) (err error) {
	ctx, span := s.startSpan(ctx, "DeletePhoto")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, `DELETE FROM gallery_photos WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}

	return nil
}
