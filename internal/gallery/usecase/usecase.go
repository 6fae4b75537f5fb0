package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/shandysiswandi/artmatch/internal/gallery/entity"
	"github.com/shandysiswandi/artmatch/internal/pkg/clock"
	"github.com/shandysiswandi/artmatch/internal/pkg/config"
	"github.com/shandysiswandi/artmatch/internal/pkg/goerror"
	"github.com/shandysiswandi/artmatch/internal/pkg/instrument"
	"github.com/shandysiswandi/artmatch/internal/pkg/jwt"
	"github.com/shandysiswandi/artmatch/internal/pkg/storage"
	"github.com/shandysiswandi/artmatch/internal/pkg/uid"
	"github.com/shandysiswandi/artmatch/internal/pkg/validator"
	"github.com/shandysiswandi/artmatch/internal/shared/event"
	"go.opentelemetry.io/otel/trace"
)

const defaultMaxUploadBytes int64 = 10 << 20

// allowedImages maps accepted content types to the object key extension.
var allowedImages = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

type repoDB interface {
	CreatePhoto(ctx context.Context, p entity.Photo) error
	GetPhoto(ctx context.Context, id int64) (*entity.Photo, error)
	ListPhotos(ctx context.Context, f entity.PhotoFilter) ([]entity.Photo, int64, error)
	UpdateFaceStatus(ctx context.Context, id int64, status entity.FaceStatus) error
	DeletePhoto(ctx context.Context, id, userID int64) error
}

type repoMessaging interface {
	PublishPhotoUploaded(ctx context.Context, msg event.PhotoUploadedMessage) error
}

type faceChecker interface {
	CheckFace(ctx context.Context, image []byte, filename string) (bool, error)
}

type Usecase struct {
	repoDB    repoDB
	repoMsg   repoMessaging
	face      faceChecker
	storage   storage.Storage
	validator validator.Validator
	cfg       config.Config
	uid       uid.NumberID
	uuid      uid.StringID
	clock     clock.Clocker
	ins       instrument.Instrumentation
}

type Dependency struct {
	RepoDB        repoDB
	RepoMessaging repoMessaging
	FaceChecker   faceChecker
	Storage       storage.Storage
	Validator     validator.Validator
	Config        config.Config
	UID           uid.NumberID
	UUID          uid.StringID
	Clock         clock.Clocker
	Instrument    instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:    dep.RepoDB,
		repoMsg:   dep.RepoMessaging,
		face:      dep.FaceChecker,
		storage:   dep.Storage,
		validator: dep.Validator,
		cfg:       dep.Config,
		uid:       dep.UID,
		uuid:      dep.UUID,
		clock:     dep.Clock,
		ins:       dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("gallery.usecase").Start(ctx, name)
}

func (s *Usecase) bucket() string {
	return s.cfg.GetString("modules.gallery.bucket")
}

func (s *Usecase) maxUploadBytes() int64 {
	if n := s.cfg.GetInt64("modules.gallery.max_upload_bytes"); n > 0 {
		return n
	}
	return defaultMaxUploadBytes
}

// presign returns an empty URL when signing fails; the photo is still listed.
func (s *Usecase) presign(ctx context.Context, key string) string {
	url, err := s.storage.PresignGet(ctx, s.bucket(), key, s.cfg.GetMinute("modules.gallery.presign_expiry_minutes"))
	if err != nil {
		slog.WarnContext(ctx, "failed to presign photo url", "object_key", key, "error", err)
		return ""
	}
	return url
}

func (s *Usecase) authenticated(ctx context.Context) (*jwt.Claims, error) {
	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	return clm, nil
}

// ownedPhoto loads a photo and hides photos of other users behind the same
// not found error as missing ones.
func (s *Usecase) ownedPhoto(ctx context.Context, id, userID int64) (*entity.Photo, error) {
	photo, err := s.repoDB.GetPhoto(ctx, id)
	if err != nil && !errors.Is(err, goerror.ErrNotFound) {
		slog.ErrorContext(ctx, "failed to repo get photo", "photo_id", id, "error", err)
		return nil, goerror.NewServer(err)
	}
	if photo == nil || photo.UserID != userID {
		slog.WarnContext(ctx, "photo not found for user", "photo_id", id, "user_id", userID)
		return nil, errPhotoNotFound()
	}

	return photo, nil
}

func errPhotoNotFound() error {
	return goerror.NewBusiness("Photo not found", goerror.CodeNotFound)
}

type PhotoOutput struct {
	ID          int64
	ContentType string
	Size        int64
	FaceStatus  entity.FaceStatus
	UploadedAt  time.Time
	URL         string
}
