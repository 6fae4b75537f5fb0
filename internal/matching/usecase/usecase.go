package usecase

import (
	"context"
	"io"
	"log/slog"

	gallery "github.com/shandysiswandi/artmatch/internal/gallery/usecase"
	"github.com/shandysiswandi/artmatch/internal/matching/entity"
	"github.com/shandysiswandi/artmatch/internal/pkg/config"
	"github.com/shandysiswandi/artmatch/internal/pkg/goerror"
	"github.com/shandysiswandi/artmatch/internal/pkg/instrument"
	"github.com/shandysiswandi/artmatch/internal/pkg/jwt"
	"github.com/shandysiswandi/artmatch/internal/pkg/storage"
	"github.com/shandysiswandi/artmatch/internal/pkg/uid"
	"github.com/shandysiswandi/artmatch/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

const defaultMaxImageBytes int64 = 10 << 20

type repoAI interface {
	FindMatch(ctx context.Context, image []byte, filename string) (*entity.Match, error)
	SwapFace(ctx context.Context, image []byte, targetPath string) ([]byte, error)
	IndexArtwork(ctx context.Context, art entity.Artwork, image []byte) (*entity.IndexResult, error)
}

type artworkResolver interface {
	Resolve(matchID, style string) (string, error)
}

type photoOpener interface {
	OpenPhoto(ctx context.Context, id int64) (*gallery.OpenPhotoOutput, error)
}

type Usecase struct {
	repoAI    repoAI
	artwork   artworkResolver
	photos    photoOpener
	storage   storage.Storage
	validator validator.Validator
	cfg       config.Config
	uuid      uid.StringID
	ins       instrument.Instrumentation
}

type Dependency struct {
	RepoAI     repoAI
	Artwork    artworkResolver
	Photos     photoOpener
	Storage    storage.Storage
	Validator  validator.Validator
	Config     config.Config
	UUID       uid.StringID
	Instrument instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoAI:    dep.RepoAI,
		artwork:   dep.Artwork,
		photos:    dep.Photos,
		storage:   dep.Storage,
		validator: dep.Validator,
		cfg:       dep.Config,
		uuid:      dep.UUID,
		ins:       dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("matching.usecase").Start(ctx, name)
}

func (s *Usecase) maxImageBytes() int64 {
	if n := s.cfg.GetInt64("modules.matching.max_image_bytes"); n > 0 {
		return n
	}
	return defaultMaxImageBytes
}

func (s *Usecase) authenticated(ctx context.Context) (*jwt.Claims, error) {
	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	return clm, nil
}

// readPhoto loads a photo of the authenticated user through the gallery.
// Gallery errors are already client facing and are returned as is.
func (s *Usecase) readPhoto(ctx context.Context, id int64) ([]byte, string, error) {
	out, err := s.photos.OpenPhoto(ctx, id)
	if err != nil {
		return nil, "", err
	}
	defer out.Body.Close()

	limit := s.maxImageBytes()
	data, err := io.ReadAll(io.LimitReader(out.Body, limit+1))
	if err != nil {
		slog.ErrorContext(ctx, "failed to read photo", "photo_id", id, "error", err)
		return nil, "", goerror.NewServer(err)
	}
	if int64(len(data)) > limit {
		slog.WarnContext(ctx, "photo too large for matching", "photo_id", id, "size", len(data))
		return nil, "", goerror.NewBusiness("Photo too large", goerror.CodeTooLarge)
	}

	return data, out.Filename, nil
}
