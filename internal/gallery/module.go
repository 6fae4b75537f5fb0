package gallery

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shandysiswandi/artmatch/internal/gallery/inbound"
	"github.com/shandysiswandi/artmatch/internal/gallery/outbound/db"
	"github.com/shandysiswandi/artmatch/internal/gallery/outbound/mq"
	"github.com/shandysiswandi/artmatch/internal/gallery/usecase"
	"github.com/shandysiswandi/artmatch/internal/pkg/clock"
	"github.com/shandysiswandi/artmatch/internal/pkg/config"
	"github.com/shandysiswandi/artmatch/internal/pkg/goroutine"
	"github.com/shandysiswandi/artmatch/internal/pkg/instrument"
	"github.com/shandysiswandi/artmatch/internal/pkg/messaging"
	"github.com/shandysiswandi/artmatch/internal/pkg/router"
	"github.com/shandysiswandi/artmatch/internal/pkg/storage"
	"github.com/shandysiswandi/artmatch/internal/pkg/uid"
	"github.com/shandysiswandi/artmatch/internal/pkg/validator"
)

type FaceChecker interface {
	CheckFace(ctx context.Context, image []byte, filename string) (bool, error)
}

type Dependency struct {
	Ctx         context.Context            `validate:"required"`
	DBConn      *pgxpool.Pool              `validate:"required"`
	Router      *router.Router             `validate:"required"`
	Goroutine   *goroutine.Manager         `validate:"required"`
	Messaging   messaging.Messaging        `validate:"required"`
	Storage     storage.Storage            `validate:"required"`
	FaceChecker FaceChecker                `validate:"required"`
	Config      config.Config              `validate:"required"`
	Instrument  instrument.Instrumentation `validate:"required"`
	UID         uid.NumberID               `validate:"required"`
	UUID        uid.StringID               `validate:"required"`
	Clock       clock.Clocker              `validate:"required"`
	Validator   validator.Validator        `validate:"required"`
}

// New wires the gallery module and returns its usecase so other modules can
// open photos through it.
func New(dep Dependency) (*usecase.Usecase, error) {
	if err := dep.Validator.Validate(dep); err != nil {
		return nil, err
	}

	uc := usecase.New(usecase.Dependency{
		RepoDB:        db.NewDB(dep.DBConn, dep.Instrument),
		RepoMessaging: mq.NewMessaging(dep.Messaging, dep.Instrument),
		FaceChecker:   dep.FaceChecker,
		Storage:       dep.Storage,
		Validator:     dep.Validator,
		Config:        dep.Config,
		UID:           dep.UID,
		UUID:          dep.UUID,
		Clock:         dep.Clock,
		Instrument:    dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc, dep.Config.GetInt64("modules.gallery.max_upload_bytes"))
	inbound.RegisterMQConsumer(dep.Ctx, dep.Config, dep.Goroutine, dep.Messaging, dep.UUID, uc, dep.Instrument)

	return uc, nil
}
