package identity

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shandysiswandi/artmatch/internal/identity/inbound"
	"github.com/shandysiswandi/artmatch/internal/identity/outbound/db"
	"github.com/shandysiswandi/artmatch/internal/identity/usecase"
	"github.com/shandysiswandi/artmatch/internal/pkg/clock"
	"github.com/shandysiswandi/artmatch/internal/pkg/config"
	"github.com/shandysiswandi/artmatch/internal/pkg/hash"
	"github.com/shandysiswandi/artmatch/internal/pkg/idempotency"
	"github.com/shandysiswandi/artmatch/internal/pkg/instrument"
	"github.com/shandysiswandi/artmatch/internal/pkg/jwt"
	"github.com/shandysiswandi/artmatch/internal/pkg/router"
	"github.com/shandysiswandi/artmatch/internal/pkg/uid"
	"github.com/shandysiswandi/artmatch/internal/pkg/validator"
)

type Dependency struct {
	DBConn      *pgxpool.Pool              `validate:"required"`
	Router      *router.Router             `validate:"required"`
	Idempotency idempotency.Idempotency    `validate:"required"`
	Config      config.Config              `validate:"required"`
	Instrument  instrument.Instrumentation `validate:"required"`
	UID         uid.NumberID               `validate:"required"`
	OID         uid.StringID               `validate:"required"`
	HMAC        hash.Hash                  `validate:"required"`
	Argon2ID    hash.Hash                  `validate:"required"`
	Clock       clock.Clocker              `validate:"required"`
	Validator   validator.Validator        `validate:"required"`
	JWT         jwt.JWT                    `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	uc := usecase.New(usecase.Dependency{
		RepoDB:           db.NewDB(dep.DBConn, dep.Instrument),
		Idempotency:      dep.Idempotency,
		Validator:        dep.Validator,
		Config:           dep.Config,
		HMAC:             dep.HMAC,
		Argon2ID:         dep.Argon2ID,
		UID:              dep.UID,
		OID:              dep.OID,
		Clock:            dep.Clock,
		JWT:              dep.JWT,
		Instrument:       dep.Instrument,
		MaxConcurrentKDF: dep.Config.GetInt("modules.identity.max_concurrent_kdf"),
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}
