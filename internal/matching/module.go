package matching

import (
	gallery "github.com/shandysiswandi/artmatch/internal/gallery/usecase"
	"github.com/shandysiswandi/artmatch/internal/matching/inbound"
	"github.com/shandysiswandi/artmatch/internal/matching/outbound/ai"
	"github.com/shandysiswandi/artmatch/internal/matching/outbound/artwork"
	"github.com/shandysiswandi/artmatch/internal/matching/usecase"
	"github.com/shandysiswandi/artmatch/internal/pkg/config"
	"github.com/shandysiswandi/artmatch/internal/pkg/instrument"
	"github.com/shandysiswandi/artmatch/internal/pkg/router"
	"github.com/shandysiswandi/artmatch/internal/pkg/storage"
	"github.com/shandysiswandi/artmatch/internal/pkg/uid"
	"github.com/shandysiswandi/artmatch/internal/pkg/validator"
)

type Dependency struct {
	Router     *router.Router             `validate:"required"`
	AI         *ai.Client                 `validate:"required"`
	Artwork    *artwork.Resolver          `validate:"required"`
	Gallery    *gallery.Usecase           `validate:"required"`
	Storage    storage.Storage            `validate:"required"`
	Config     config.Config              `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	UUID       uid.StringID               `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	uc := usecase.New(usecase.Dependency{
		RepoAI:     dep.AI,
		Artwork:    dep.Artwork,
		Photos:     dep.Gallery,
		Storage:    dep.Storage,
		Validator:  dep.Validator,
		Config:     dep.Config,
		UUID:       dep.UUID,
		Instrument: dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc, dep.Config.GetInt64("modules.matching.max_image_bytes"))

	return nil
}
