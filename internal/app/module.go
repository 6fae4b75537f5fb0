package app

import (
	"log/slog"
	"os"

	"github.com/shandysiswandi/artmatch/internal/gallery"
	"github.com/shandysiswandi/artmatch/internal/identity"
	"github.com/shandysiswandi/artmatch/internal/matching"
)

func (a *App) initModules() {
	if a.config.GetBool("modules.identity.enabled") {
		if err := identity.New(identity.Dependency{
			DBConn:      a.dbConn,
			Router:      a.router,
			Idempotency: a.idemp,
			Config:      a.config,
			Instrument:  a.ins,
			UID:         a.uid,
			OID:         a.oid,
			HMAC:        a.hmac,
			Argon2ID:    a.argon2id,
			Clock:       a.clock,
			Validator:   a.validator,
			JWT:         a.jwt,
		}); err != nil {
			slog.Error("failed to init module identity", "error", err)
			os.Exit(1)
		}
	}

	if !a.config.GetBool("modules.gallery.enabled") {
		return
	}

	photos, err := gallery.New(gallery.Dependency{
		Ctx:         a.ctx,
		DBConn:      a.dbConn,
		Router:      a.router,
		Goroutine:   a.goroutine,
		Messaging:   a.messaging,
		Storage:     a.storage,
		FaceChecker: a.ai,
		Config:      a.config,
		Instrument:  a.ins,
		UID:         a.uid,
		UUID:        a.uuid,
		Clock:       a.clock,
		Validator:   a.validator,
	})
	if err != nil {
		slog.Error("failed to init module gallery", "error", err)
		os.Exit(1)
	}

	if a.config.GetBool("modules.matching.enabled") {
		if err := matching.New(matching.Dependency{
			Router:     a.router,
			AI:         a.ai,
			Artwork:    a.artwork,
			Gallery:    photos,
			Storage:    a.storage,
			Config:     a.config,
			Instrument: a.ins,
			UUID:       a.uuid,
			Validator:  a.validator,
		}); err != nil {
			slog.Error("failed to init module matching", "error", err)
			os.Exit(1)
		}
	}
}
