package app

import (
	"context"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/shandysiswandi/artmatch/internal/matching/outbound/ai"
	"github.com/shandysiswandi/artmatch/internal/matching/outbound/artwork"
	"github.com/shandysiswandi/artmatch/internal/pkg/clock"
	"github.com/shandysiswandi/artmatch/internal/pkg/config"
	"github.com/shandysiswandi/artmatch/internal/pkg/goroutine"
	"github.com/shandysiswandi/artmatch/internal/pkg/hash"
	"github.com/shandysiswandi/artmatch/internal/pkg/idempotency"
	"github.com/shandysiswandi/artmatch/internal/pkg/instrument"
	"github.com/shandysiswandi/artmatch/internal/pkg/jwt"
	"github.com/shandysiswandi/artmatch/internal/pkg/messaging"
	"github.com/shandysiswandi/artmatch/internal/pkg/router"
	"github.com/shandysiswandi/artmatch/internal/pkg/storage"
	"github.com/shandysiswandi/artmatch/internal/pkg/uid"
	"github.com/shandysiswandi/artmatch/internal/pkg/validator"
)

// App wires dependencies and manages service lifecycle.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config config.Config
	ins    instrument.Instrumentation

	// libraries
	goroutine *goroutine.Manager
	validator validator.Validator
	clock     clock.Clocker
	hmac      hash.Hash
	argon2id  hash.Hash
	uid       uid.NumberID
	oid       uid.StringID
	uuid      uid.StringID
	jwt       jwt.JWT

	// resources
	dbConn    *pgxpool.Pool
	cacheConn *redis.Client
	idemp     idempotency.Idempotency
	messaging messaging.Messaging
	storage   storage.Storage
	ai        *ai.Client
	artwork   *artwork.Resolver

	// server
	router     *router.Router
	httpServer *http.Server

	//
	closers []struct {
		name string
		fn   func(context.Context) error
	}
}

// New initializes the application with default wiring and returns an App instance.
func New() *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initConfig()
	app.initInstrument()
	app.initLibraries()
	app.initJWT()
	app.initDatabase()
	app.initCache()
	app.initStorage()
	app.initMessaging()
	app.initAI()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
