package app

import (
	"context"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mistauth/mist/internal/pkg/clock"
	"github.com/mistauth/mist/internal/pkg/config"
	"github.com/mistauth/mist/internal/pkg/goroutine"
	"github.com/mistauth/mist/internal/pkg/hash"
	"github.com/mistauth/mist/internal/pkg/idempotency"
	"github.com/mistauth/mist/internal/pkg/instrument"
	"github.com/mistauth/mist/internal/pkg/jwt"
	"github.com/mistauth/mist/internal/pkg/mail"
	"github.com/mistauth/mist/internal/pkg/otp"
	"github.com/mistauth/mist/internal/pkg/router"
	"github.com/mistauth/mist/internal/pkg/uid"
	"github.com/mistauth/mist/internal/pkg/validator"
	"github.com/redis/go-redis/v9"
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
	bcrypt    hash.Hash
	uid       uid.NumberID
	uuid      uid.StringID
	otp       otp.OTP
	jwt       jwt.JWT

	// resources
	dbConn    *pgxpool.Pool
	cacheConn *redis.Client
	idemp     idempotency.Idempotency
	mail      mail.Mail

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
	app.initMail()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
