package auth

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mistauth/mist/internal/auth/inbound"
	"github.com/mistauth/mist/internal/auth/outbound/db"
	"github.com/mistauth/mist/internal/auth/outbound/notifier"
	"github.com/mistauth/mist/internal/auth/usecase"
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
)

type Dependency struct {
	DBConn      *pgxpool.Pool              `validate:"required"`
	Goroutine   *goroutine.Manager         `validate:"required"`
	Router      *router.Router             `validate:"required"`
	Idempotency idempotency.Idempotency    `validate:"required"`
	Mail        mail.Mail                  `validate:"required"`
	MailFrom    string                     `validate:"required,email"`
	Config      config.Config              `validate:"required"`
	Instrument  instrument.Instrumentation `validate:"required"`
	UID         uid.NumberID               `validate:"required"`
	Bcrypt      hash.Hash                  `validate:"required"`
	Clock       clock.Clocker              `validate:"required"`
	Otp         otp.OTP                    `validate:"required"`
	Validator   validator.Validator        `validate:"required"`
	JWT         jwt.JWT                    `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	dbAuth := db.NewDB(dep.DBConn, dep.Instrument)
	repoNotifier := notifier.NewNotifier(dep.Mail, dep.MailFrom, dep.Instrument)

	uc := usecase.New(usecase.Dependency{
		RepoDB:       dbAuth,
		RepoNotifier: repoNotifier,
		Idempotency:  dep.Idempotency,
		Validator:    dep.Validator,
		Config:       dep.Config,
		Bcrypt:       dep.Bcrypt,
		UID:          dep.UID,
		Otp:          dep.Otp,
		Clock:        dep.Clock,
		JWT:          dep.JWT,
		Instrument:   dep.Instrument,
		Goroutine:    dep.Goroutine,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}
