package app

import (
	"log/slog"
	"os"

	"github.com/mistauth/mist/internal/auth"
)

func (a *App) initModules() {
	if a.config.GetBool("modules.auth.enabled") {
		if err := auth.New(auth.Dependency{
			Config:      a.config,
			Instrument:  a.ins,
			UID:         a.uid,
			Bcrypt:      a.bcrypt,
			Clock:       a.clock,
			Validator:   a.validator,
			Router:      a.router,
			Otp:         a.otp,
			DBConn:      a.dbConn,
			Idempotency: a.idemp,
			Mail:        a.mail,
			MailFrom:    a.config.GetString("mail.from"),
			Goroutine:   a.goroutine,
			JWT:         a.jwt,
		}); err != nil {
			slog.Error("failed to init module auth", "error", err)
			os.Exit(1)
		}
	}
}
