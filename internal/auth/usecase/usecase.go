package usecase

import (
	"context"

	"github.com/mistauth/mist/internal/auth/entity"
	"github.com/mistauth/mist/internal/pkg/clock"
	"github.com/mistauth/mist/internal/pkg/config"
	"github.com/mistauth/mist/internal/pkg/goroutine"
	"github.com/mistauth/mist/internal/pkg/hash"
	"github.com/mistauth/mist/internal/pkg/idempotency"
	"github.com/mistauth/mist/internal/pkg/instrument"
	"github.com/mistauth/mist/internal/pkg/jwt"
	"github.com/mistauth/mist/internal/pkg/otp"
	"github.com/mistauth/mist/internal/pkg/uid"
	"github.com/mistauth/mist/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

type repoNotifier interface {
	SendOtpEmail(ctx context.Context, email, code string) error
}

type repoDB interface {
	GetUserByEmail(ctx context.Context, email string) (*entity.User, error)
	GetOtpByUserID(ctx context.Context, userID int64) (*entity.Otp, error)

	CreateUserWithOtp(ctx context.Context, user entity.User, code entity.Otp) error
	RenewOtp(ctx context.Context, code entity.Otp) error

	ReplaceUserTokens(ctx context.Context, userID int64, token entity.Token) error
	RevokeAllUserTokens(ctx context.Context, userID int64) error

	UpdateUserProfile(ctx context.Context, patch entity.PatchUser) error
}

type Usecase struct {
	repoDB       repoDB
	repoNotifier repoNotifier
	idemp        idempotency.Idempotency
	validator    validator.Validator
	cfg          config.Config
	bcrypt       hash.Hash
	uid          uid.NumberID
	otp          otp.OTP
	clock        clock.Clocker
	jwt          jwt.JWT
	ins          instrument.Instrumentation
	goroutine    *goroutine.Manager
}

type Dependency struct {
	RepoDB       repoDB
	RepoNotifier repoNotifier
	Idempotency  idempotency.Idempotency
	Validator    validator.Validator
	Config       config.Config
	Bcrypt       hash.Hash
	UID          uid.NumberID
	Otp          otp.OTP
	Clock        clock.Clocker
	JWT          jwt.JWT
	Instrument   instrument.Instrumentation
	Goroutine    *goroutine.Manager
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:       dep.RepoDB,
		repoNotifier: dep.RepoNotifier,
		idemp:        dep.Idempotency,
		validator:    dep.Validator,
		cfg:          dep.Config,
		bcrypt:       dep.Bcrypt,
		uid:          dep.UID,
		otp:          dep.Otp,
		clock:        dep.Clock,
		jwt:          dep.JWT,
		ins:          dep.Instrument,
		goroutine:    dep.Goroutine,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("auth.usecase").Start(ctx, name)
}
