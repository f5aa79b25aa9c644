package notifier

import (
	"context"
	"fmt"
	"time"

	"github.com/mistauth/mist/internal/pkg/instrument"
	"github.com/mistauth/mist/internal/pkg/mail"
	"github.com/sethvargo/go-retry"
	"go.opentelemetry.io/otel/codes"
)

// Notifier delivers account emails over SMTP. Sends are retried with a capped
// fibonacci backoff because transient SMTP failures are common and the caller
// has already detached from the request.
type Notifier struct {
	mailer mail.Mail
	from   string
	ins    instrument.Instrumentation
}

func NewNotifier(mailer mail.Mail, from string, ins instrument.Instrumentation) *Notifier {
	return &Notifier{mailer: mailer, from: from, ins: ins}
}

func (n *Notifier) SendOtpEmail(ctx context.Context, email, code string) error {
	ctx, span := n.ins.Tracer("auth.outbound.notifier").Start(ctx, "SendOtpEmail")
	defer span.End()

	msg := mail.Message{
		From:     n.from,
		To:       []string{email},
		Subject:  "Your verification code",
		TextBody: fmt.Sprintf("Your one-time verification code is %s. It expires shortly, so use it right away.", code),
		HTMLBody: fmt.Sprintf(`<p>Your one-time verification code is <strong>%s</strong>.</p><p>It expires shortly, so use it right away.</p>`, code),
	}

	b := retry.NewFibonacci(300 * time.Millisecond)
	b = retry.WithMaxRetries(3, b)
	b = retry.WithCappedDuration(3*time.Second, b)

	err := retry.Do(ctx, b, func(ctx context.Context) error {
		if err := n.mailer.Send(ctx, msg); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
