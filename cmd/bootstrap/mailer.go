package bootstrap

import (
	"clubcore/internal/infra/mailer"

	"go.uber.org/fx"
)

var MailerModule = fx.Module("mailer",
	fx.Provide(
		fx.Annotate(
			mailer.NewSMTPMailer,
			fx.As(new(mailer.Mailer)),
		),
	),
)
