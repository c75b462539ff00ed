package bootstrap

import (
	"clubcore/internal/infra/gateway"
	"clubcore/internal/pkg/config"
	"clubcore/internal/usecase/commands"

	"go.uber.org/fx"
)

var GatewayModule = fx.Module("gateway",
	fx.Provide(
		fx.Annotate(
			gateway.NewClient,
			fx.As(new(commands.PaymentGateway)),
		),
		func(cfg config.GatewayConfig) *gateway.SignatureVerifier {
			return gateway.NewSignatureVerifier(cfg.WebhookSecret)
		},
	),
)
