package commands

import (
	"context"

	"clubcore/internal/infra/gateway"
)

// PaymentGateway is the outbound port for the hosted-checkout provider.
type PaymentGateway interface {
	CreatePaymentLink(ctx context.Context, req gateway.PaymentLinkRequest) (*gateway.PaymentLink, error)
}
