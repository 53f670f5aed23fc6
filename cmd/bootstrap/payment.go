package bootstrap

import (
	"boxrent/internal/infra/payment"
	"boxrent/internal/pkg/config"
	"boxrent/internal/usecase/commands"

	"go.uber.org/fx"
)

var PaymentModule = fx.Module("payment",
	fx.Provide(
		NewPaymentGateway,
	),
)

func NewPaymentGateway(cfg config.Config) commands.PaymentGateway {
	return payment.NewStripeGateway(cfg.Stripe)
}
