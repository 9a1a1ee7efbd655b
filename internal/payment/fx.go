package payment

import (
	"github.com/railzwaylabs/billingkit/internal/config"
	invoicedomain "github.com/railzwaylabs/billingkit/internal/invoice/domain"
	stripeadapter "github.com/railzwaylabs/billingkit/internal/payment/adapters/stripe"
	paymentdomain "github.com/railzwaylabs/billingkit/internal/payment/domain"
	subscriptiondomain "github.com/railzwaylabs/billingkit/internal/subscription/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("payment.gateway",
	fx.Provide(func(cfg *config.Config, log *zap.Logger) (*stripeadapter.Adapter, error) {
		return stripeadapter.NewFactory().NewAdapter(paymentdomain.AdapterConfig{
			Provider: "stripe",
			APIKey:   cfg.Stripe.APIKey,
		}, log)
	}),
	fx.Provide(func(a *stripeadapter.Adapter) subscriptiondomain.Gateway { return a }),
	fx.Provide(func(a *stripeadapter.Adapter) invoicedomain.PaymentAttemptSource { return a }),
)
