package subscription

import (
	"github.com/railzwaylabs/billingkit/internal/subscription/repository"
	"github.com/railzwaylabs/billingkit/internal/subscription/service"
	"github.com/railzwaylabs/billingkit/internal/tax"
	"go.uber.org/fx"
)

var Module = fx.Module("subscription.builder",
	tax.Module,
	fx.Provide(repository.Provide),
	fx.Provide(service.NewBuilderFactory),
)
