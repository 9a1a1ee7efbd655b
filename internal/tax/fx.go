package tax

import (
	"github.com/railzwaylabs/billingkit/internal/tax/repository"
	"github.com/railzwaylabs/billingkit/internal/tax/service"
	"go.uber.org/fx"
)

var Module = fx.Module("tax.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewResolver),
)
