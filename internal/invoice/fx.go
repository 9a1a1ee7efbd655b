package invoice

import (
	"github.com/railzwaylabs/billingkit/internal/currency"
	"github.com/railzwaylabs/billingkit/internal/invoice/service"
	"go.uber.org/fx"
)

var Module = fx.Module("invoice.view",
	currency.Module,
	fx.Provide(service.NewViewFactory),
)
