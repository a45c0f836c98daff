package order

import (
	"github.com/haixin886/recharge-hub-system-sub001/internal/order/service"
	"go.uber.org/fx"
)

var Module = fx.Module("order.service",
	fx.Provide(service.NewService),
)
