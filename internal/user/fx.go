package user

import (
	"github.com/haixin886/recharge-hub-system-sub001/internal/user/service"
	"go.uber.org/fx"
)

var Module = fx.Module("user.service",
	fx.Provide(service.NewService),
)
