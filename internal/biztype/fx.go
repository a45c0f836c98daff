package biztype

import (
	"github.com/haixin886/recharge-hub-system-sub001/internal/biztype/service"
	"go.uber.org/fx"
)

var Module = fx.Module("biztype.service",
	fx.Provide(service.NewService),
)
