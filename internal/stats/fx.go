package stats

import (
	"github.com/haixin886/recharge-hub-system-sub001/internal/clock"
	"github.com/haixin886/recharge-hub-system-sub001/internal/stats/fallback"
	"github.com/haixin886/recharge-hub-system-sub001/internal/stats/ledger"
	"github.com/haixin886/recharge-hub-system-sub001/internal/stats/service"
	"go.uber.org/fx"
)

var Module = fx.Module("stats.service",
	fx.Provide(ledger.NewReader),
	fx.Provide(func(clk clock.Clock) *fallback.Generator {
		return fallback.NewGenerator(clk)
	}),
	fx.Provide(service.NewService),
)
