// Package fallback produces deterministic synthetic statistics used
// when the order ledger is unreachable or when demo mode is requested.
// The output is scaled from a fixed single-day baseline, never random,
// so the same selector always yields the same snapshot shape.
package fallback

import (
	"time"

	"github.com/haixin886/recharge-hub-system-sub001/internal/clock"
	orderdomain "github.com/haixin886/recharge-hub-system-sub001/internal/order/domain"
	statsdomain "github.com/haixin886/recharge-hub-system-sub001/internal/stats/domain"
	"github.com/haixin886/recharge-hub-system-sub001/internal/stats/window"
)

// Per-selector multipliers over the single-day baseline. Last month
// scales new users down to 0.9 of baseline instead.
const (
	multiplierToday     = 1
	multiplierWeek      = 3
	multiplierMonth     = 8
	multiplierLastMonth = 7

	lastMonthNewUserFactor = 0.9
)

// Single-day baseline, amounts in minor units.
var baseline = statsdomain.StatisticsSnapshot{
	TotalUsers:  12840,
	NewUsers:    180,
	ActiveUsers: 2460,
	Orders: statsdomain.OrderCounts{
		Total:      3250,
		Pending:    140,
		Processing: 210,
		Completed:  2780,
		Failed:     120,
	},
	TotalSales:   18_650_000,
	TotalRefunds: 420_000,
	GrossProfit:  1_240_000,
	Agents: statsdomain.AgentStats{
		Total:      86,
		Active:     54,
		Revenue:    9_800_000,
		Commission: 294_000,
	},
	TopProducts: []statsdomain.ProductSales{
		{ProductID: "demo-100", Name: "100 CNY Fast Recharge", Sales: 6_200_000, Orders: 620},
		{ProductID: "demo-50", Name: "50 CNY Fast Recharge", Sales: 4_350_000, Orders: 870},
		{ProductID: "demo-200", Name: "200 CNY Fast Recharge", Sales: 3_800_000, Orders: 190},
		{ProductID: "demo-30", Name: "30 CNY Data Bundle", Sales: 2_100_000, Orders: 700},
		{ProductID: "demo-20", Name: "20 CNY Fast Recharge", Sales: 1_150_000, Orders: 575},
	},
	PaymentMethods: []statsdomain.MethodBreakdown{
		{Method: orderdomain.PaymentMethodBankTransfer, Sales: 1_860_000, Orders: 310},
		{Method: orderdomain.PaymentMethodCrypto, Sales: 2_790_000, Orders: 420},
		{Method: orderdomain.PaymentMethodPlatformBalance, Sales: 3_720_000, Orders: 680},
		{Method: orderdomain.PaymentMethodPlatformWallet, Sales: 2_230_000, Orders: 390},
		{Method: orderdomain.PaymentMethodWallet, Sales: 8_050_000, Orders: 1450},
	},
	Carriers: []statsdomain.CarrierBreakdown{
		{Carrier: orderdomain.CarrierMobile, Sales: 9_300_000, Orders: 1680},
		{Carrier: orderdomain.CarrierTelecom, Sales: 4_100_000, Orders: 710},
		{Carrier: orderdomain.CarrierUnicom, Sales: 5_250_000, Orders: 860},
	},
}

// Deterministic day-of-series weights in percent, echoing a weekly
// demand curve.
var trendWeights = []int64{92, 104, 98, 110, 121, 87, 95}

// Generator builds synthetic snapshots. It never fails.
type Generator struct {
	clock clock.Clock
}

func NewGenerator(clk clock.Clock) *Generator {
	return &Generator{clock: clk}
}

// Snapshot returns the synthetic statistics for a selector. Unknown
// selectors and custom ranges use the unscaled baseline.
func (g *Generator) Snapshot(selector statsdomain.TimeRangeType, custom *statsdomain.CustomRange) *statsdomain.StatisticsSnapshot {
	multiplier := int64(multiplierToday)
	switch selector {
	case statsdomain.RangeWeek:
		multiplier = multiplierWeek
	case statsdomain.RangeMonth:
		multiplier = multiplierMonth
	case statsdomain.RangeLastMonth:
		multiplier = multiplierLastMonth
	}

	now := g.clock.Now()
	win, err := window.Resolve(now, selector, custom)
	if err != nil {
		// Demo data never fails; fall back to today's window.
		win, _ = window.Resolve(now, statsdomain.RangeToday, nil)
		selector = statsdomain.RangeToday
		multiplier = multiplierToday
	}

	snap := statsdomain.StatisticsSnapshot{
		Source:   statsdomain.SourceFallback,
		Selector: selector,
		Window:   win,

		TotalUsers:  baseline.TotalUsers,
		NewUsers:    baseline.NewUsers * multiplier,
		ActiveUsers: baseline.ActiveUsers * multiplier,

		Orders: statsdomain.OrderCounts{
			Total:      baseline.Orders.Total * multiplier,
			Pending:    baseline.Orders.Pending * multiplier,
			Processing: baseline.Orders.Processing * multiplier,
			Completed:  baseline.Orders.Completed * multiplier,
			Failed:     baseline.Orders.Failed * multiplier,
		},

		TotalSales:   baseline.TotalSales * multiplier,
		TotalRefunds: baseline.TotalRefunds * multiplier,
		GrossProfit:  baseline.GrossProfit * multiplier,

		Agents: statsdomain.AgentStats{
			Total:      baseline.Agents.Total,
			Active:     baseline.Agents.Active,
			Revenue:    baseline.Agents.Revenue * multiplier,
			Commission: baseline.Agents.Commission * multiplier,
		},
	}

	if selector == statsdomain.RangeLastMonth {
		snap.NewUsers = int64(float64(baseline.NewUsers) * lastMonthNewUserFactor)
	}

	// Live snapshots guarantee net = sales - refunds; the demo data
	// keeps the same invariant rather than carrying an independent
	// figure.
	snap.NetRevenue = snap.TotalSales - snap.TotalRefunds

	snap.TopProducts = scaleProducts(multiplier)
	snap.PaymentMethods = scaleMethods(multiplier)
	snap.Carriers = scaleCarriers(multiplier)
	snap.Trend = synthesizeTrend(win)

	return &snap
}

func scaleProducts(multiplier int64) []statsdomain.ProductSales {
	out := make([]statsdomain.ProductSales, len(baseline.TopProducts))
	for i, p := range baseline.TopProducts {
		p.Sales *= multiplier
		p.Orders *= multiplier
		out[i] = p
	}
	return out
}

func scaleMethods(multiplier int64) []statsdomain.MethodBreakdown {
	out := make([]statsdomain.MethodBreakdown, len(baseline.PaymentMethods))
	for i, m := range baseline.PaymentMethods {
		m.Sales *= multiplier
		m.Orders *= multiplier
		out[i] = m
	}
	return out
}

func scaleCarriers(multiplier int64) []statsdomain.CarrierBreakdown {
	out := make([]statsdomain.CarrierBreakdown, len(baseline.Carriers))
	for i, c := range baseline.Carriers {
		c.Sales *= multiplier
		c.Orders *= multiplier
		out[i] = c
	}
	return out
}

// synthesizeTrend fills every bucket of the window with the weekly
// demand curve applied to the daily baseline.
func synthesizeTrend(win statsdomain.TimeWindow) []statsdomain.TrendPoint {
	granularity := window.GranularityFor(win)

	var points []statsdomain.TrendPoint
	switch granularity {
	case statsdomain.GranularityMonth:
		cursor := time.Date(win.Start.Year(), win.Start.Month(), 1, 0, 0, 0, 0, win.Start.Location())
		for i := 0; cursor.Before(win.End); i++ {
			weight := trendWeights[i%len(trendWeights)]
			points = append(points, statsdomain.TrendPoint{
				Period: cursor.Format("2006-01"),
				Sales:  baseline.TotalSales * 30 * weight / 100,
				Orders: baseline.Orders.Total * 30 * weight / 100,
			})
			cursor = cursor.AddDate(0, 1, 0)
		}
	default:
		cursor := time.Date(win.Start.Year(), win.Start.Month(), win.Start.Day(), 0, 0, 0, 0, win.Start.Location())
		for i := 0; cursor.Before(win.End); i++ {
			weight := trendWeights[i%len(trendWeights)]
			points = append(points, statsdomain.TrendPoint{
				Period: cursor.Format("2006-01-02"),
				Sales:  baseline.TotalSales * weight / 100,
				Orders: baseline.Orders.Total * weight / 100,
			})
			cursor = cursor.AddDate(0, 0, 1)
		}
	}
	return points
}
