package service

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	statsdomain "github.com/haixin886/recharge-hub-system-sub001/internal/stats/domain"
	"github.com/haixin886/recharge-hub-system-sub001/internal/stats/ledger"
	"github.com/haixin886/recharge-hub-system-sub001/internal/stats/window"
	"golang.org/x/sync/errgroup"
)

const topProductLimit = 5

// aggregate fans the per-metric ledger reads out concurrently, joins
// them and folds one snapshot. All-or-nothing: the first failed read
// cancels the rest and the whole request reports ErrLedgerUnavailable.
func (s *Service) aggregate(ctx context.Context, selector statsdomain.TimeRangeType, win statsdomain.TimeWindow, processorID *snowflake.ID) (*statsdomain.StatisticsSnapshot, error) {
	var (
		counts      statsdomain.OrderCounts
		sales       int64
		refunds     int64
		profit      int64
		totalUsers  int64
		newUsers    int64
		activeUsers int64
		agents      ledger.AgentTotals
		products    []statsdomain.ProductSales
		methods     []statsdomain.MethodBreakdown
		carriers    []statsdomain.CarrierBreakdown
		trendRows   []ledger.TrendRow
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		counts, err = s.reader.CountOrdersByStatus(ctx, win, processorID)
		return err
	})
	g.Go(func() (err error) {
		sales, err = s.reader.CompletedSales(ctx, win, processorID)
		return err
	})
	g.Go(func() (err error) {
		refunds, err = s.reader.RefundTotal(ctx, win, processorID)
		return err
	})
	g.Go(func() (err error) {
		profit, err = s.reader.GrossProfit(ctx, win, processorID)
		return err
	})
	g.Go(func() (err error) {
		totalUsers, err = s.reader.TotalUsers(ctx)
		return err
	})
	g.Go(func() (err error) {
		newUsers, err = s.reader.NewUsers(ctx, win)
		return err
	})
	g.Go(func() (err error) {
		activeUsers, err = s.reader.ActiveUsers(ctx, win)
		return err
	})
	g.Go(func() (err error) {
		agents, err = s.reader.AgentTotals(ctx, win)
		return err
	})
	g.Go(func() (err error) {
		products, err = s.reader.TopProducts(ctx, win, processorID, topProductLimit)
		return err
	})
	g.Go(func() (err error) {
		methods, err = s.reader.MethodBreakdown(ctx, win, processorID)
		return err
	})
	g.Go(func() (err error) {
		carriers, err = s.reader.CarrierBreakdown(ctx, win, processorID)
		return err
	})
	g.Go(func() (err error) {
		trendRows, err = s.reader.TrendRows(ctx, win, processorID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	snap := statsdomain.StatisticsSnapshot{
		Source:   statsdomain.SourceLive,
		Selector: selector,
		Window:   win,

		TotalUsers:  max0(totalUsers),
		NewUsers:    max0(newUsers),
		ActiveUsers: max0(activeUsers),

		Orders: counts,

		TotalSales:   max0(sales),
		TotalRefunds: max0(refunds),
		GrossProfit:  max0(profit),

		Agents: statsdomain.AgentStats{
			Total:      max0(agents.Total),
			Active:     max0(agents.Active),
			Revenue:    max0(agents.Revenue),
			Commission: max0(agents.Commission),
		},

		TopProducts:    products,
		PaymentMethods: methods,
		Carriers:       carriers,
		Trend:          bucketTrend(win, trendRows),
	}

	// Live invariant: net revenue is always sales minus refunds.
	snap.NetRevenue = snap.TotalSales - snap.TotalRefunds

	if snap.TopProducts == nil {
		snap.TopProducts = []statsdomain.ProductSales{}
	}
	if snap.PaymentMethods == nil {
		snap.PaymentMethods = []statsdomain.MethodBreakdown{}
	}
	if snap.Carriers == nil {
		snap.Carriers = []statsdomain.CarrierBreakdown{}
	}

	return &snap, nil
}

// bucketTrend folds ledger rows into a contiguous ascending series
// covering the whole window. Buckets with no orders still appear
// zero-filled. Sales count completed orders only; order counts include
// every status.
func bucketTrend(win statsdomain.TimeWindow, rows []ledger.TrendRow) []statsdomain.TrendPoint {
	granularity := window.GranularityFor(win)

	layout := "2006-01-02"
	step := func(t time.Time) time.Time { return t.AddDate(0, 0, 1) }
	align := func(t time.Time) time.Time {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	}
	if granularity == statsdomain.GranularityMonth {
		layout = "2006-01"
		step = func(t time.Time) time.Time { return t.AddDate(0, 1, 0) }
		align = func(t time.Time) time.Time {
			return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
		}
	}

	totals := make(map[string]*statsdomain.TrendPoint)
	var points []statsdomain.TrendPoint
	for cursor := align(win.Start); cursor.Before(win.End); cursor = step(cursor) {
		points = append(points, statsdomain.TrendPoint{Period: cursor.Format(layout)})
	}
	for i := range points {
		totals[points[i].Period] = &points[i]
	}

	for _, row := range rows {
		point, ok := totals[row.CreateTime.In(win.Start.Location()).Format(layout)]
		if !ok {
			continue
		}
		point.Orders++
		if row.Completed && row.Paid > 0 {
			point.Sales += row.Paid
		}
	}

	return points
}

func max0(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}
