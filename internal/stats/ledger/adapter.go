// Package ledger is the read-only boundary between the statistics core
// and the order store. Every method is one logical metric; any storage
// failure surfaces as ErrLedgerUnavailable so the caller can decide to
// fall back, never a partial result.
package ledger

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	statsdomain "github.com/haixin886/recharge-hub-system-sub001/internal/stats/domain"
)

// TrendRow is one ledger row projected for trend bucketing. Paid is
// already coalesced to zero by the reader.
type TrendRow struct {
	CreateTime time.Time
	Completed  bool
	Paid       int64
}

// AgentTotals aggregates processing agents for one window.
type AgentTotals struct {
	Total      int64
	Active     int64
	Revenue    int64
	Commission int64
}

// Reader issues point-in-time aggregate reads against the order store.
// Timestamp conventions per metric: order counts, refunds, active
// users and trend buckets key on create_time; completed sales, gross
// profit and agent activity key on complete_time.
type Reader interface {
	CountOrdersByStatus(ctx context.Context, w statsdomain.TimeWindow, processorID *snowflake.ID) (statsdomain.OrderCounts, error)
	CompletedSales(ctx context.Context, w statsdomain.TimeWindow, processorID *snowflake.ID) (int64, error)
	RefundTotal(ctx context.Context, w statsdomain.TimeWindow, processorID *snowflake.ID) (int64, error)
	GrossProfit(ctx context.Context, w statsdomain.TimeWindow, processorID *snowflake.ID) (int64, error)

	TotalUsers(ctx context.Context) (int64, error)
	NewUsers(ctx context.Context, w statsdomain.TimeWindow) (int64, error)
	ActiveUsers(ctx context.Context, w statsdomain.TimeWindow) (int64, error)
	AgentTotals(ctx context.Context, w statsdomain.TimeWindow) (AgentTotals, error)

	TopProducts(ctx context.Context, w statsdomain.TimeWindow, processorID *snowflake.ID, limit int) ([]statsdomain.ProductSales, error)
	MethodBreakdown(ctx context.Context, w statsdomain.TimeWindow, processorID *snowflake.ID) ([]statsdomain.MethodBreakdown, error)
	CarrierBreakdown(ctx context.Context, w statsdomain.TimeWindow, processorID *snowflake.ID) ([]statsdomain.CarrierBreakdown, error)
	TrendRows(ctx context.Context, w statsdomain.TimeWindow, processorID *snowflake.ID) ([]TrendRow, error)
}
