package domain

import (
	"time"

	orderdomain "github.com/haixin886/recharge-hub-system-sub001/internal/order/domain"
)

// TimeRangeType selects the aggregation window symbolically.
type TimeRangeType string

const (
	RangeToday     TimeRangeType = "today"
	RangeWeek      TimeRangeType = "week"
	RangeMonth     TimeRangeType = "month"
	RangeLastMonth TimeRangeType = "last_month"
	RangeCustom    TimeRangeType = "custom"
)

// TimeWindow is a half-open interval [Start, End). Invariant: Start < End.
type TimeWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls inside the window.
func (w TimeWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// Duration returns the window length.
func (w TimeWindow) Duration() time.Duration { return w.End.Sub(w.Start) }

// CustomRange carries an explicit caller-supplied window.
type CustomRange struct {
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

// Granularity is the trend bucket size.
type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityMonth Granularity = "month"
)

// SnapshotSource distinguishes live aggregates from synthetic demo
// data. The two are never merged.
type SnapshotSource string

const (
	SourceLive     SnapshotSource = "live"
	SourceFallback SnapshotSource = "fallback"
)

// StatsRequest is the single entry point input.
type StatsRequest struct {
	Selector    TimeRangeType `json:"selector"`
	CustomRange *CustomRange  `json:"custom_range,omitempty"`
	AgentID     string        `json:"agent_id,omitempty"`
	UseMock     bool          `json:"use_mock,omitempty"`
}

// OrderCounts partitions orders by status within the window.
type OrderCounts struct {
	Total      int64 `json:"total"`
	Pending    int64 `json:"pending"`
	Processing int64 `json:"processing"`
	Completed  int64 `json:"completed"`
	Failed     int64 `json:"failed"`
}

// AgentStats aggregates processing agents within the window.
type AgentStats struct {
	Total      int64 `json:"total"`
	Active     int64 `json:"active"`
	Revenue    int64 `json:"revenue"`
	Commission int64 `json:"commission"`
}

// ProductSales is one top-products entry, ordered by Sales descending.
type ProductSales struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Sales     int64  `json:"sales"`
	Orders    int64  `json:"orders"`
}

// MethodBreakdown is the per-payment-method slice of the window.
type MethodBreakdown struct {
	Method orderdomain.PaymentMethod `json:"method"`
	Sales  int64                     `json:"sales"`
	Orders int64                     `json:"orders"`
}

// CarrierBreakdown is the per-carrier slice of the window.
type CarrierBreakdown struct {
	Carrier orderdomain.Carrier `json:"carrier"`
	Sales   int64               `json:"sales"`
	Orders  int64               `json:"orders"`
}

// TrendPoint is one bucket of the trend series. Period is "2006-01-02"
// for daily buckets and "2006-01" for monthly ones.
type TrendPoint struct {
	Period string `json:"period"`
	Sales  int64  `json:"sales"`
	Orders int64  `json:"orders"`
}

// StatisticsSnapshot is the immutable aggregation result for one
// selector and window. Constructed fresh per request, never mutated.
type StatisticsSnapshot struct {
	Source   SnapshotSource `json:"source"`
	Selector TimeRangeType  `json:"selector"`
	Window   TimeWindow     `json:"window"`

	TotalUsers  int64 `json:"total_users"`
	NewUsers    int64 `json:"new_users"`
	ActiveUsers int64 `json:"active_users"`

	Orders OrderCounts `json:"orders"`

	TotalSales   int64 `json:"total_sales"`
	TotalRefunds int64 `json:"total_refunds"`
	NetRevenue   int64 `json:"net_revenue"`
	GrossProfit  int64 `json:"gross_profit"`

	Agents AgentStats `json:"agents"`

	TopProducts    []ProductSales     `json:"top_products"`
	PaymentMethods []MethodBreakdown  `json:"payment_methods"`
	Carriers       []CarrierBreakdown `json:"carriers"`
	Trend          []TrendPoint       `json:"trend"`
}
