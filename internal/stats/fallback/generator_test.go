package fallback

import (
	"reflect"
	"testing"
	"time"

	"github.com/haixin886/recharge-hub-system-sub001/internal/clock"
	statsdomain "github.com/haixin886/recharge-hub-system-sub001/internal/stats/domain"
)

// Wednesday 2024-05-15.
var fixedClock = clock.Fixed{Instant: time.Date(2024, 5, 15, 10, 0, 0, 0, time.UTC)}

func TestSnapshotScalesBySelector(t *testing.T) {
	gen := NewGenerator(fixedClock)

	today := gen.Snapshot(statsdomain.RangeToday, nil)
	if today.Orders.Total != 3250 {
		t.Fatalf("expected today baseline of 3250 orders, got %d", today.Orders.Total)
	}

	week := gen.Snapshot(statsdomain.RangeWeek, nil)
	if week.Orders.Total != 3250*3 {
		t.Fatalf("expected week orders 9750, got %d", week.Orders.Total)
	}
	if week.TotalSales != today.TotalSales*3 {
		t.Fatalf("expected week sales to triple, got %d", week.TotalSales)
	}

	month := gen.Snapshot(statsdomain.RangeMonth, nil)
	if month.Orders.Total != 3250*8 {
		t.Fatalf("expected month orders 26000, got %d", month.Orders.Total)
	}

	lastMonth := gen.Snapshot(statsdomain.RangeLastMonth, nil)
	if lastMonth.Orders.Total != 3250*7 {
		t.Fatalf("expected last month orders 22750, got %d", lastMonth.Orders.Total)
	}
}

func TestSnapshotLastMonthNewUsers(t *testing.T) {
	gen := NewGenerator(fixedClock)

	snap := gen.Snapshot(statsdomain.RangeLastMonth, nil)
	if snap.NewUsers != 162 {
		t.Fatalf("expected 162 new users (180 * 0.9), got %d", snap.NewUsers)
	}
}

func TestSnapshotIsDeterministic(t *testing.T) {
	gen := NewGenerator(fixedClock)

	first := gen.Snapshot(statsdomain.RangeWeek, nil)
	second := gen.Snapshot(statsdomain.RangeWeek, nil)
	if !reflect.DeepEqual(first, second) {
		t.Fatal("expected identical snapshots for the same selector and instant")
	}
}

func TestSnapshotKeepsNetRevenueInvariant(t *testing.T) {
	gen := NewGenerator(fixedClock)

	for _, selector := range []statsdomain.TimeRangeType{
		statsdomain.RangeToday,
		statsdomain.RangeWeek,
		statsdomain.RangeMonth,
		statsdomain.RangeLastMonth,
	} {
		snap := gen.Snapshot(selector, nil)
		if snap.NetRevenue != snap.TotalSales-snap.TotalRefunds {
			t.Fatalf("%s: net %d != sales %d - refunds %d",
				selector, snap.NetRevenue, snap.TotalSales, snap.TotalRefunds)
		}
	}
}

func TestSnapshotIsMarkedFallback(t *testing.T) {
	gen := NewGenerator(fixedClock)

	snap := gen.Snapshot(statsdomain.RangeToday, nil)
	if snap.Source != statsdomain.SourceFallback {
		t.Fatalf("expected fallback source, got %s", snap.Source)
	}
	if len(snap.TopProducts) != 5 {
		t.Fatalf("expected 5 demo products, got %d", len(snap.TopProducts))
	}
}

func TestSnapshotTrendCoversWindow(t *testing.T) {
	gen := NewGenerator(fixedClock)

	snap := gen.Snapshot(statsdomain.RangeToday, nil)
	if len(snap.Trend) != 1 {
		t.Fatalf("expected a single trend bucket for today, got %d", len(snap.Trend))
	}
	if snap.Trend[0].Period != "2024-05-15" {
		t.Fatalf("unexpected trend period %s", snap.Trend[0].Period)
	}

	// Wednesday: Monday through Wednesday inclusive.
	week := gen.Snapshot(statsdomain.RangeWeek, nil)
	if len(week.Trend) != 3 {
		t.Fatalf("expected 3 week-to-date buckets, got %d", len(week.Trend))
	}
	for _, point := range week.Trend {
		if point.Sales <= 0 || point.Orders <= 0 {
			t.Fatalf("expected positive synthetic trend, got %+v", point)
		}
	}
}

func TestSnapshotSurvivesBadCustomRange(t *testing.T) {
	gen := NewGenerator(fixedClock)

	snap := gen.Snapshot(statsdomain.RangeCustom, nil)
	if snap == nil {
		t.Fatal("expected a snapshot even for an unusable range")
	}
	if snap.Selector != statsdomain.RangeToday {
		t.Fatalf("expected fallback to today's window, got %s", snap.Selector)
	}
}
