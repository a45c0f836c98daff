package service

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/haixin886/recharge-hub-system-sub001/internal/clock"
	"github.com/haixin886/recharge-hub-system-sub001/internal/config"
	statsdomain "github.com/haixin886/recharge-hub-system-sub001/internal/stats/domain"
	"github.com/haixin886/recharge-hub-system-sub001/internal/stats/fallback"
	"github.com/haixin886/recharge-hub-system-sub001/internal/stats/ledger"
	"go.uber.org/zap"
)

// Wednesday 2024-05-15.
var testInstant = time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC)

// fakeReader answers every metric from fixed values. When gate is set,
// reads for windows longer than gateSpan block until the gate closes;
// started is closed on the first blocked read.
type fakeReader struct {
	mu    sync.Mutex
	calls int

	counts   statsdomain.OrderCounts
	sales    int64
	refunds  int64
	profit   int64
	users    int64
	newUsers int64
	active   int64
	agents   ledger.AgentTotals
	products []statsdomain.ProductSales
	methods  []statsdomain.MethodBreakdown
	carriers []statsdomain.CarrierBreakdown
	trend    []ledger.TrendRow

	err error

	gate      chan struct{}
	gateSpan  time.Duration
	started   chan struct{}
	startOnce sync.Once
}

func (f *fakeReader) tick(w statsdomain.TimeWindow) error {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.gate != nil && w.Duration() > f.gateSpan {
		f.startOnce.Do(func() { close(f.started) })
		<-f.gate
	}
	return f.err
}

func (f *fakeReader) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeReader) CountOrdersByStatus(_ context.Context, w statsdomain.TimeWindow, _ *snowflake.ID) (statsdomain.OrderCounts, error) {
	return f.counts, f.tick(w)
}

func (f *fakeReader) CompletedSales(_ context.Context, w statsdomain.TimeWindow, _ *snowflake.ID) (int64, error) {
	return f.sales, f.tick(w)
}

func (f *fakeReader) RefundTotal(_ context.Context, w statsdomain.TimeWindow, _ *snowflake.ID) (int64, error) {
	return f.refunds, f.tick(w)
}

func (f *fakeReader) GrossProfit(_ context.Context, w statsdomain.TimeWindow, _ *snowflake.ID) (int64, error) {
	return f.profit, f.tick(w)
}

func (f *fakeReader) TotalUsers(context.Context) (int64, error) {
	return f.users, f.tick(statsdomain.TimeWindow{})
}

func (f *fakeReader) NewUsers(_ context.Context, w statsdomain.TimeWindow) (int64, error) {
	return f.newUsers, f.tick(w)
}

func (f *fakeReader) ActiveUsers(_ context.Context, w statsdomain.TimeWindow) (int64, error) {
	return f.active, f.tick(w)
}

func (f *fakeReader) AgentTotals(_ context.Context, w statsdomain.TimeWindow) (ledger.AgentTotals, error) {
	return f.agents, f.tick(w)
}

func (f *fakeReader) TopProducts(_ context.Context, w statsdomain.TimeWindow, _ *snowflake.ID, _ int) ([]statsdomain.ProductSales, error) {
	return f.products, f.tick(w)
}

func (f *fakeReader) MethodBreakdown(_ context.Context, w statsdomain.TimeWindow, _ *snowflake.ID) ([]statsdomain.MethodBreakdown, error) {
	return f.methods, f.tick(w)
}

func (f *fakeReader) CarrierBreakdown(_ context.Context, w statsdomain.TimeWindow, _ *snowflake.ID) ([]statsdomain.CarrierBreakdown, error) {
	return f.carriers, f.tick(w)
}

func (f *fakeReader) TrendRows(_ context.Context, w statsdomain.TimeWindow, _ *snowflake.ID) ([]ledger.TrendRow, error) {
	return f.trend, f.tick(w)
}

func newTestService(t *testing.T, reader ledger.Reader, fallbackEnabled bool) *Service {
	t.Helper()

	clk := clock.Fixed{Instant: testInstant}
	svc := NewService(ServiceParam{
		Log:      zap.NewNop(),
		Clock:    clk,
		Reader:   reader,
		Fallback: fallback.NewGenerator(clk),
		Config: config.Config{
			StatsFallbackEnabled: fallbackEnabled,
			StatsCacheTTL:        time.Minute,
		},
	})
	impl, ok := svc.(*Service)
	if !ok {
		t.Fatalf("unexpected service type %T", svc)
	}
	return impl
}

func TestGetStatisticsFoldsLiveSnapshot(t *testing.T) {
	reader := &fakeReader{
		counts:   statsdomain.OrderCounts{Total: 10, Pending: 1, Processing: 2, Completed: 6, Failed: 1},
		sales:    500_000,
		refunds:  20_000,
		profit:   45_000,
		users:    300,
		newUsers: 12,
		active:   40,
		agents:   ledger.AgentTotals{Total: 5, Active: 3, Revenue: 200_000, Commission: 6_000},
	}
	svc := newTestService(t, reader, true)

	snap, err := svc.GetStatistics(context.Background(), statsdomain.StatsRequest{Selector: statsdomain.RangeToday})
	if err != nil {
		t.Fatalf("get statistics: %v", err)
	}

	if snap.Source != statsdomain.SourceLive {
		t.Fatalf("expected live source, got %s", snap.Source)
	}
	if snap.TotalSales != 500_000 || snap.TotalRefunds != 20_000 {
		t.Fatalf("unexpected totals: %+v", snap)
	}
	if snap.NetRevenue != 480_000 {
		t.Fatalf("expected net revenue 480000, got %d", snap.NetRevenue)
	}
	if snap.Orders.Total != 10 || snap.Orders.Completed != 6 {
		t.Fatalf("unexpected order counts: %+v", snap.Orders)
	}
	if snap.TopProducts == nil || snap.PaymentMethods == nil || snap.Carriers == nil {
		t.Fatal("breakdown slices must be empty, not nil")
	}
	if len(snap.Trend) != 1 || snap.Trend[0].Period != "2024-05-15" {
		t.Fatalf("expected one zero-filled trend bucket for today, got %+v", snap.Trend)
	}
}

func TestGetStatisticsZeroDayHasZeroTotals(t *testing.T) {
	svc := newTestService(t, &fakeReader{}, true)

	snap, err := svc.GetStatistics(context.Background(), statsdomain.StatsRequest{Selector: statsdomain.RangeToday})
	if err != nil {
		t.Fatalf("get statistics: %v", err)
	}

	if snap.Orders.Total != 0 || snap.TotalSales != 0 || snap.NetRevenue != 0 {
		t.Fatalf("expected zero totals, got %+v", snap)
	}
	if len(snap.TopProducts) != 0 {
		t.Fatalf("expected empty top products, got %+v", snap.TopProducts)
	}
	if len(snap.Trend) != 1 || snap.Trend[0].Orders != 0 || snap.Trend[0].Sales != 0 {
		t.Fatalf("expected one zero trend bucket, got %+v", snap.Trend)
	}
}

func TestGetStatisticsClampsNegativeAggregates(t *testing.T) {
	svc := newTestService(t, &fakeReader{sales: -100, refunds: -50, users: -1}, true)

	snap, err := svc.GetStatistics(context.Background(), statsdomain.StatsRequest{Selector: statsdomain.RangeToday})
	if err != nil {
		t.Fatalf("get statistics: %v", err)
	}
	if snap.TotalSales != 0 || snap.TotalRefunds != 0 || snap.TotalUsers != 0 || snap.NetRevenue != 0 {
		t.Fatalf("expected clamped totals, got %+v", snap)
	}
}

func TestGetStatisticsIsIdempotent(t *testing.T) {
	reader := &fakeReader{sales: 77_000, counts: statsdomain.OrderCounts{Total: 7, Completed: 7}}
	svc := newTestService(t, reader, true)

	first, err := svc.GetStatistics(context.Background(), statsdomain.StatsRequest{Selector: statsdomain.RangeWeek})
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	second, err := svc.GetStatistics(context.Background(), statsdomain.StatsRequest{Selector: statsdomain.RangeWeek})
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatal("expected identical snapshots for repeated identical requests")
	}
}

func TestGetStatisticsCachesWindow(t *testing.T) {
	reader := &fakeReader{sales: 10_000}
	svc := newTestService(t, reader, true)

	if _, err := svc.GetStatistics(context.Background(), statsdomain.StatsRequest{Selector: statsdomain.RangeToday}); err != nil {
		t.Fatalf("first call: %v", err)
	}
	after := reader.callCount()

	snap, err := svc.GetStatistics(context.Background(), statsdomain.StatsRequest{Selector: statsdomain.RangeToday})
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if reader.callCount() != after {
		t.Fatalf("expected cache hit, ledger read %d more times", reader.callCount()-after)
	}
	if snap.TotalSales != 10_000 {
		t.Fatalf("unexpected cached snapshot: %+v", snap)
	}
}

func TestGetStatisticsInvalidRangeNeverTouchesLedger(t *testing.T) {
	reader := &fakeReader{}
	svc := newTestService(t, reader, true)

	_, err := svc.GetStatistics(context.Background(), statsdomain.StatsRequest{
		Selector: statsdomain.RangeCustom,
		CustomRange: &statsdomain.CustomRange{
			StartDate: testInstant,
			EndDate:   testInstant.AddDate(0, 0, -7),
		},
	})
	if !errors.Is(err, statsdomain.ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
	if reader.callCount() != 0 {
		t.Fatalf("expected no ledger reads, got %d", reader.callCount())
	}
}

func TestGetStatisticsInvalidAgent(t *testing.T) {
	svc := newTestService(t, &fakeReader{}, true)

	_, err := svc.GetStatistics(context.Background(), statsdomain.StatsRequest{
		Selector: statsdomain.RangeToday,
		AgentID:  "not-a-snowflake",
	})
	if !errors.Is(err, statsdomain.ErrInvalidAgent) {
		t.Fatalf("expected ErrInvalidAgent, got %v", err)
	}
}

func TestGetStatisticsFallsBackWhenLedgerDown(t *testing.T) {
	reader := &fakeReader{err: statsdomain.ErrLedgerUnavailable}
	svc := newTestService(t, reader, true)

	snap, err := svc.GetStatistics(context.Background(), statsdomain.StatsRequest{Selector: statsdomain.RangeWeek})
	if err != nil {
		t.Fatalf("expected fallback, got error %v", err)
	}
	if snap.Source != statsdomain.SourceFallback {
		t.Fatalf("expected fallback source, got %s", snap.Source)
	}
	if snap.Orders.Total != 3250*3 {
		t.Fatalf("expected synthetic week totals, got %d", snap.Orders.Total)
	}
}

func TestGetStatisticsSurfacesLedgerErrorWhenFallbackDisabled(t *testing.T) {
	reader := &fakeReader{err: statsdomain.ErrLedgerUnavailable}
	svc := newTestService(t, reader, false)

	_, err := svc.GetStatistics(context.Background(), statsdomain.StatsRequest{Selector: statsdomain.RangeWeek})
	if !errors.Is(err, statsdomain.ErrLedgerUnavailable) {
		t.Fatalf("expected ErrLedgerUnavailable, got %v", err)
	}
}

func TestGetStatisticsUseMockSkipsLedger(t *testing.T) {
	reader := &fakeReader{}
	svc := newTestService(t, reader, true)

	snap, err := svc.GetStatistics(context.Background(), statsdomain.StatsRequest{
		Selector: statsdomain.RangeMonth,
		UseMock:  true,
	})
	if err != nil {
		t.Fatalf("get statistics: %v", err)
	}
	if snap.Source != statsdomain.SourceFallback {
		t.Fatalf("expected fallback source, got %s", snap.Source)
	}
	if reader.callCount() != 0 {
		t.Fatalf("expected no ledger reads in demo mode, got %d", reader.callCount())
	}
}

func TestApplyDropsSupersededResults(t *testing.T) {
	svc := newTestService(t, &fakeReader{}, true)

	monthSeq := svc.begin(ScopeDashboard)
	todaySeq := svc.begin(ScopeDashboard)

	todaySnap := &statsdomain.StatisticsSnapshot{Selector: statsdomain.RangeToday}
	monthSnap := &statsdomain.StatisticsSnapshot{Selector: statsdomain.RangeMonth}

	if !svc.apply(ScopeDashboard, todaySeq, todaySnap) {
		t.Fatal("newest request must apply")
	}
	// The earlier request finishes after the newer one; it must not win.
	if svc.apply(ScopeDashboard, monthSeq, monthSnap) {
		t.Fatal("superseded request must not apply")
	}

	current, ok := svc.Current(ScopeDashboard)
	if !ok || current.Selector != statsdomain.RangeToday {
		t.Fatalf("expected today's snapshot to stay visible, got %+v", current)
	}
}

func TestLastRequestWinsEndToEnd(t *testing.T) {
	reader := &fakeReader{
		sales:    1_000,
		gate:     make(chan struct{}),
		gateSpan: 48 * time.Hour,
		started:  make(chan struct{}),
	}
	svc := newTestService(t, reader, true)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		// Month reads block on the gate until released below.
		snap, err := svc.GetStatistics(context.Background(), statsdomain.StatsRequest{Selector: statsdomain.RangeMonth})
		if err != nil {
			t.Errorf("month request: %v", err)
			return
		}
		// The superseded caller still receives its own answer.
		if snap.Selector != statsdomain.RangeMonth {
			t.Errorf("expected month snapshot, got %s", snap.Selector)
		}
	}()

	<-reader.started

	if _, err := svc.GetStatistics(context.Background(), statsdomain.StatsRequest{Selector: statsdomain.RangeToday}); err != nil {
		t.Fatalf("today request: %v", err)
	}

	close(reader.gate)
	wg.Wait()

	current, ok := svc.Current(ScopeDashboard)
	if !ok {
		t.Fatal("expected a visible snapshot")
	}
	if current.Selector != statsdomain.RangeToday {
		t.Fatalf("late month result must not become visible, got %s", current.Selector)
	}
}

func TestScopesAreIndependent(t *testing.T) {
	reader := &fakeReader{sales: 5_000}
	svc := newTestService(t, reader, true)

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}
	agentID := node.Generate().String()

	if _, err := svc.GetStatistics(context.Background(), statsdomain.StatsRequest{Selector: statsdomain.RangeToday}); err != nil {
		t.Fatalf("dashboard request: %v", err)
	}
	if _, err := svc.GetStatistics(context.Background(), statsdomain.StatsRequest{
		Selector: statsdomain.RangeWeek,
		AgentID:  agentID,
	}); err != nil {
		t.Fatalf("agent request: %v", err)
	}

	dashboard, ok := svc.Current(ScopeDashboard)
	if !ok || dashboard.Selector != statsdomain.RangeToday {
		t.Fatalf("unexpected dashboard snapshot: %+v", dashboard)
	}
	agent, ok := svc.Current("agent:" + agentID)
	if !ok || agent.Selector != statsdomain.RangeWeek {
		t.Fatalf("unexpected agent snapshot: %+v", agent)
	}
}
