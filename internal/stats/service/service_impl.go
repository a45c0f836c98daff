package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/bwmarrin/snowflake"
	"github.com/haixin886/recharge-hub-system-sub001/internal/cache"
	"github.com/haixin886/recharge-hub-system-sub001/internal/clock"
	"github.com/haixin886/recharge-hub-system-sub001/internal/config"
	"github.com/haixin886/recharge-hub-system-sub001/internal/observability/metrics"
	statsdomain "github.com/haixin886/recharge-hub-system-sub001/internal/stats/domain"
	"github.com/haixin886/recharge-hub-system-sub001/internal/stats/fallback"
	"github.com/haixin886/recharge-hub-system-sub001/internal/stats/ledger"
	"github.com/haixin886/recharge-hub-system-sub001/internal/stats/window"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type ServiceParam struct {
	fx.In

	Log      *zap.Logger
	Clock    clock.Clock
	Reader   ledger.Reader
	Fallback *fallback.Generator
	Config   config.Config
}

// Service resolves windows, fans out ledger reads, folds snapshots and
// keeps last-request-wins bookkeeping per scope.
type Service struct {
	log      *zap.Logger
	clock    clock.Clock
	reader   ledger.Reader
	fallback *fallback.Generator
	cfg      config.Config
	cache    *cache.TTLCache[string, *statsdomain.StatisticsSnapshot]
	metrics  *metrics.StatsMetrics

	mu      sync.Mutex
	seq     map[string]uint64
	applied map[string]uint64
	current map[string]*statsdomain.StatisticsSnapshot
}

func NewService(p ServiceParam) statsdomain.Service {
	return &Service{
		log:      p.Log.Named("stats.service"),
		clock:    p.Clock,
		reader:   p.Reader,
		fallback: p.Fallback,
		cfg:      p.Config,
		cache:    cache.NewTTLCache[string, *statsdomain.StatisticsSnapshot](),
		metrics:  metrics.Stats(),
		seq:      make(map[string]uint64),
		applied:  make(map[string]uint64),
		current:  make(map[string]*statsdomain.StatisticsSnapshot),
	}
}

func (s *Service) GetStatistics(ctx context.Context, req statsdomain.StatsRequest) (*statsdomain.StatisticsSnapshot, error) {
	started := s.clock.Now()

	processorID, scope, err := s.scopeFor(req)
	if err != nil {
		return nil, err
	}

	// Window resolution happens before any query is issued; an invalid
	// custom range surfaces immediately and never falls back.
	win, err := window.Resolve(s.clock.Now(), req.Selector, req.CustomRange)
	if err != nil {
		return nil, err
	}

	seq := s.begin(scope)

	if req.UseMock {
		snap := s.fallback.Snapshot(req.Selector, req.CustomRange)
		s.apply(scope, seq, snap)
		s.metrics.IncSnapshotRequest("fallback", "ok")
		return snap, nil
	}

	key := cacheKey(req.Selector, win, req.AgentID)
	if snap, ok := s.cache.Get(key); ok {
		s.apply(scope, seq, snap)
		s.metrics.IncSnapshotRequest("cache", "ok")
		return snap, nil
	}

	snap, err := s.aggregate(ctx, req.Selector, win, processorID)
	if err != nil {
		if errors.Is(err, statsdomain.ErrLedgerUnavailable) && s.cfg.StatsFallbackEnabled {
			s.log.Warn("ledger unavailable, serving fallback data",
				zap.String("selector", string(req.Selector)),
				zap.Error(err),
			)
			snap = s.fallback.Snapshot(req.Selector, req.CustomRange)
			s.apply(scope, seq, snap)
			s.metrics.IncSnapshotRequest("fallback", "ok")
			return snap, nil
		}
		s.metrics.IncSnapshotRequest("live", "error")
		return nil, err
	}

	if s.apply(scope, seq, snap) {
		s.cache.Set(key, snap, s.cfg.StatsCacheTTL)
	} else {
		// A newer request for this scope has already been issued; the
		// caller still gets its answer but the visible snapshot and the
		// cache keep the newer one.
		s.metrics.IncStaleDiscarded()
		s.log.Debug("stale snapshot discarded",
			zap.String("scope", scope),
			zap.Uint64("seq", seq),
		)
	}

	s.metrics.IncSnapshotRequest("live", "ok")
	s.metrics.ObserveSnapshotDuration(string(req.Selector), s.clock.Now().Sub(started))
	return snap, nil
}

// Current returns the last applied snapshot for a scope.
func (s *Service) Current(scope string) (*statsdomain.StatisticsSnapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, ok := s.current[scope]
	return snap, ok
}

// ScopeDashboard is the shared admin dashboard scope.
const ScopeDashboard = "dashboard"

func (s *Service) scopeFor(req statsdomain.StatsRequest) (*snowflake.ID, string, error) {
	agentID := strings.TrimSpace(req.AgentID)
	if agentID == "" {
		return nil, ScopeDashboard, nil
	}
	id, err := snowflake.ParseString(agentID)
	if err != nil {
		return nil, "", statsdomain.ErrInvalidAgent
	}
	return &id, "agent:" + agentID, nil
}

// begin issues the next request sequence for a scope.
func (s *Service) begin(scope string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq[scope]++
	return s.seq[scope]
}

// apply installs a snapshot as the scope's visible result unless a
// newer request has been issued or applied since. Completion order
// does not matter, only issue order.
func (s *Service) apply(scope string, seq uint64, snap *statsdomain.StatisticsSnapshot) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq < s.seq[scope] || seq < s.applied[scope] {
		return false
	}
	s.applied[scope] = seq
	s.current[scope] = snap
	return true
}

func cacheKey(selector statsdomain.TimeRangeType, w statsdomain.TimeWindow, agentID string) string {
	return fmt.Sprintf("%s|%d|%d|%s", selector, w.Start.Unix(), w.End.Unix(), agentID)
}
