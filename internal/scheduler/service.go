package scheduler

import (
	"context"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"postpilot/internal/slot"
	"postpilot/internal/store"
	logx "postpilot/pkg/logx"
)

// Config controls the scheduler service.
type Config struct {
	// HorizonDays bounds the candidate search. Defaults to 7.
	HorizonDays int
	// MinGapHours is the default spacing between cross-platform posts.
	MinGapHours int
	// SaveTimeout bounds store writes, detached from caller cancellation.
	SaveTimeout time.Duration
	// Timezone is the default IANA zone for local-time labels.
	Timezone string
	// PlatformZones overrides the label zone per platform.
	PlatformZones map[string]string
	// PlatformDefaults adds configured slot tables on top of the compiled-in
	// ones. Platforms listed only here still count as known.
	PlatformDefaults map[string][]slot.Key
}

func (c Config) withDefaults() Config {
	if c.HorizonDays <= 0 {
		c.HorizonDays = 7
	}
	if c.MinGapHours <= 0 {
		c.MinGapHours = 2
	}
	if c.SaveTimeout <= 0 {
		c.SaveTimeout = 5 * time.Second
	}
	return c
}

// Stats are cumulative counters since process start, included in the ops
// digest so degraded persistence is visible rather than silently logged.
type Stats struct {
	Records       uint64
	Fallbacks     uint64
	SaveFailures  uint64
	LoadFallbacks uint64
	Explorations  uint64
}

// Service owns the slot grid and serializes all mutation through its lock.
// Reads (scoring, candidates, analytics) run concurrently under RLock.
type Service struct {
	cfg Config
	st  store.Store // nil means memory-only
	log logx.Logger
	tz  TimezoneResolver

	mu   sync.RWMutex
	grid slot.Grid

	// nowFn and randSrc are swapped by tests for determinism.
	nowFn   func() time.Time
	randSrc rand.Source

	records       atomic.Uint64
	fallbacks     atomic.Uint64
	saveFailures  atomic.Uint64
	loadFallbacks atomic.Uint64
	explorations  atomic.Uint64
}

// New builds the service. st may be nil for memory-only operation.
// Call Init before serving requests.
func New(cfg Config, st store.Store, log logx.Logger) *Service {
	cfg = cfg.withDefaults()
	if log.IsZero() {
		log = logx.Nop()
	}
	return &Service{
		cfg:   cfg,
		st:    st,
		log:   log,
		tz:    NewZoneResolver(cfg.Timezone, cfg.PlatformZones, log),
		grid:  slot.Grid{},
		nowFn: func() time.Time { return time.Now().UTC() },
	}
}

// Init loads persisted slots and seeds platform defaults on top. A load
// failure is absorbed: the compiled-in defaults become the working grid and
// the failure is counted. Init never hard-fails; recommendations must always
// be available for known platforms.
func (s *Service) Init(ctx context.Context) {
	now := s.nowFn()

	var g slot.Grid
	if s.st != nil {
		loaded, err := s.st.Load(ctx)
		if err != nil {
			s.loadFallbacks.Add(1)
			s.log.Warn("slot store load failed; using defaults", logx.Err(err))
		} else {
			g = loaded
		}
	}
	if g == nil {
		g = slot.Grid{}
	}

	// Fallback guarantee: every known platform has at least its default slots.
	seeded := 0
	for _, platform := range slot.DefaultPlatforms() {
		seeded += slot.SeedDefaults(g, platform, now)
	}
	for platform, keys := range s.cfg.PlatformDefaults {
		seeded += slot.SeedKeys(g, platform, keys, now)
	}

	s.mu.Lock()
	s.grid = g
	s.mu.Unlock()

	s.log.Info("slot grid ready",
		logx.Int("slots", g.Len()),
		logx.Int("seeded", seeded),
	)
}

// Stats returns a snapshot of the service counters.
func (s *Service) Stats() Stats {
	return Stats{
		Records:       s.records.Load(),
		Fallbacks:     s.fallbacks.Load(),
		SaveFailures:  s.saveFailures.Load(),
		LoadFallbacks: s.loadFallbacks.Load(),
		Explorations:  s.explorations.Load(),
	}
}

// SaveNow persists a snapshot of the grid. Used by the maintenance job and
// after every recorded observation. Failures are logged and counted, never
// propagated: the in-memory grid stays authoritative.
func (s *Service) SaveNow(ctx context.Context) {
	if s.st == nil {
		return
	}
	s.mu.RLock()
	snapshot := s.grid.Clone()
	s.mu.RUnlock()

	// Detach from the caller: a cancelled request must not abort durability.
	sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.SaveTimeout)
	defer cancel()

	if err := s.st.Save(sctx, snapshot); err != nil {
		s.saveFailures.Add(1)
		s.log.Warn("slot store save failed; in-memory state stays authoritative", logx.Err(err))
	}
}
