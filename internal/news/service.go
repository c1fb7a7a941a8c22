// Package news maintains cached snapshots of the economic-calendar feed.
//
// Two snapshots are kept: a durable, coarse "static" snapshot refreshed
// at most once per day, and an in-memory "live" snapshot of high-value
// events refreshed hourly with jitter. Readers never block on a refresh.
package news

import (
	"context"
	"math/rand"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/KirillKCrypto/Trading-Journal-APP/internal/logging"
	"github.com/KirillKCrypto/Trading-Journal-APP/internal/models"
)

const (
	defaultFeedURL      = "https://nfs.faireconomy.media/ff_calendar_thisweek.json"
	defaultCountry      = "USD"
	staticCacheFileName = "forexfactory_static.json"

	// PlaceholderTitle marks the single synthetic event published when
	// no fetch has ever succeeded.
	PlaceholderTitle = "Не удалось получить новости"
)

// Config holds news cache configuration.
type Config struct {
	FeedURL         string
	Country         string
	RefreshInterval time.Duration
	RefreshJitter   time.Duration
	StaticMaxAge    time.Duration
	FetchTimeout    time.Duration
	CacheDir        string
}

func (c Config) withDefaults() Config {
	if c.FeedURL == "" {
		c.FeedURL = defaultFeedURL
	}
	if c.Country == "" {
		c.Country = defaultCountry
	}
	if c.RefreshInterval <= 0 {
		c.RefreshInterval = time.Hour
	}
	if c.RefreshJitter < 0 {
		c.RefreshJitter = 0
	}
	if c.StaticMaxAge <= 0 {
		c.StaticMaxAge = 24 * time.Hour
	}
	if c.FetchTimeout <= 0 {
		c.FetchTimeout = 10 * time.Second
	}
	if c.CacheDir == "" {
		c.CacheDir = "cache"
	}
	return c
}

// Service fetches and caches economic-calendar events. It owns a single
// background refresh goroutine with an explicit Start/Stop lifecycle.
type Service struct {
	cfg    Config
	client *http.Client
	logger zerolog.Logger

	mu        sync.RWMutex
	live      []models.NewsEvent
	populated bool
	static    *models.StaticSnapshot

	now func() time.Time
	rnd *rand.Rand

	startOnce sync.Once
	stop      chan struct{}
	done      chan struct{}
}

// New creates a news cache service. Call Start to begin refreshing.
func New(cfg Config, logger zerolog.Logger) *Service {
	cfg = cfg.withDefaults()
	return &Service{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.FetchTimeout},
		logger: logging.WithComponent(logger, "news"),
		now:    time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// Start loads the persisted static snapshot, performs an initial fetch,
// and launches the background refresh loop. It returns after the first
// refresh attempt completes; the attempt itself is best-effort.
func (s *Service) Start(ctx context.Context) {
	s.startOnce.Do(func() {
		s.loadStaticSnapshot()
		s.refresh(ctx)
		go s.run(ctx)
	})
}

// Stop terminates the refresh loop and waits for it to exit.
func (s *Service) Stop() {
	close(s.stop)
	<-s.done
}

// run sleeps with jitter between refreshes until stopped. A slow or
// failed fetch delays the next run but never stalls the schedule.
func (s *Service) run(ctx context.Context) {
	defer close(s.done)
	for {
		timer := time.NewTimer(s.nextDelay())
		select {
		case <-timer.C:
			s.refresh(ctx)
		case <-s.stop:
			timer.Stop()
			return
		case <-ctx.Done():
			timer.Stop()
			return
		}
	}
}

func (s *Service) nextDelay() time.Duration {
	delay := s.cfg.RefreshInterval
	if s.cfg.RefreshJitter > 0 {
		jitter := time.Duration(s.rnd.Int63n(int64(2*s.cfg.RefreshJitter))) - s.cfg.RefreshJitter
		delay += jitter
	}
	if delay < time.Second {
		delay = time.Second
	}
	return delay
}

// refresh pulls the feed once and updates both snapshots. On failure the
// previous live snapshot is retained; a placeholder is published only
// when no fetch has ever succeeded.
func (s *Service) refresh(ctx context.Context) {
	items, err := s.fetchFeed(ctx)
	if err != nil {
		logging.LogNewsRefresh(s.logger, 0, false, err)
		s.mu.Lock()
		if !s.populated && len(s.live) == 0 {
			s.live = []models.NewsEvent{{Title: PlaceholderTitle}}
		}
		s.mu.Unlock()
		return
	}

	// Live snapshot: only high-value events for the configured country,
	// in feed order. Build fully, then publish.
	live := make([]models.NewsEvent, 0, len(items))
	for _, it := range items {
		if it.Country != s.cfg.Country {
			continue
		}
		if it.Impact != models.ImpactHigh && it.Impact != models.ImpactMedium {
			continue
		}
		live = append(live, models.NewsEvent{
			Date:     it.Date,
			Title:    it.Title,
			Impact:   it.Impact,
			Country:  it.Country,
			Forecast: orDefault(it.Forecast, "нет данных"),
			Previous: orDefault(it.Previous, "нет данных"),
			Actual:   orDefault(it.Actual, "ещё не вышло"),
		})
	}

	staticUpdated := s.maybeUpdateStatic(items)

	s.mu.Lock()
	s.live = live
	s.populated = true
	s.mu.Unlock()

	logging.LogNewsRefresh(s.logger, len(live), staticUpdated, nil)
}

// maybeUpdateStatic rewrites the static snapshot when it is absent or
// older than the configured maximum age, persisting it write-through.
func (s *Service) maybeUpdateStatic(items []feedItem) bool {
	now := s.now().Unix()

	s.mu.RLock()
	current := s.static
	s.mu.RUnlock()

	if current != nil && now-current.Timestamp <= int64(s.cfg.StaticMaxAge/time.Second) {
		return false
	}

	events := make([]models.StaticEvent, 0, len(items))
	for _, it := range items {
		if it.Country != s.cfg.Country {
			continue
		}
		events = append(events, models.StaticEvent{
			Date:    it.Date,
			Title:   it.Title,
			Impact:  it.Impact,
			Country: it.Country,
		})
	}

	snapshot := &models.StaticSnapshot{Timestamp: now, Events: events}

	s.mu.Lock()
	s.static = snapshot
	s.mu.Unlock()

	if err := s.saveStaticSnapshot(snapshot); err != nil {
		s.logger.Error().Err(err).Msg("Failed to persist static snapshot")
	}
	return true
}

// Latest returns the live snapshot in feed order, truncated to limit
// when limit is positive. The read never blocks an in-progress refresh.
func (s *Service) Latest(limit int) []models.NewsEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()

	events := make([]models.NewsEvent, len(s.live))
	copy(events, s.live)
	if limit > 0 && limit < len(events) {
		events = events[:limit]
	}
	return events
}

// StaticEvents returns the current static snapshot, which may be nil
// before the first successful load.
func (s *Service) StaticEvents() *models.StaticSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.static
}

func (s *Service) staticPath() string {
	return filepath.Join(s.cfg.CacheDir, staticCacheFileName)
}

func (s *Service) loadStaticSnapshot() {
	snapshot, err := readStaticSnapshot(s.staticPath())
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn().Err(err).Msg("Failed to load static snapshot")
		}
		return
	}

	s.mu.Lock()
	s.static = snapshot
	s.mu.Unlock()
	s.logger.Info().Int("events", len(snapshot.Events)).Msg("Static snapshot loaded from disk")
}

func (s *Service) saveStaticSnapshot(snapshot *models.StaticSnapshot) error {
	if err := os.MkdirAll(s.cfg.CacheDir, 0755); err != nil {
		return err
	}
	return writeStaticSnapshot(s.staticPath(), snapshot)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
