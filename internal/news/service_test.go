package news

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/KirillKCrypto/Trading-Journal-APP/internal/errors"
	"github.com/KirillKCrypto/Trading-Journal-APP/internal/models"
)

var sampleFeed = []feedItem{
	{Date: "2025-07-10T12:30:00", Title: "CPI m/m", Impact: "High", Country: "USD", Forecast: "0.3%"},
	{Date: "2025-07-10T14:00:00", Title: "Crude Oil Inventories", Impact: "Medium", Country: "USD"},
	{Date: "2025-07-10T08:00:00", Title: "German ZEW", Impact: "High", Country: "EUR"},
	{Date: "2025-07-11T15:00:00", Title: "Consumer Sentiment", Impact: "Low", Country: "USD"},
}

func feedServer(t *testing.T, items []feedItem) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewEncoder(w).Encode(items))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestService(t *testing.T, feedURL string) *Service {
	t.Helper()
	return New(Config{
		FeedURL:  feedURL,
		CacheDir: t.TempDir(),
	}, zerolog.Nop())
}

func TestRefreshFiltersFeed(t *testing.T) {
	srv := feedServer(t, sampleFeed)
	s := newTestService(t, srv.URL)

	s.refresh(context.Background())

	live := s.Latest(0)
	require.Len(t, live, 2, "only High/Medium USD events belong in the live snapshot")
	assert.Equal(t, "CPI m/m", live[0].Title)
	assert.Equal(t, "Crude Oil Inventories", live[1].Title)
	assert.Equal(t, "0.3%", live[0].Forecast)
	assert.Equal(t, "нет данных", live[1].Forecast)
	assert.Equal(t, "ещё не вышло", live[0].Actual)

	// The static snapshot keeps every impact level for the country.
	static := s.StaticEvents()
	require.NotNil(t, static)
	require.Len(t, static.Events, 3)
	assert.Equal(t, "Consumer Sentiment", static.Events[2].Title)

	// And it is persisted write-through.
	_, err := os.Stat(filepath.Join(s.cfg.CacheDir, staticCacheFileName))
	assert.NoError(t, err)
}

func TestRefreshFailureKeepsPreviousSnapshot(t *testing.T) {
	var failing atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if failing.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		require.NoError(t, json.NewEncoder(w).Encode(sampleFeed))
	}))
	t.Cleanup(srv.Close)

	s := newTestService(t, srv.URL)
	s.refresh(context.Background())
	require.Len(t, s.Latest(0), 2)

	failing.Store(true)
	s.refresh(context.Background())

	live := s.Latest(0)
	require.Len(t, live, 2, "a failed refresh must not discard the previous snapshot")
	assert.Equal(t, "CPI m/m", live[0].Title)
}

func TestRefreshPlaceholderBeforeFirstSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	s := newTestService(t, srv.URL)
	s.refresh(context.Background())

	live := s.Latest(0)
	require.Len(t, live, 1)
	assert.Equal(t, PlaceholderTitle, live[0].Title)
}

func TestStaticSnapshotStaleness(t *testing.T) {
	srv := feedServer(t, sampleFeed)
	s := newTestService(t, srv.URL)

	base := time.Date(2025, 7, 10, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return base }

	s.refresh(context.Background())
	first := s.StaticEvents()
	require.NotNil(t, first)
	assert.Equal(t, base.Unix(), first.Timestamp)

	// A fresh snapshot is not rewritten within the max age.
	s.now = func() time.Time { return base.Add(time.Hour) }
	s.refresh(context.Background())
	assert.Equal(t, base.Unix(), s.StaticEvents().Timestamp)

	// Past the max age it is rebuilt.
	stale := base.Add(25 * time.Hour)
	s.now = func() time.Time { return stale }
	s.refresh(context.Background())
	assert.Equal(t, stale.Unix(), s.StaticEvents().Timestamp)
}

func TestStaticSnapshotLoadedOnStart(t *testing.T) {
	srv := feedServer(t, nil)
	dir := t.TempDir()

	snapshot := &models.StaticSnapshot{
		Timestamp: time.Now().Unix(),
		Events:    []models.StaticEvent{{Date: "2025-07-09", Title: "FOMC", Impact: "High", Country: "USD"}},
	}
	require.NoError(t, writeStaticSnapshot(filepath.Join(dir, staticCacheFileName), snapshot))

	s := New(Config{FeedURL: srv.URL, CacheDir: dir}, zerolog.Nop())
	s.loadStaticSnapshot()

	got := s.StaticEvents()
	require.NotNil(t, got)
	require.Len(t, got.Events, 1)
	assert.Equal(t, "FOMC", got.Events[0].Title)
}

func TestLatestLimit(t *testing.T) {
	srv := feedServer(t, sampleFeed)
	s := newTestService(t, srv.URL)
	s.refresh(context.Background())

	assert.Len(t, s.Latest(1), 1)
	assert.Len(t, s.Latest(0), 2)
	assert.Len(t, s.Latest(10), 2)
}

func TestStartStop(t *testing.T) {
	srv := feedServer(t, sampleFeed)
	s := newTestService(t, srv.URL)

	s.Start(context.Background())
	require.Len(t, s.Latest(0), 2, "Start performs an initial refresh")

	stopped := make(chan struct{})
	go func() {
		s.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-time.After(5 * time.Second):
		t.Fatal("Stop did not terminate the refresh loop")
	}
}

func TestFetchRejectedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	s := newTestService(t, srv.URL)
	_, err := s.fetchOnce(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrFeedUnavailable)

	var ferr *apperrors.FeedError
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, http.StatusServiceUnavailable, ferr.StatusCode)
}
