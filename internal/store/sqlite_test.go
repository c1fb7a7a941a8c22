package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	apperrors "github.com/KirillKCrypto/Trading-Journal-APP/internal/errors"
	"github.com/KirillKCrypto/Trading-Journal-APP/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testTrade(date time.Time, symbol string) *models.Trade {
	return &models.Trade{
		Date:       date,
		Symbol:     symbol,
		Session:    "Лондон",
		Position:   "intraday",
		Direction:  "long",
		Risk:       0.01,
		RR:         2,
		ResultType: models.ResultTakeProfit,
		Notes:      "план отработан",
	}
}

func TestSaveTradeAssignsID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	trade := testTrade(time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC), "EURUSD")
	if err := s.SaveTrade(ctx, trade); err != nil {
		t.Fatalf("SaveTrade: %v", err)
	}
	if trade.ID == "" {
		t.Error("SaveTrade should assign an id")
	}
	if trade.CreatedAt.IsZero() {
		t.Error("SaveTrade should set CreatedAt")
	}
}

func TestGetTradesNewestFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	dates := []time.Time{
		time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 7, 12, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 7, 11, 0, 0, 0, 0, time.UTC),
	}
	for _, d := range dates {
		if err := s.SaveTrade(ctx, testTrade(d, "EURUSD")); err != nil {
			t.Fatalf("SaveTrade: %v", err)
		}
	}

	trades, err := s.GetTradesNewestFirst(ctx)
	if err != nil {
		t.Fatalf("GetTradesNewestFirst: %v", err)
	}
	if len(trades) != 3 {
		t.Fatalf("got %d trades, want 3", len(trades))
	}
	for _, want := range []string{"2025-07-12", "2025-07-11", "2025-07-10"} {
		got := trades[0].DateString()
		if got != want {
			t.Errorf("order: got %s, want %s", got, want)
		}
		trades = trades[1:]
	}
}

func TestGetTradesFilters(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	eur := testTrade(time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC), "EURUSD")
	gbp := testTrade(time.Date(2025, 7, 11, 0, 0, 0, 0, time.UTC), "GBPUSD")
	gbp.ResultType = models.ResultStopLoss
	for _, tr := range []*models.Trade{eur, gbp} {
		if err := s.SaveTrade(ctx, tr); err != nil {
			t.Fatalf("SaveTrade: %v", err)
		}
	}

	bySymbol, err := s.GetTrades(ctx, TradeFilter{Symbol: "EURUSD"})
	if err != nil {
		t.Fatalf("GetTrades: %v", err)
	}
	if len(bySymbol) != 1 || bySymbol[0].Symbol != "EURUSD" {
		t.Errorf("symbol filter = %+v", bySymbol)
	}

	byResult, err := s.GetTrades(ctx, TradeFilter{ResultType: "SL"})
	if err != nil {
		t.Fatalf("GetTrades: %v", err)
	}
	if len(byResult) != 1 || byResult[0].ResultType != models.ResultStopLoss {
		t.Errorf("result filter = %+v", byResult)
	}

	byDate, err := s.GetTrades(ctx, TradeFilter{
		DateFrom: time.Date(2025, 7, 11, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("GetTrades: %v", err)
	}
	if len(byDate) != 1 || byDate[0].Symbol != "GBPUSD" {
		t.Errorf("date filter = %+v", byDate)
	}

	limited, err := s.GetTrades(ctx, TradeFilter{Limit: 1})
	if err != nil {
		t.Fatalf("GetTrades: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("limit filter returned %d trades", len(limited))
	}
}

func TestDeleteTrade(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	trade := testTrade(time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC), "EURUSD")
	if err := s.SaveTrade(ctx, trade); err != nil {
		t.Fatalf("SaveTrade: %v", err)
	}
	if err := s.DeleteTrade(ctx, trade.ID); err != nil {
		t.Fatalf("DeleteTrade: %v", err)
	}
	if err := s.DeleteTrade(ctx, trade.ID); !errors.Is(err, apperrors.ErrDataNotFound) {
		t.Errorf("second delete = %v, want ErrDataNotFound", err)
	}
}

func TestTaskLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	task := &models.Task{Title: "Разобрать сделки недели", Priority: "high"}
	if err := s.SaveTask(ctx, task); err != nil {
		t.Fatalf("SaveTask: %v", err)
	}

	open, err := s.GetTasks(ctx, false)
	if err != nil {
		t.Fatalf("GetTasks: %v", err)
	}
	if len(open) != 1 || open[0].Title != task.Title {
		t.Fatalf("open tasks = %+v", open)
	}

	// Toggle accepts a unique id prefix.
	if err := s.ToggleTask(ctx, task.ID[:8]); err != nil {
		t.Fatalf("ToggleTask: %v", err)
	}

	done, err := s.GetTasks(ctx, true)
	if err != nil {
		t.Fatalf("GetTasks: %v", err)
	}
	if len(done) != 1 || !done[0].Completed {
		t.Fatalf("completed tasks = %+v", done)
	}

	task.Title = "Разобрать сделки месяца"
	if err := s.UpdateTask(ctx, task); err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}

	if err := s.DeleteTask(ctx, task.ID[:8]); err != nil {
		t.Fatalf("DeleteTask: %v", err)
	}
	if err := s.DeleteTask(ctx, task.ID); !errors.Is(err, apperrors.ErrDataNotFound) {
		t.Errorf("second delete = %v, want ErrDataNotFound", err)
	}
}
