// Package store provides data persistence interfaces and implementations.
package store

import (
	"context"
	"time"

	"github.com/KirillKCrypto/Trading-Journal-APP/internal/models"
)

// DataStore defines the interface for journal persistence.
type DataStore interface {
	// Trades
	SaveTrade(ctx context.Context, trade *models.Trade) error
	GetTrades(ctx context.Context, filter TradeFilter) ([]models.Trade, error)
	// GetTradesNewestFirst returns the full journal ordered newest-first,
	// the order the analysis engine indexes at startup.
	GetTradesNewestFirst(ctx context.Context) ([]models.Trade, error)
	DeleteTrade(ctx context.Context, id string) error

	// Tasks
	SaveTask(ctx context.Context, task *models.Task) error
	GetTasks(ctx context.Context, completed bool) ([]models.Task, error)
	UpdateTask(ctx context.Context, task *models.Task) error
	ToggleTask(ctx context.Context, id string) error
	DeleteTask(ctx context.Context, id string) error

	// Lifecycle
	Close() error
}

// TradeFilter represents filters for querying trades.
type TradeFilter struct {
	Symbol     string
	Session    string
	Position   string
	ResultType string
	DateFrom   time.Time
	DateTo     time.Time
	Limit      int
}
