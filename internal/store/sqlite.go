package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	apperrors "github.com/KirillKCrypto/Trading-Journal-APP/internal/errors"
	"github.com/KirillKCrypto/Trading-Journal-APP/internal/models"
)

// SQLiteStore implements DataStore using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite-based data store.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool for concurrent access
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	store := &SQLiteStore{db: db}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// initSchema creates all required tables and indexes.
func (s *SQLiteStore) initSchema() error {
	schema := `
	-- Trades table: one row per journal entry
	CREATE TABLE IF NOT EXISTS trades (
		id TEXT PRIMARY KEY,
		date DATE NOT NULL,
		symbol TEXT NOT NULL,
		weekday TEXT,
		session TEXT,
		position TEXT,
		direction TEXT,
		bias TEXT,
		logic TEXT,
		entry_details TEXT,
		risk REAL,
		rr REAL,
		result_type TEXT,
		mistakes TEXT,
		notes TEXT,
		profit REAL,
		win_rate REAL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_trades_date ON trades(date);
	CREATE INDEX IF NOT EXISTS idx_trades_symbol ON trades(symbol);

	-- Tasks table for the journal to-do list
	CREATE TABLE IF NOT EXISTS tasks (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT,
		priority TEXT,
		completed INTEGER DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// SaveTrade inserts or replaces a trade record.
func (s *SQLiteStore) SaveTrade(ctx context.Context, trade *models.Trade) error {
	if trade.ID == "" {
		trade.ID = uuid.NewString()
	}
	if trade.CreatedAt.IsZero() {
		trade.CreatedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO trades
		(id, date, symbol, weekday, session, position, direction, bias, logic,
		 entry_details, risk, rr, result_type, mistakes, notes, profit, win_rate, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		trade.ID, trade.Date.Format("2006-01-02"), trade.Symbol, trade.Weekday,
		trade.Session, trade.Position, trade.Direction, trade.Bias, trade.Logic,
		trade.EntryDetails, trade.Risk, trade.RR, string(trade.ResultType),
		trade.Mistakes, trade.Notes, trade.Profit, trade.WinRate, trade.CreatedAt)
	if err != nil {
		return apperrors.NewStoreError("trade", "save", err)
	}
	return nil
}

// GetTrades returns trades matching the filter, newest first.
func (s *SQLiteStore) GetTrades(ctx context.Context, filter TradeFilter) ([]models.Trade, error) {
	query := `SELECT id, date, symbol, weekday, session, position, direction, bias, logic,
		entry_details, risk, rr, result_type, mistakes, notes, profit, win_rate, created_at
		FROM trades WHERE 1=1`
	var args []interface{}

	if filter.Symbol != "" {
		query += " AND symbol = ?"
		args = append(args, filter.Symbol)
	}
	if filter.Session != "" {
		query += " AND session = ?"
		args = append(args, filter.Session)
	}
	if filter.Position != "" {
		query += " AND position = ?"
		args = append(args, filter.Position)
	}
	if filter.ResultType != "" {
		query += " AND result_type = ?"
		args = append(args, filter.ResultType)
	}
	if !filter.DateFrom.IsZero() {
		query += " AND date >= ?"
		args = append(args, filter.DateFrom.Format("2006-01-02"))
	}
	if !filter.DateTo.IsZero() {
		query += " AND date <= ?"
		args = append(args, filter.DateTo.Format("2006-01-02"))
	}

	query += " ORDER BY date DESC, created_at DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewStoreError("trade", "query", err)
	}
	defer rows.Close()

	return scanTrades(rows)
}

// GetTradesNewestFirst returns all trades ordered newest-first.
func (s *SQLiteStore) GetTradesNewestFirst(ctx context.Context) ([]models.Trade, error) {
	return s.GetTrades(ctx, TradeFilter{})
}

// DeleteTrade removes a trade by id. A unique id prefix is accepted.
func (s *SQLiteStore) DeleteTrade(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM trades WHERE id LIKE ? || '%'", id)
	if err != nil {
		return apperrors.NewStoreError("trade", "delete", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.ErrDataNotFound
	}
	return nil
}

func scanTrades(rows *sql.Rows) ([]models.Trade, error) {
	var trades []models.Trade
	for rows.Next() {
		var t models.Trade
		var dateStr string
		var resultType string
		if err := rows.Scan(&t.ID, &dateStr, &t.Symbol, &t.Weekday, &t.Session,
			&t.Position, &t.Direction, &t.Bias, &t.Logic, &t.EntryDetails,
			&t.Risk, &t.RR, &resultType, &t.Mistakes, &t.Notes,
			&t.Profit, &t.WinRate, &t.CreatedAt); err != nil {
			return nil, apperrors.NewStoreError("trade", "scan", err)
		}
		// Dates are stored as YYYY-MM-DD; tolerate full timestamps from
		// older rows.
		if d, err := time.Parse("2006-01-02", strings.SplitN(dateStr, "T", 2)[0]); err == nil {
			t.Date = d
		}
		t.ResultType = models.ResultType(resultType)
		trades = append(trades, t)
	}
	return trades, rows.Err()
}

// SaveTask inserts a new task.
func (s *SQLiteStore) SaveTask(ctx context.Context, task *models.Task) error {
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	if task.CreatedAt.IsZero() {
		task.CreatedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tasks (id, title, description, priority, completed, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		task.ID, task.Title, task.Description, task.Priority, task.Completed, task.CreatedAt)
	if err != nil {
		return apperrors.NewStoreError("task", "save", err)
	}
	return nil
}

// GetTasks returns tasks filtered by completion state, most recent first.
func (s *SQLiteStore) GetTasks(ctx context.Context, completed bool) ([]models.Task, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, description, priority, completed, created_at
		FROM tasks WHERE completed = ? ORDER BY created_at DESC`, completed)
	if err != nil {
		return nil, apperrors.NewStoreError("task", "query", err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Priority,
			&t.Completed, &t.CreatedAt); err != nil {
			return nil, apperrors.NewStoreError("task", "scan", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// UpdateTask updates a task's editable fields.
func (s *SQLiteStore) UpdateTask(ctx context.Context, task *models.Task) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE tasks SET title = ?, description = ?, priority = ? WHERE id = ?`,
		task.Title, task.Description, task.Priority, task.ID)
	if err != nil {
		return apperrors.NewStoreError("task", "update", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.ErrDataNotFound
	}
	return nil
}

// ToggleTask flips a task's completion state. A unique id prefix is
// accepted.
func (s *SQLiteStore) ToggleTask(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE tasks SET completed = NOT completed WHERE id LIKE ? || '%'", id)
	if err != nil {
		return apperrors.NewStoreError("task", "toggle", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.ErrDataNotFound
	}
	return nil
}

// DeleteTask removes a task by id. A unique id prefix is accepted.
func (s *SQLiteStore) DeleteTask(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM tasks WHERE id LIKE ? || '%'", id)
	if err != nil {
		return apperrors.NewStoreError("task", "delete", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.ErrDataNotFound
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
