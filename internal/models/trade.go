// Package models defines the core data types shared across the application.
package models

import "time"

// ResultType classifies the outcome of a closed trade.
type ResultType string

const (
	ResultTakeProfit ResultType = "TP"
	ResultStopLoss   ResultType = "SL"
	ResultBreakEven  ResultType = "BE"
)

// Trade represents one journal entry for a completed trade.
// The engine treats trades as an immutable snapshot loaded at startup.
type Trade struct {
	ID           string
	Date         time.Time
	Symbol       string
	Weekday      string
	Session      string
	Position     string
	Direction    string
	Bias         string
	Logic        string
	EntryDetails string
	Risk         float64 // fraction of equity risked, e.g. 0.01
	RR           float64 // reward-to-risk ratio
	ResultType   ResultType
	Mistakes     string
	Notes        string
	Profit       float64
	WinRate      float64
	CreatedAt    time.Time
}

// DateString returns the trade date in the canonical YYYY-MM-DD form used
// throughout retrieval.
func (t *Trade) DateString() string {
	return t.Date.Format("2006-01-02")
}
