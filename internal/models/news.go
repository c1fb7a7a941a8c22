package models

// Impact levels used by the economic calendar feed.
const (
	ImpactHigh   = "High"
	ImpactMedium = "Medium"
	ImpactLow    = "Low"
)

// NewsEvent represents one economic-calendar entry from the upstream feed.
type NewsEvent struct {
	Date     string `json:"date"`
	Title    string `json:"title"`
	Impact   string `json:"impact"`
	Country  string `json:"country"`
	Forecast string `json:"forecast,omitempty"`
	Previous string `json:"previous,omitempty"`
	Actual   string `json:"actual,omitempty"`
}

// StaticEvent is the coarse projection of a NewsEvent kept in the durable
// static snapshot.
type StaticEvent struct {
	Date    string `json:"date"`
	Title   string `json:"title"`
	Impact  string `json:"impact"`
	Country string `json:"country"`
}

// StaticSnapshot is the on-disk form of the slow-changing news cache.
type StaticSnapshot struct {
	Timestamp int64         `json:"timestamp"`
	Events    []StaticEvent `json:"events"`
}
