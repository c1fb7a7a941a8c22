package models

// Topic is the primary subject of a user query.
type Topic string

const (
	TopicAnalysis   Topic = "analysis"
	TopicPsychology Topic = "psychology"
	TopicMistakes   Topic = "mistakes"
	TopicNews       Topic = "news"
	TopicGeneral    Topic = "general"
)

// QueryIntent is the structured classification of one free-text query.
// It is recomputed per request and never persisted.
type QueryIntent struct {
	Topic             Topic
	NeedsTrades       bool
	NeedsNews         bool
	Date              string // raw date string as extracted, empty if none
	IsGeneralQuestion bool
}

// HasDate reports whether a calendar date was extracted from the query.
func (q QueryIntent) HasDate() bool {
	return q.Date != ""
}
