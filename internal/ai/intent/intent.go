// Package intent classifies free-text journal queries into retrieval
// strategies.
//
// Classification is keyword-substring based and order-sensitive: topic
// groups and date patterns are tried in a fixed priority order and the
// first match wins. The keyword sets define observable behaviour; do
// not reorder them.
package intent

import (
	"regexp"
	"strings"

	"github.com/KirillKCrypto/Trading-Journal-APP/internal/models"
)

// Date patterns tried in priority order; first match wins.
var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\d{4}\.\d{2}\.\d{2}`),       // 2025.07.10
	regexp.MustCompile(`\d{1,2}\.\d{1,2}\.\d{4}`),   // 10.07.2025
	regexp.MustCompile(`\d{1,2}\.\d{1,2}`),          // 10.07
	regexp.MustCompile(`\d{4}-\d{2}-\d{2}`),         // 2025-07-10
}

// Topic keyword groups tried in priority order.
var topicGroups = []struct {
	topic    models.Topic
	keywords []string
}{
	{models.TopicAnalysis, []string{"анализ", "проанализир", "разбор", "разбери", "посмотри"}},
	{models.TopicPsychology, []string{"психолог", "эмоц", "дисциплин", "жадност", "страх", "fomo"}},
	{models.TopicMistakes, []string{"ошибк", "проблем", "неправ", "исправ", "улучш"}},
	{models.TopicNews, []string{"новости", "news", "события", "экономика", "рынок", "фундаментал"}},
}

var tradeKeywords = []string{"сделк", "последн", "недавн", "мои", "журнал", "истори"}

var newsKeywords = []string{"новости", "события", "экономика"}

var recencyKeywords = []string{"последн", "недавн"}

// ExtractDate returns the first date-looking substring of the query, or
// an empty string when none of the supported patterns match.
func ExtractDate(query string) string {
	for _, p := range datePatterns {
		if m := p.FindString(query); m != "" {
			return m
		}
	}
	return ""
}

// Classify maps raw user text to a structured intent.
func Classify(query string) models.QueryIntent {
	lower := strings.ToLower(query)

	date := ExtractDate(query)

	topic := models.TopicGeneral
	for _, group := range topicGroups {
		if containsAny(lower, group.keywords) {
			topic = group.topic
			break
		}
	}

	needsTrades := containsAny(lower, tradeKeywords) || date != ""
	needsNews := topic == models.TopicNews || containsAny(lower, newsKeywords)

	return models.QueryIntent{
		Topic:       topic,
		NeedsTrades: needsTrades,
		NeedsNews:   needsNews,
		Date:        date,
		IsGeneralQuestion: !needsTrades && !needsNews &&
			(topic == models.TopicPsychology || topic == models.TopicGeneral),
	}
}

// WantsRecent reports whether the query asks for most-recent trades
// rather than semantically similar ones.
func WantsRecent(query string) bool {
	return containsAny(strings.ToLower(query), recencyKeywords)
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
