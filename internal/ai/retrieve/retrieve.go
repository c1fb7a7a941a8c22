// Package retrieve selects trade and news evidence for a classified query.
package retrieve

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/KirillKCrypto/Trading-Journal-APP/internal/ai/embed"
	"github.com/KirillKCrypto/Trading-Journal-APP/internal/ai/index"
	"github.com/KirillKCrypto/Trading-Journal-APP/internal/ai/intent"
	"github.com/KirillKCrypto/Trading-Journal-APP/internal/models"
)

const (
	// DefaultTradeTopK is the semantic search depth for trades.
	DefaultTradeTopK = 5
	// DefaultNewsTopK is the semantic search depth for news.
	DefaultNewsTopK = 15
	// MaxTradeCount caps how many trades a query may request.
	MaxTradeCount = 15

	defaultTradeCount = 5
)

var (
	firstNumber = regexp.MustCompile(`\d+`)
	docDateField = regexp.MustCompile(`Дата=([^,]+)`)
)

// Quantity words mapped to trade counts, checked in order; first match
// wins. Zero means "the whole journal", capped at MaxTradeCount.
var quantityWords = []struct {
	word  string
	count int
}{
	{"несколько", 3},
	{"немного", 3},
	{"пару", 2},
	{"десяток", 10},
	{"около десяти", 10},
	{"много", 8},
	{"все", 0},
	{"полный", 0},
}

// Retriever answers evidence queries against two immutable corpora:
// trade documents and news documents, each paired with a vector index.
// Document position i always corresponds to index id i.
type Retriever struct {
	encoder embed.Encoder
	logger  zerolog.Logger

	tradeDocs  []string // newest-first
	tradeIndex *index.Flat
	newsDocs   []string // feed order
	newsIndex  *index.Flat

	tradeTopK int
	newsTopK  int
}

// New creates a retriever over pre-built corpora and indexes.
func New(encoder embed.Encoder, tradeDocs []string, tradeIndex *index.Flat,
	newsDocs []string, newsIndex *index.Flat, logger zerolog.Logger) *Retriever {
	return &Retriever{
		encoder:    encoder,
		logger:     logger,
		tradeDocs:  tradeDocs,
		tradeIndex: tradeIndex,
		newsDocs:   newsDocs,
		newsIndex:  newsIndex,
		tradeTopK:  DefaultTradeTopK,
		newsTopK:   DefaultNewsTopK,
	}
}

// SetTopK overrides the semantic search depths.
func (r *Retriever) SetTopK(trades, news int) {
	if trades > 0 {
		r.tradeTopK = trades
	}
	if news > 0 {
		r.newsTopK = news
	}
}

// TradeCount returns the number of trade documents indexed.
func (r *Retriever) TradeCount() int {
	return len(r.tradeDocs)
}

// TradesByDate returns every trade document whose embedded date field
// equals the normalized form of the extracted date string. An
// unparseable date yields no matches.
func (r *Retriever) TradesByDate(rawDate string) []string {
	normalized := intent.NormalizeDate(rawDate)
	if normalized == "" {
		return nil
	}

	var found []string
	for _, doc := range r.tradeDocs {
		m := docDateField.FindStringSubmatch(doc)
		if m != nil && m[1] == normalized {
			found = append(found, doc)
		}
	}
	return found
}

// LatestTrades returns the first n trade documents. The corpus is kept
// newest-first, so these are the most recent trades.
func (r *Retriever) LatestTrades(n int) []string {
	if n > len(r.tradeDocs) {
		n = len(r.tradeDocs)
	}
	if n <= 0 {
		return nil
	}
	return r.tradeDocs[:n]
}

// CountFromQuery derives how many trades the query asks for: an explicit
// integer (capped at MaxTradeCount) wins, then quantity words, then the
// default of 5.
func (r *Retriever) CountFromQuery(query string) int {
	if m := firstNumber.FindString(query); m != "" {
		if n, err := strconv.Atoi(m); err == nil {
			if n > MaxTradeCount {
				return MaxTradeCount
			}
			return n
		}
	}

	lower := strings.ToLower(query)
	for _, qw := range quantityWords {
		if strings.Contains(lower, qw.word) {
			if qw.count == 0 {
				return min(MaxTradeCount, len(r.tradeDocs))
			}
			return qw.count
		}
	}

	return defaultTradeCount
}

// SemanticTrades runs nearest-neighbour search over the trade corpus.
func (r *Retriever) SemanticTrades(ctx context.Context, query string, k int) []string {
	if k <= 0 {
		k = r.tradeTopK
	}
	return r.semantic(ctx, query, r.tradeIndex, r.tradeDocs, k)
}

// SemanticNews runs nearest-neighbour search over the news corpus. News
// retrieval is always semantic; date and recency strategies do not apply.
func (r *Retriever) SemanticNews(ctx context.Context, query string) []string {
	return r.semantic(ctx, query, r.newsIndex, r.newsDocs, r.newsTopK)
}

func (r *Retriever) semantic(ctx context.Context, query string, idx *index.Flat, docs []string, k int) []string {
	if idx == nil || idx.Len() == 0 || len(docs) == 0 {
		return nil
	}

	vec, err := r.encoder.Encode(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("Query embedding failed")
		return nil
	}

	ids := idx.Search(vec, k)
	results := make([]string, 0, len(ids))
	for _, id := range ids {
		// Out-of-range ids cannot occur while the corpus/index length
		// invariant holds; skip them rather than panic.
		if id < 0 || id >= len(docs) {
			continue
		}
		results = append(results, docs[id])
	}
	return results
}

// ResolveTrades picks the trade retrieval strategy for a classified
// query: exact-date first, then most-recent-N when a recency keyword is
// present, otherwise semantic search. A general question needs no
// evidence and returns nothing.
func (r *Retriever) ResolveTrades(ctx context.Context, query string, queryIntent models.QueryIntent) []string {
	if queryIntent.HasDate() {
		if found := r.TradesByDate(queryIntent.Date); len(found) > 0 {
			r.logger.Debug().Str("date", queryIntent.Date).Int("trades", len(found)).Msg("Date retrieval hit")
			return found
		}
		r.logger.Debug().Str("date", queryIntent.Date).Msg("Date retrieval empty, falling back")
	}

	if queryIntent.NeedsTrades {
		count := r.CountFromQuery(query)
		if intent.WantsRecent(query) {
			return r.LatestTrades(count)
		}
		return r.SemanticTrades(ctx, query, count)
	}

	return nil
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
