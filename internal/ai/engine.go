package ai

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/KirillKCrypto/Trading-Journal-APP/internal/ai/embed"
	"github.com/KirillKCrypto/Trading-Journal-APP/internal/ai/index"
	"github.com/KirillKCrypto/Trading-Journal-APP/internal/ai/intent"
	"github.com/KirillKCrypto/Trading-Journal-APP/internal/ai/prompt"
	"github.com/KirillKCrypto/Trading-Journal-APP/internal/ai/retrieve"
	apperrors "github.com/KirillKCrypto/Trading-Journal-APP/internal/errors"
	"github.com/KirillKCrypto/Trading-Journal-APP/internal/logging"
	"github.com/KirillKCrypto/Trading-Journal-APP/internal/models"
	"github.com/KirillKCrypto/Trading-Journal-APP/pkg/utils"
)

// UnavailableMessage is returned whenever the language-model service
// cannot be reached, including when credentials are missing.
const UnavailableMessage = "⚠️ Временная недоступность AI сервиса. Пожалуйста, повторите запрос позже."

const defaultEmbedWorkers = 4

// NewsSource provides the current live news snapshot.
type NewsSource interface {
	Latest(limit int) []models.NewsEvent
}

// EngineConfig tunes engine construction.
type EngineConfig struct {
	TradeTopK    int
	NewsTopK     int
	EmbedWorkers int
}

// Engine is the analysis façade: classify, retrieve, compose, complete.
// It is immutable after construction and safe for concurrent use.
type Engine struct {
	llm       LLMClient // nil when credentials are missing
	retriever *retrieve.Retriever
	logger    zerolog.Logger
}

// NewEngine builds the trade and news corpora, embeds them, and wires
// the retriever. Trades must be ordered newest-first. A failing encoder
// is a construction error: every retrieval path depends on it. llm may
// be nil; queries then degrade to the unavailability message.
func NewEngine(ctx context.Context, trades []models.Trade, newsSource NewsSource,
	encoder embed.Encoder, llm LLMClient, cfg EngineConfig, logger zerolog.Logger) (*Engine, error) {

	log := logging.WithComponent(logger, "ai")
	workers := cfg.EmbedWorkers
	if workers <= 0 {
		workers = defaultEmbedWorkers
	}

	// Trade corpus: documents and index stay index-aligned for the
	// process lifetime.
	tradeDocs := make([]string, len(trades))
	for i, t := range trades {
		tradeDocs[i] = RenderTradeDocument(t)
	}

	tradeVectors, err := embedAll(ctx, encoder, tradeDocs, workers)
	if err != nil {
		return nil, apperrors.Wrap(err, "indexing trades")
	}
	tradeIndex, err := index.Build(encoder.Dimension(), tradeVectors)
	if err != nil {
		return nil, apperrors.Wrap(err, "building trade index")
	}
	log.Info().Int("trades", len(tradeDocs)).Msg("Trade index built")

	// News corpus is best-effort: an empty or failing feed leaves the
	// news index empty rather than failing startup.
	var newsDocs []string
	newsIndex := index.NewFlat(encoder.Dimension())
	if newsSource != nil {
		for _, e := range newsSource.Latest(0) {
			newsDocs = append(newsDocs, RenderNewsDocument(e))
		}
		newsVectors, err := embedAll(ctx, encoder, newsDocs, workers)
		if err != nil {
			log.Warn().Err(err).Msg("News indexing failed, continuing without news search")
			newsDocs = nil
		} else if newsIndex, err = index.Build(encoder.Dimension(), newsVectors); err != nil {
			log.Warn().Err(err).Msg("News index build failed, continuing without news search")
			newsDocs = nil
			newsIndex = index.NewFlat(encoder.Dimension())
		} else {
			log.Info().Int("events", len(newsDocs)).Msg("News index built")
		}
	}

	retriever := retrieve.New(encoder, tradeDocs, tradeIndex, newsDocs, newsIndex, log)
	retriever.SetTopK(cfg.TradeTopK, cfg.NewsTopK)

	return &Engine{
		llm:       llm,
		retriever: retriever,
		logger:    log,
	}, nil
}

// Analyze answers one free-text query. It never returns an error:
// every failure path degrades to a safe natural-language message.
func (e *Engine) Analyze(ctx context.Context, query string) string {
	queryIntent := intent.Classify(query)

	var promptText string
	var evidence int

	// News intent takes precedence over trade intent when both are set.
	if queryIntent.NeedsNews {
		news := e.retriever.SemanticNews(ctx, query)
		evidence = len(news)
		promptText = prompt.News(query, news)
	} else {
		trades := e.retriever.ResolveTrades(ctx, query, queryIntent)
		evidence = len(trades)
		promptText = prompt.Trades(query, trades, queryIntent)
	}

	logging.LogQuery(e.logger, utils.Truncate(query, 200), string(queryIntent.Topic), evidence)

	return CleanResponse(e.complete(ctx, promptText))
}

func (e *Engine) complete(ctx context.Context, promptText string) string {
	if e.llm == nil {
		e.logger.Warn().Msg("LLM client not configured")
		return UnavailableMessage
	}

	start := time.Now()
	answer, err := e.llm.Complete(ctx, promptText)
	logging.LogLLMCall(e.logger, e.llm.Model(), time.Since(start), err)
	if err != nil {
		return UnavailableMessage
	}
	return answer
}

// embedAll encodes documents concurrently with a bounded worker pool,
// preserving input order. The first error aborts the batch.
func embedAll(ctx context.Context, encoder embed.Encoder, docs []string, workers int) ([][]float32, error) {
	if len(docs) == 0 {
		return nil, nil
	}

	vectors := make([][]float32, len(docs))
	sem := make(chan struct{}, workers)

	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for i, doc := range docs {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, doc string) {
			defer wg.Done()
			defer func() { <-sem }()

			mu.Lock()
			failed := firstErr != nil
			mu.Unlock()
			if failed {
				return
			}

			vec, err := encoder.Encode(ctx, doc)
			mu.Lock()
			if err != nil && firstErr == nil {
				firstErr = err
			}
			mu.Unlock()
			vectors[i] = vec
		}(i, doc)
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return vectors, nil
}
