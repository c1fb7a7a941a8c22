package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/KirillKCrypto/Trading-Journal-APP/internal/ai"
	"github.com/KirillKCrypto/Trading-Journal-APP/internal/ai/embed"
	"github.com/KirillKCrypto/Trading-Journal-APP/internal/news"
)

func newAskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask the AI about your trades or market news",
		Long: `Analyze your journal with a free-text question.

The question is classified into an intent (performance analysis,
psychology, mistake review, news, or general), relevant trades or
calendar events are retrieved via semantic search, and a context-aware
prompt is sent to the language model.`,
		Example: `  journal ask "проанализируй мои последние 5 сделок"
  journal ask "какие ошибки я повторяю"
  journal ask "разбери сделки за 10.07.2025"
  journal ask "какие новости влияют на рынок"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
			defer cancel()

			if app.Store == nil {
				output.Error("Journal store not available")
				return fmt.Errorf("store not configured")
			}

			query := strings.Join(args, " ")

			// Without credentials neither embeddings nor completions can
			// run; degrade to the unavailability message instead of
			// failing the command.
			if !app.Config.HasAPIKey() {
				app.Logger.Warn().Msg("No API key configured")
				if output.IsJSON() {
					return output.JSON(map[string]string{"query": query, "response": ai.UnavailableMessage})
				}
				output.Println(ai.UnavailableMessage)
				return nil
			}

			// Trades are loaded once and indexed for this invocation.
			trades, err := app.Store.GetTradesNewestFirst(ctx)
			if err != nil {
				output.Error("Failed to load trades: %v", err)
				return err
			}

			encoder, err := embed.NewOpenAIEncoder(
				app.Config.Credentials.OpenRouter.APIKey,
				app.Config.AI.BaseURL,
				app.Config.AI.EmbeddingModel,
				app.Config.AI.EmbeddingDimension,
			)
			if err != nil {
				output.Error("AI encoder unavailable: %v", err)
				return err
			}

			newsService := news.New(news.Config{
				FeedURL:         app.Config.News.FeedURL,
				Country:         app.Config.News.Country,
				RefreshInterval: app.Config.News.RefreshInterval,
				RefreshJitter:   app.Config.News.RefreshJitter,
				StaticMaxAge:    app.Config.News.StaticMaxAge,
				FetchTimeout:    app.Config.News.FetchTimeout,
				CacheDir:        app.Config.News.CacheDir,
			}, app.Logger)
			newsService.Start(ctx)
			defer newsService.Stop()

			var llm ai.LLMClient
			if client, err := ai.NewOpenRouterClient(ai.ClientOptions{
				APIKey:      app.Config.Credentials.OpenRouter.APIKey,
				BaseURL:     app.Config.AI.BaseURL,
				Model:       app.Config.AI.Model,
				MaxTokens:   app.Config.AI.MaxTokens,
				Temperature: app.Config.AI.Temperature,
			}); err == nil {
				llm = client
			} else {
				app.Logger.Warn().Err(err).Msg("LLM client unavailable")
			}

			output.Info("Indexing %d trades...", len(trades))

			engine, err := ai.NewEngine(ctx, trades, newsService, encoder, llm, ai.EngineConfig{
				TradeTopK: app.Config.AI.TradeTopK,
				NewsTopK:  app.Config.AI.NewsTopK,
			}, app.Logger)
			if err != nil {
				output.Error("Failed to build analysis engine: %v", err)
				return err
			}

			answer := engine.Analyze(ctx, query)

			if output.IsJSON() {
				return output.JSON(map[string]string{"query": query, "response": answer})
			}
			output.Println()
			output.Println(answer)
			return nil
		},
	}

	return cmd
}
