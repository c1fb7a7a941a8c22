package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/KirillKCrypto/Trading-Journal-APP/internal/news"
)

func newNewsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "news",
		Short: "Show cached economic-calendar events",
		Long: `Fetch and display high-impact economic-calendar events for the
configured country from the ForexFactory weekly feed.`,
		Example: `  journal news
  journal news --limit 10`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()

			limit, _ := cmd.Flags().GetInt("limit")

			service := news.New(news.Config{
				FeedURL:         app.Config.News.FeedURL,
				Country:         app.Config.News.Country,
				RefreshInterval: app.Config.News.RefreshInterval,
				RefreshJitter:   app.Config.News.RefreshJitter,
				StaticMaxAge:    app.Config.News.StaticMaxAge,
				FetchTimeout:    app.Config.News.FetchTimeout,
				CacheDir:        app.Config.News.CacheDir,
			}, app.Logger)
			service.Start(ctx)
			defer service.Stop()

			events := service.Latest(limit)
			if output.IsJSON() {
				return output.JSON(events)
			}

			if len(events) == 0 {
				output.Warning("No events in the current snapshot")
				return nil
			}

			for _, e := range events {
				impactColor := ColorYellow
				if e.Impact == "High" {
					impactColor = ColorRed
				}
				output.Printf("%s  %s %s\n", e.Date,
					output.ColoredString(impactColor, "["+e.Impact+"]"), e.Title)
				if e.Forecast != "" || e.Previous != "" || e.Actual != "" {
					output.Dim("        forecast: %s  previous: %s  actual: %s",
						e.Forecast, e.Previous, e.Actual)
				}
			}
			return nil
		},
	}

	cmd.Flags().Int("limit", 0, "maximum number of events to show (0 = all)")
	return cmd
}
