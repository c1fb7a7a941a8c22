package cli

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/KirillKCrypto/Trading-Journal-APP/internal/stats"
)

func newStatsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show profile statistics for the journal",
		Long: `Compute win rate, cumulative PnL percent, average R:R, win/loss
streaks and the equity curve over all journaled trades.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if app.Store == nil {
				output.Error("Journal store not available")
				return fmt.Errorf("store not configured")
			}

			trades, err := app.Store.GetTradesNewestFirst(ctx)
			if err != nil {
				output.Error("Failed to load trades: %v", err)
				return err
			}

			// Statistics run oldest-first so streaks and the equity
			// curve follow the journal chronology.
			sort.SliceStable(trades, func(i, j int) bool {
				return trades[i].Date.Before(trades[j].Date)
			})

			profile := stats.Compute(trades, app.Config.Journal.StartingEquity)

			if output.IsJSON() {
				return output.JSON(profile)
			}

			output.Bold("Journal statistics")
			output.Printf("  Trades:        %d\n", profile.TotalTrades)
			output.Printf("  Take profits:  %d\n", profile.TakeProfits)
			output.Printf("  Losses:        %d\n", profile.Losses)
			output.Printf("  Win rate:      %.1f%%\n", profile.WinRate())
			output.Printf("  PnL sum:       %.2f%%\n", profile.PnLPercentSum)
			output.Printf("  Avg R:R (TP):  %.2f\n", profile.AvgRR)
			output.Printf("  Win streak:    %d\n", profile.MaxWinStreak)
			output.Printf("  Loss streak:   %d\n", profile.MaxLossStreak)
			output.Printf("  Total profit:  %s\n",
				output.ColoredString(output.PnLColor(profile.TotalProfit),
					fmt.Sprintf("$%.2f", profile.TotalProfit)))
			if n := len(profile.EquityCurve); n > 1 {
				last := profile.EquityCurve[n-1]
				output.Printf("  Equity:        %.2f (from %.2f)\n",
					last.Equity, profile.EquityCurve[0].Equity)
			}
			return nil
		},
	}

	return cmd
}
