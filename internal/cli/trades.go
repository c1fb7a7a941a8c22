package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	apperrors "github.com/KirillKCrypto/Trading-Journal-APP/internal/errors"
	"github.com/KirillKCrypto/Trading-Journal-APP/internal/models"
	"github.com/KirillKCrypto/Trading-Journal-APP/internal/store"
)

func newTradesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trades",
		Short: "Manage journal entries",
	}

	cmd.AddCommand(newTradesAddCmd(app))
	cmd.AddCommand(newTradesListCmd(app))
	cmd.AddCommand(newTradesRemoveCmd(app))

	return cmd
}

func newTradesAddCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a journal entry",
		Example: `  journal trades add --symbol EURUSD --date 2025-07-10 --direction long \
    --session Лондон --risk 0.01 --rr 2.5 --result TP`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := taskContext()
			defer cancel()

			if app.Store == nil {
				return fmt.Errorf("store not configured")
			}

			dateStr, _ := cmd.Flags().GetString("date")
			date, err := time.Parse("2006-01-02", dateStr)
			if err != nil {
				output.Error("Invalid date %q, expected YYYY-MM-DD", dateStr)
				return err
			}

			result, _ := cmd.Flags().GetString("result")
			switch models.ResultType(result) {
			case models.ResultTakeProfit, models.ResultStopLoss, models.ResultBreakEven:
			default:
				err := apperrors.NewValidationError("result", result, "expected TP, SL or BE")
				output.Error("%v", err)
				return err
			}

			symbol, _ := cmd.Flags().GetString("symbol")
			session, _ := cmd.Flags().GetString("session")
			position, _ := cmd.Flags().GetString("position")
			direction, _ := cmd.Flags().GetString("direction")
			risk, _ := cmd.Flags().GetFloat64("risk")
			rr, _ := cmd.Flags().GetFloat64("rr")
			profit, _ := cmd.Flags().GetFloat64("profit")
			mistakes, _ := cmd.Flags().GetString("mistakes")
			notes, _ := cmd.Flags().GetString("notes")

			trade := &models.Trade{
				Date:       date,
				Symbol:     symbol,
				Weekday:    date.Weekday().String(),
				Session:    session,
				Position:   position,
				Direction:  direction,
				Risk:       risk,
				RR:         rr,
				ResultType: models.ResultType(result),
				Mistakes:   mistakes,
				Notes:      notes,
				Profit:     profit,
			}
			if err := app.Store.SaveTrade(ctx, trade); err != nil {
				output.Error("Failed to save trade: %v", err)
				return err
			}
			output.Success("Trade added: %s", trade.ID[:8])
			return nil
		},
	}

	cmd.Flags().String("date", time.Now().Format("2006-01-02"), "trade date (YYYY-MM-DD)")
	cmd.Flags().String("symbol", "", "traded symbol")
	cmd.Flags().String("session", "", "trading session (Азия, Лондон, Нью-Йорк)")
	cmd.Flags().String("position", "", "position type")
	cmd.Flags().String("direction", "", "long or short")
	cmd.Flags().Float64("risk", 0.01, "risked equity fraction")
	cmd.Flags().Float64("rr", 0, "reward-to-risk ratio")
	cmd.Flags().String("result", "", "trade result: TP, SL or BE")
	cmd.Flags().Float64("profit", 0, "realized profit in account currency")
	cmd.Flags().String("mistakes", "", "mistakes made")
	cmd.Flags().String("notes", "", "free-form comment")
	cmd.MarkFlagRequired("symbol")
	cmd.MarkFlagRequired("result")
	return cmd
}

func newTradesListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List journal entries, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := taskContext()
			defer cancel()

			if app.Store == nil {
				return fmt.Errorf("store not configured")
			}

			symbol, _ := cmd.Flags().GetString("symbol")
			session, _ := cmd.Flags().GetString("session")
			result, _ := cmd.Flags().GetString("result")
			limit, _ := cmd.Flags().GetInt("limit")

			trades, err := app.Store.GetTrades(ctx, store.TradeFilter{
				Symbol:     symbol,
				Session:    session,
				ResultType: result,
				Limit:      limit,
			})
			if err != nil {
				output.Error("Failed to load trades: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(trades)
			}

			if len(trades) == 0 {
				output.Dim("No trades")
				return nil
			}
			for _, t := range trades {
				output.Printf("%s  %s  %-8s %-5s %s  R:R %.1f  %s\n",
					t.ID[:8], t.DateString(), t.Symbol, t.Direction,
					output.ColoredString(resultColor(t.ResultType), string(t.ResultType)),
					t.RR,
					output.ColoredString(output.PnLColor(t.Profit), fmt.Sprintf("$%.2f", t.Profit)))
				if t.Notes != "" {
					output.Dim("          %s", t.Notes)
				}
			}
			return nil
		},
	}

	cmd.Flags().String("symbol", "", "filter by symbol")
	cmd.Flags().String("session", "", "filter by session")
	cmd.Flags().String("result", "", "filter by result (TP, SL, BE)")
	cmd.Flags().Int("limit", 0, "maximum entries to show (0 = all)")
	return cmd
}

func newTradesRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a journal entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := taskContext()
			defer cancel()

			if app.Store == nil {
				return fmt.Errorf("store not configured")
			}

			if err := app.Store.DeleteTrade(ctx, args[0]); err != nil {
				output.Error("Failed to delete trade: %v", err)
				return err
			}
			output.Success("Trade deleted")
			return nil
		},
	}
}

func resultColor(r models.ResultType) string {
	switch r {
	case models.ResultTakeProfit:
		return ColorGreen
	case models.ResultStopLoss:
		return ColorRed
	default:
		return ColorYellow
	}
}
