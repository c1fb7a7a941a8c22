// Package stats computes profile statistics over the trade journal.
package stats

import (
	"github.com/shopspring/decimal"

	"github.com/KirillKCrypto/Trading-Journal-APP/internal/models"
)

// EquityPoint is one point on the profile equity curve.
type EquityPoint struct {
	Label  string // "Start" or trade date as DD.MM
	Equity float64
}

// Profile aggregates journal-wide performance statistics.
type Profile struct {
	TotalTrades   int
	TakeProfits   int
	Losses        int
	PnLPercentSum float64 // cumulative financial effect in percent
	AvgRR         float64 // average R:R over winning trades
	MaxWinStreak  int
	MaxLossStreak int
	TotalProfit   float64
	EquityCurve   []EquityPoint
}

// WinRate returns the take-profit share in percent.
func (p *Profile) WinRate() float64 {
	if p.TotalTrades == 0 {
		return 0
	}
	return float64(p.TakeProfits) / float64(p.TotalTrades) * 100
}

// Compute builds profile statistics from trades ordered oldest-first.
// startingEquity seeds the equity curve.
func Compute(trades []models.Trade, startingEquity float64) *Profile {
	p := &Profile{
		TotalTrades: len(trades),
		EquityCurve: []EquityPoint{{Label: "Start", Equity: startingEquity}},
	}

	pnlSum := decimal.Zero
	profitSum := decimal.Zero
	rrSum := decimal.Zero
	rrCount := 0
	equity := decimal.NewFromFloat(startingEquity)
	currentWin, currentLoss := 0, 0

	for _, t := range trades {
		risk := decimal.NewFromFloat(t.Risk)
		rr := decimal.NewFromFloat(t.RR)

		// Financial effect of the trade in percent: risk*rr for wins,
		// -risk for stop-outs, nothing for break-even.
		switch t.ResultType {
		case models.ResultTakeProfit:
			p.TakeProfits++
			pnlSum = pnlSum.Add(risk.Mul(rr).Mul(decimal.NewFromInt(100)))
			rrSum = rrSum.Add(rr)
			rrCount++
			currentWin++
			currentLoss = 0
			equity = equity.Add(equity.Mul(rr).Mul(risk)).Round(2)
		case models.ResultStopLoss:
			pnlSum = pnlSum.Sub(risk.Mul(decimal.NewFromInt(100)))
			currentLoss++
			currentWin = 0
			equity = equity.Sub(equity.Mul(risk)).Round(2)
		case models.ResultBreakEven:
			// Break-even contributes nothing to PnL percent but counts
			// toward the loss streak and costs risk on the equity curve,
			// same as a stop-out.
			currentLoss++
			currentWin = 0
			equity = equity.Sub(equity.Mul(risk)).Round(2)
		}

		if currentWin > p.MaxWinStreak {
			p.MaxWinStreak = currentWin
		}
		if currentLoss > p.MaxLossStreak {
			p.MaxLossStreak = currentLoss
		}

		profitSum = profitSum.Add(decimal.NewFromFloat(t.Profit))
		p.EquityCurve = append(p.EquityCurve, EquityPoint{
			Label:  t.Date.Format("02.01"),
			Equity: equity.InexactFloat64(),
		})
	}

	p.Losses = p.TotalTrades - p.TakeProfits
	p.PnLPercentSum = pnlSum.Round(2).InexactFloat64()
	p.TotalProfit = profitSum.Round(2).InexactFloat64()
	if rrCount > 0 {
		p.AvgRR = rrSum.Div(decimal.NewFromInt(int64(rrCount))).Round(2).InexactFloat64()
	}

	return p
}
