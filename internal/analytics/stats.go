package analytics

import (
	"math"

	"github.com/marketfold/fund-analyzer/internal/model"
)

const (
	// riskFreeRate is the fixed annual risk-free rate used in Sharpe and
	// Sortino numerators.
	riskFreeRate = 0.045

	// minReturns is the smallest monthly sample for which statistics are
	// computed. It is a weak floor: three-month annualization produces
	// extreme figures, but smaller samples are meaningless.
	minReturns = 3

	monthsPerYear = 12
)

// Compute derives the risk/return summary for a monthly return series.
// The second result is false when the series is too short; such funds are
// excluded from the stats output entirely.
//
// Annualization is geometric (cumulative growth raised to 1/years), the
// only return measure consistent with compounding a NAV series.
// Volatility is the Bessel-corrected standard deviation of monthly
// returns scaled by sqrt(12).
func Compute(ticker string, returns []model.MonthlyReturn) (model.FundStats, bool) {
	n := len(returns)
	if n < minReturns {
		return model.FundStats{}, false
	}

	cumulative := 1.0
	mean := 0.0
	for _, r := range returns {
		cumulative *= 1 + r.Return
		mean += r.Return
	}
	mean /= float64(n)

	years := float64(n) / monthsPerYear
	annualized := math.Pow(cumulative, 1/years) - 1

	sumSq := 0.0
	for _, r := range returns {
		d := r.Return - mean
		sumSq += d * d
	}
	volatility := math.Sqrt(sumSq/float64(n-1)) * math.Sqrt(monthsPerYear)

	maxDrawdown := computeMaxDrawdown(returns)

	sharpe := 0.0
	if volatility != 0 {
		sharpe = (annualized - riskFreeRate) / volatility
	}

	sortino := 0.0
	if downside := downsideDeviation(returns); downside != 0 {
		sortino = (annualized - riskFreeRate) / downside
	}

	return model.FundStats{
		Ticker:           ticker,
		AnnualizedReturn: round6(annualized),
		Volatility:       round6(volatility),
		MaxDrawdown:      round6(maxDrawdown),
		SharpeRatio:      round4(sharpe),
		SortinoRatio:     round4(sortino),
	}, true
}

// computeMaxDrawdown simulates a NAV path from 100, tracking the running
// peak; drawdown at each point is (value - peak) / peak, always <= 0, and
// the most negative value across the path is reported.
func computeMaxDrawdown(returns []model.MonthlyReturn) float64 {
	value := 100.0
	peak := 100.0
	maxDD := 0.0
	for _, r := range returns {
		value *= 1 + r.Return
		if value > peak {
			peak = value
		}
		if dd := (value - peak) / peak; dd < maxDD {
			maxDD = dd
		}
	}
	return maxDD
}

// downsideDeviation is the root mean square of negative-only monthly
// returns, annualized by sqrt(12). Zero when no month was negative.
func downsideDeviation(returns []model.MonthlyReturn) float64 {
	sumSq := 0.0
	count := 0
	for _, r := range returns {
		if r.Return < 0 {
			sumSq += r.Return * r.Return
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return math.Sqrt(sumSq/float64(count)) * math.Sqrt(monthsPerYear)
}

func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}

func round4(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}
