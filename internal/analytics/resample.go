// Package analytics implements the returns/statistics engine: monthly
// resampling of daily price observations, simple-return series, and the
// derived risk/return summary persisted in the analytics snapshot.
package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/marketfold/fund-analyzer/internal/model"
)

// Observation is one raw daily price point. NAV is preferred when both
// are present; market price is the fallback.
type Observation struct {
	Date  time.Time
	NAV   float64
	Price float64
}

func (o Observation) effectivePrice() float64 {
	if o.NAV > 0 {
		return o.NAV
	}
	return o.Price
}

// MonthKey formats a date as the zero-padded "YYYY-MM" key used
// throughout the snapshot. The zero padding makes lexicographic order
// chronological.
func MonthKey(t time.Time) string {
	return t.UTC().Format("2006-01")
}

// ResampleMonthly downsamples daily observations to one price per month,
// keeping the last observed price of each month (last value wins, not an
// average). Input ordering is irrelevant; observations are sorted by date
// first. Non-positive prices are skipped.
func ResampleMonthly(obs []Observation) map[string]float64 {
	sorted := make([]Observation, len(obs))
	copy(sorted, obs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })

	monthly := make(map[string]float64)
	for _, o := range sorted {
		price := o.effectivePrice()
		if price <= 0 {
			continue
		}
		monthly[MonthKey(o.Date)] = price
	}
	return monthly
}

// MonthlyReturns computes the simple return series from a monthly price
// map, pairing consecutive months in key order. Pairs with a non-positive
// previous price are skipped rather than emitting Inf/NaN. Each return is
// rounded to 8 decimals so no floating drift accumulates in downstream
// compounding.
func MonthlyReturns(monthly map[string]float64) []model.MonthlyReturn {
	keys := make([]string, 0, len(monthly))
	for k := range monthly {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	returns := make([]model.MonthlyReturn, 0, len(keys))
	for i := 1; i < len(keys); i++ {
		prev := monthly[keys[i-1]]
		if prev <= 0 {
			continue
		}
		curr := monthly[keys[i]]
		returns = append(returns, model.MonthlyReturn{
			Date:   keys[i],
			Return: Round8((curr - prev) / prev),
		})
	}
	return returns
}

// Round8 rounds to 8 decimal places.
func Round8(v float64) float64 {
	return math.Round(v*1e8) / 1e8
}
