package analytics

import (
	"sort"

	"github.com/marketfold/fund-analyzer/internal/model"
)

// ReturnsMatrix is the cross-sectional returns dataset: a shared grid of
// month keys and, per ticker, a slice of return fractions positionally
// aligned to that grid. Missing months are filled with 0 so consumers
// never see nulls.
//
// The ingest job exclusively owns write access; every other consumer
// treats a loaded matrix as read-only.
type ReturnsMatrix struct {
	Dates   []string             `json:"dates"`
	Returns map[string][]float64 `json:"returns"`
}

// NewReturnsMatrix creates an empty matrix.
func NewReturnsMatrix() *ReturnsMatrix {
	return &ReturnsMatrix{
		Dates:   []string{},
		Returns: make(map[string][]float64),
	}
}

// ExtendDates grows the date grid to the union of the current grid and
// the given month keys, keeping chronological (lexicographic) order.
// Existing fund rows are re-aligned onto the new grid with 0 fill at the
// inserted positions.
func (m *ReturnsMatrix) ExtendDates(months []string) {
	set := make(map[string]bool, len(m.Dates)+len(months))
	for _, d := range m.Dates {
		set[d] = true
	}
	added := false
	for _, d := range months {
		if !set[d] {
			set[d] = true
			added = true
		}
	}
	if !added {
		return
	}

	merged := make([]string, 0, len(set))
	for d := range set {
		merged = append(merged, d)
	}
	sort.Strings(merged)

	for ticker, row := range m.Returns {
		byDate := make(map[string]float64, len(m.Dates))
		for i, d := range m.Dates {
			if i < len(row) {
				byDate[d] = row[i]
			}
		}
		aligned := make([]float64, len(merged))
		for i, d := range merged {
			aligned[i] = byDate[d]
		}
		m.Returns[ticker] = aligned
	}
	m.Dates = merged
}

// MergeFund aligns a fund's monthly returns onto the date grid and
// inserts (or replaces) its row. Months absent from the fund's series
// become 0; months absent from the grid are dropped, so call ExtendDates
// first when the fund carries new months.
func (m *ReturnsMatrix) MergeFund(ticker string, returns []model.MonthlyReturn) {
	byDate := make(map[string]float64, len(returns))
	for _, r := range returns {
		byDate[r.Date] = r.Return
	}
	aligned := make([]float64, len(m.Dates))
	for i, d := range m.Dates {
		aligned[i] = byDate[d]
	}
	m.Returns[ticker] = aligned
}

// ReplaceStats inserts a fund's stats into a stats list, removing any
// pre-existing entry for the same ticker first (last write wins, no
// per-field merge).
func ReplaceStats(stats []model.FundStats, s model.FundStats) []model.FundStats {
	out := make([]model.FundStats, 0, len(stats)+1)
	for _, existing := range stats {
		if existing.Ticker != s.Ticker {
			out = append(out, existing)
		}
	}
	return append(out, s)
}
