package statement

import (
	"fmt"
	"io"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/marketfold/fund-analyzer/internal/apperrors"
	"github.com/marketfold/fund-analyzer/internal/model"
)

func init() {
	// Brokerage CSV exports disagree on header casing ("Ticker" vs "ticker").
	gocsv.SetHeaderNormalizer(strings.ToLower)
}

// csvRow is one holdings row in a CSV export or manual-entry upload.
// Allocation and value are both optional; backfill and cash inference
// run the same as for PDF extraction.
type csvRow struct {
	Ticker     string  `csv:"ticker"`
	Name       string  `csv:"name"`
	Allocation float64 `csv:"allocation"`
	Value      float64 `csv:"value"`
}

// ParseCSV reads a header-mapped holdings CSV. Tickers are normalized the
// way PDF candidates are (non-alphabetic characters stripped, upper-cased)
// but only format-checked, not run through the statement stop-word
// heuristics: CSV rows are explicit user input, not boilerplate.
func ParseCSV(r io.Reader) (*model.ParseResult, error) {
	var rows []csvRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStatementUnreadable, err)
	}

	holdings := make([]model.Holding, 0, len(rows))
	seen := make(map[string]bool)
	for _, row := range rows {
		ticker := strings.ToUpper(nonAlphaPattern.ReplaceAllString(row.Ticker, ""))
		if !tickerPattern.MatchString(ticker) || seen[ticker] {
			continue
		}
		seen[ticker] = true

		alloc := row.Allocation
		if alloc < 0 || alloc > 100 {
			alloc = 0
		}
		holdings = append(holdings, model.Holding{
			Ticker:     ticker,
			Name:       strings.TrimSpace(row.Name),
			Allocation: round1(alloc),
			Value:      row.Value,
			Type:       ClassifyType(ticker),
		})
	}

	backfillAllocations(holdings)
	holdings = inferCash(holdings)

	return &model.ParseResult{
		Holdings: holdings,
		Debug:    model.ParseDebug{TotalLines: len(rows), TotalPages: 1},
	}, nil
}
