package statement

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/marketfold/fund-analyzer/internal/model"
)

// Extraction heuristics. The tie-break rules here (last percentage wins,
// first value over $50 wins, first ticker occurrence wins) are load-bearing:
// changing them silently changes results on real statements.
var (
	currencyPattern = regexp.MustCompile(`\d[,\d]*\.\d{2}`)
	percentPattern  = regexp.MustCompile(`(\d+(?:\.\d+)?)%`)
	wordRunPattern  = regexp.MustCompile(`[A-Za-z]{2,}`)
	nonAlphaPattern = regexp.MustCompile(`[^A-Za-z]`)
)

const (
	// minValue filters out small incidental numbers (share counts,
	// two-decimal percentages) when picking the market value on a line.
	minValue = 50

	// cashThreshold is the allocation total below which an implicit
	// cash/sweep position is assumed and a synthetic BIL row appended.
	cashThreshold = 95

	// cashTicker represents unallocated cash in the holdings output.
	cashTicker = "BIL"
)

// ParseDocument runs the full extraction pipeline over a positioned-text
// document: line reconstruction, candidate filtering, field extraction,
// allocation backfill and cash inference. It never fails; a document with
// no recognizable holdings yields an empty list.
func ParseDocument(doc Document) *model.ParseResult {
	holdings := make([]model.Holding, 0)
	seen := make(map[string]bool)
	totalLines := 0

	for _, page := range doc.Pages {
		lines := ReconstructLines(page)
		totalLines += len(lines)
		for _, line := range lines {
			if h, ok := parseLine(line, seen); ok {
				holdings = append(holdings, h)
			}
		}
	}

	backfillAllocations(holdings)
	holdings = inferCash(holdings)

	return &model.ParseResult{
		Holdings: holdings,
		Debug: model.ParseDebug{
			TotalLines: totalLines,
			TotalPages: doc.PageCount,
		},
	}
}

// parseLine attempts to read one reconstructed line as a holding. The
// first token, stripped of non-alphabetic characters and upper-cased, is
// the ticker candidate; the remainder must carry a financial signal (a
// currency-like decimal or a percentage) and a textual description (a
// run of two or more letters) to reject numeric-only noise rows.
func parseLine(line string, seen map[string]bool) (model.Holding, bool) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return model.Holding{}, false
	}

	rawTicker := fields[0]
	ticker := strings.ToUpper(nonAlphaPattern.ReplaceAllString(rawTicker, ""))
	if !LooksLikeTicker(ticker) {
		return model.Holding{}, false
	}

	rest := strings.Join(fields[1:], " ")
	if !currencyPattern.MatchString(rest) && !percentPattern.MatchString(rest) {
		return model.Holding{}, false
	}
	if !wordRunPattern.MatchString(rest) {
		return model.Holding{}, false
	}

	// First occurrence wins; later lines mentioning the same ticker
	// (reinvestment rows, footnotes) are dropped.
	if seen[ticker] {
		return model.Holding{}, false
	}
	seen[ticker] = true

	return model.Holding{
		Ticker:     ticker,
		Name:       extractName(line, rawTicker),
		Allocation: extractAllocation(line),
		Value:      extractValue(line),
		Type:       ClassifyType(ticker),
	}, true
}

// extractAllocation scans every percentage on the line and keeps the last
// one in (0, 100]. Allocation typically trails other percentages (yield,
// expense ratio) on the same line, hence last-wins.
func extractAllocation(line string) float64 {
	alloc := 0.0
	for _, m := range percentPattern.FindAllStringSubmatch(line, -1) {
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		if v > 0 && v <= 100 {
			alloc = v
		}
	}
	return round1(alloc)
}

// extractValue scans decimal currency-like numbers and keeps the first one
// exceeding minValue.
func extractValue(line string) float64 {
	for _, m := range currencyPattern.FindAllString(line, -1) {
		v, err := strconv.ParseFloat(strings.ReplaceAll(m, ",", ""), 64)
		if err != nil {
			continue
		}
		if v > minValue {
			return v
		}
	}
	return 0
}

// extractName captures the run of letters, spaces, periods, ampersands
// and apostrophes immediately following the ticker token, which ends at
// the first comma, lozenge or digit/currency marker by construction.
func extractName(line, rawTicker string) string {
	re := regexp.MustCompile(regexp.QuoteMeta(rawTicker) + `\s+([A-Za-z][A-Za-z&'. ]*)`)
	m := re.FindStringSubmatch(line)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// backfillAllocations computes allocations from dollar values for holdings
// that carried a value but no percentage. A no-op when every holding
// already has an allocation or when no values were extracted.
func backfillAllocations(holdings []model.Holding) {
	totalValue := 0.0
	for _, h := range holdings {
		totalValue += h.Value
	}
	if totalValue <= 0 {
		return
	}
	for i := range holdings {
		if holdings[i].Allocation == 0 && holdings[i].Value > 0 {
			holdings[i].Allocation = round1(holdings[i].Value / totalValue * 100)
		}
	}
}

// inferCash appends a synthetic BIL holding when extracted allocations sum
// to under cashThreshold, representing cash/sweep balances the statement
// format doesn't itemize as a percentage. No holdings parsed means no
// inference.
func inferCash(holdings []model.Holding) []model.Holding {
	totalAlloc := 0.0
	for _, h := range holdings {
		totalAlloc += h.Allocation
	}
	if totalAlloc > 0 && totalAlloc < cashThreshold {
		holdings = append(holdings, model.Holding{
			Ticker:     cashTicker,
			Name:       "Cash / Money Market",
			Allocation: round1(100 - totalAlloc),
			Value:      0,
			Type:       ClassifyType(cashTicker),
		})
	}
	return holdings
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
