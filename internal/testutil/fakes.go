package testutil

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/marketfold/fund-analyzer/internal/statement"
	"github.com/marketfold/fund-analyzer/internal/ultimus"
	"github.com/marketfold/fund-analyzer/internal/yahoo"
)

// FakeExtractor is a statement.TextExtractor returning a canned document
// or error, so handler and service tests never touch a real PDF.
type FakeExtractor struct {
	Doc statement.Document
	Err error
}

// Extract returns the configured document and error.
func (f *FakeExtractor) Extract(_ []byte) (statement.Document, error) {
	if f.Err != nil {
		return statement.Document{}, f.Err
	}
	return f.Doc, nil
}

// DocumentFromLines builds a single-page positioned-text document whose
// rows reconstruct exactly to the given lines (one fragment per line,
// descending Y).
func DocumentFromLines(lines ...string) statement.Document {
	page := statement.Page{Number: 1}
	y := float64(800)
	for _, line := range lines {
		page.Fragments = append(page.Fragments, statement.Fragment{Text: line, Y: y})
		y -= 20
	}
	return statement.Document{PageCount: 1, Pages: []statement.Page{page}}
}

// FakeChartClient is an ingest.ChartClient returning canned responses.
type FakeChartClient struct {
	Response yahoo.Response
	Err      error
	Queries  int
}

// QueryDailyHistory returns the configured response and error.
func (f *FakeChartClient) QueryDailyHistory(_ context.Context, _ string, _, _ time.Time) (yahoo.Response, error) {
	f.Queries++
	if f.Err != nil {
		return yahoo.Response{}, f.Err
	}
	return f.Response, nil
}

// ParseChart delegates to the real implementation; parsing is pure logic.
func (f *FakeChartClient) ParseChart(resp yahoo.Response) (yahoo.PriceChart, error) {
	return yahoo.NewFinanceClient().ParseChart(resp)
}

// FakeNAVClient is an ingest.NAVClient returning canned NAV points.
type FakeNAVClient struct {
	Points []ultimus.NAVPoint
	Err    error
}

// DailyNAVHistory returns the configured points and error.
func (f *FakeNAVClient) DailyNAVHistory(_ context.Context, _ string, _, _ time.Time) ([]ultimus.NAVPoint, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Points, nil
}

// ChartResponse builds a yahoo chart API response with one close per
// date. Built through the wire format so the fake can never drift from
// the real response shape.
func ChartResponse(t *testing.T, symbol string, dates []time.Time, prices []float64) yahoo.Response {
	t.Helper()
	if len(dates) != len(prices) {
		t.Fatalf("ChartResponse: %d dates for %d prices", len(dates), len(prices))
	}

	timestamps := make([]string, 0, len(prices))
	closes := make([]string, 0, len(prices))
	volumes := make([]string, 0, len(prices))
	for i, p := range prices {
		timestamps = append(timestamps, fmt.Sprintf("%d", dates[i].Unix()))
		closes = append(closes, fmt.Sprintf("%g", p))
		volumes = append(volumes, "1000")
	}

	priceList := strings.Join(closes, ",")
	payload := fmt.Sprintf(`{
		"chart": {
			"result": [{
				"meta": {"currency": "USD", "symbol": %q},
				"timestamp": [%s],
				"indicators": {"quote": [{
					"open": [%s], "close": [%s], "high": [%s], "low": [%s],
					"volume": [%s]
				}]}
			}],
			"error": null
		}
	}`, symbol, strings.Join(timestamps, ","), priceList, priceList, priceList, priceList, strings.Join(volumes, ","))

	var resp yahoo.Response
	if err := json.Unmarshal([]byte(payload), &resp); err != nil {
		t.Fatalf("Failed to build chart response: %v", err)
	}
	return resp
}
