package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/marketfold/fund-analyzer/internal/analytics"
	"github.com/marketfold/fund-analyzer/internal/model"
	"github.com/marketfold/fund-analyzer/internal/repository"
	"github.com/marketfold/fund-analyzer/internal/service"
	"github.com/marketfold/fund-analyzer/internal/snapshot"
	"github.com/marketfold/fund-analyzer/internal/testutil"
)

func setupFundHandler(t *testing.T) *FundHandler {
	t.Helper()

	matrix := analytics.NewReturnsMatrix()
	matrix.ExtendDates([]string{"2024-01", "2024-02"})
	matrix.MergeFund("THLV", []model.MonthlyReturn{
		{Date: "2024-01", Return: 0.01},
		{Date: "2024-02", Return: -0.005},
	})

	store := snapshot.NewStore(t.TempDir())
	err := store.Save(&snapshot.Snapshot{
		Matrix: matrix,
		Lookup: map[string]model.Fund{
			"THLV": {Ticker: "THLV", Name: "Texas Capital Low Volatility ETF", Type: "etf"},
		},
		Stats: []model.FundStats{
			{Ticker: "THLV", AnnualizedReturn: 0.08, Volatility: 0.12, MaxDrawdown: -0.05, SharpeRatio: 0.29, SortinoRatio: 0.4},
		},
		Funds: map[string]*model.FundDetail{
			"THLV": {
				Fund:          model.Fund{Ticker: "THLV", Name: "Texas Capital Low Volatility ETF", Type: "etf"},
				MonthlyPrices: map[string]float64{"2024-01": 25.1, "2024-02": 24.97},
				Returns:       []model.MonthlyReturn{{Date: "2024-02", Return: -0.00517928}},
			},
		},
	})
	if err != nil {
		t.Fatalf("Failed to seed snapshot: %v", err)
	}

	db := testutil.SetupTestDB(t)
	priceRepo := repository.NewPriceRepository(db)
	if err := priceRepo.UpsertPrices("THLV", []model.FundPrice{
		{Date: time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), NAV: 25.05},
		{Date: time.Date(2024, time.February, 2, 0, 0, 0, 0, time.UTC), NAV: 25.11},
	}); err != nil {
		t.Fatalf("Failed to seed prices: %v", err)
	}

	return NewFundHandler(service.NewFundService(store, priceRepo))
}

func TestFundHandler_Funds(t *testing.T) {
	handler := setupFundHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/fund", nil)
	rec := httptest.NewRecorder()
	handler.Funds(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Status = %d, body %s", rec.Code, rec.Body.String())
	}

	var stats []model.FundStats
	if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
		t.Fatal(err)
	}
	if len(stats) != 1 || stats[0].Ticker != "THLV" {
		t.Errorf("Stats = %+v", stats)
	}
	if stats[0].AnnualizedReturn != 0.08 {
		t.Errorf("AnnualizedReturn = %v", stats[0].AnnualizedReturn)
	}
}

func TestFundHandler_Fund(t *testing.T) {
	handler := setupFundHandler(t)

	t.Run("known ticker", func(t *testing.T) {
		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/fund/thlv", map[string]string{"ticker": "thlv"})
		rec := httptest.NewRecorder()
		handler.Fund(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("Status = %d, body %s", rec.Code, rec.Body.String())
		}

		var detail model.FundDetail
		if err := json.Unmarshal(rec.Body.Bytes(), &detail); err != nil {
			t.Fatal(err)
		}
		if detail.Ticker != "THLV" || detail.MonthlyPrices["2024-01"] != 25.1 {
			t.Errorf("Detail = %+v", detail)
		}
	})

	t.Run("unknown ticker", func(t *testing.T) {
		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/fund/ZZZ", map[string]string{"ticker": "ZZZ"})
		rec := httptest.NewRecorder()
		handler.Fund(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("Status = %d, want 404", rec.Code)
		}
	})
}

func TestFundHandler_Prices(t *testing.T) {
	handler := setupFundHandler(t)

	t.Run("cached history", func(t *testing.T) {
		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/fund/THLV/prices", map[string]string{"ticker": "THLV"})
		rec := httptest.NewRecorder()
		handler.Prices(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("Status = %d, body %s", rec.Code, rec.Body.String())
		}

		var prices []model.FundPrice
		if err := json.Unmarshal(rec.Body.Bytes(), &prices); err != nil {
			t.Fatal(err)
		}
		if len(prices) != 2 || prices[0].NAV != 25.05 {
			t.Errorf("Prices = %+v", prices)
		}
	})

	t.Run("no cached history", func(t *testing.T) {
		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/fund/ZZZ/prices", map[string]string{"ticker": "ZZZ"})
		rec := httptest.NewRecorder()
		handler.Prices(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("Status = %d", rec.Code)
		}
		if body := rec.Body.String(); body != "[]\n" {
			t.Errorf("Body = %q, want empty array", body)
		}
	})
}

func TestFundHandler_ReturnsMatrix(t *testing.T) {
	handler := setupFundHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/analyzer/returns-matrix", nil)
	rec := httptest.NewRecorder()
	handler.ReturnsMatrix(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Status = %d, body %s", rec.Code, rec.Body.String())
	}

	var matrix analytics.ReturnsMatrix
	if err := json.Unmarshal(rec.Body.Bytes(), &matrix); err != nil {
		t.Fatal(err)
	}
	if len(matrix.Dates) != 2 {
		t.Errorf("Dates = %v", matrix.Dates)
	}
	if len(matrix.Returns["THLV"]) != 2 || matrix.Returns["THLV"][0] != 0.01 {
		t.Errorf("Returns = %v", matrix.Returns)
	}
}
