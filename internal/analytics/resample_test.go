package analytics

import (
	"testing"
	"time"

	"github.com/marketfold/fund-analyzer/internal/model"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestResampleMonthly(t *testing.T) {
	t.Run("last observation of the month wins", func(t *testing.T) {
		monthly := ResampleMonthly([]Observation{
			{Date: day(2024, time.March, 1), Price: 100},
			{Date: day(2024, time.March, 15), Price: 105},
			{Date: day(2024, time.March, 29), Price: 103},
		})

		if len(monthly) != 1 {
			t.Fatalf("Expected one month, got %v", monthly)
		}
		if monthly["2024-03"] != 103 {
			t.Errorf("monthly[2024-03] = %v, want 103 (last observation)", monthly["2024-03"])
		}
	})

	t.Run("input order is irrelevant", func(t *testing.T) {
		monthly := ResampleMonthly([]Observation{
			{Date: day(2024, time.March, 29), Price: 103},
			{Date: day(2024, time.March, 1), Price: 100},
			{Date: day(2024, time.April, 30), Price: 110},
			{Date: day(2024, time.April, 2), Price: 104},
		})

		if monthly["2024-03"] != 103 || monthly["2024-04"] != 110 {
			t.Errorf("monthly = %v, want 2024-03:103 2024-04:110", monthly)
		}
	})

	t.Run("NAV preferred over market price", func(t *testing.T) {
		monthly := ResampleMonthly([]Observation{
			{Date: day(2024, time.March, 29), NAV: 102.5, Price: 103},
		})

		if monthly["2024-03"] != 102.5 {
			t.Errorf("monthly[2024-03] = %v, want NAV 102.5", monthly["2024-03"])
		}
	})

	t.Run("non-positive prices are skipped", func(t *testing.T) {
		monthly := ResampleMonthly([]Observation{
			{Date: day(2024, time.March, 1), Price: 100},
			{Date: day(2024, time.March, 29), Price: 0},
			{Date: day(2024, time.April, 30), Price: -5},
		})

		if len(monthly) != 1 || monthly["2024-03"] != 100 {
			t.Errorf("monthly = %v, want only 2024-03:100", monthly)
		}
	})
}

func TestMonthKey(t *testing.T) {
	if got := MonthKey(day(2024, time.March, 7)); got != "2024-03" {
		t.Errorf("MonthKey = %q, want 2024-03", got)
	}
}

func TestMonthlyReturns(t *testing.T) {
	t.Run("consecutive months in key order", func(t *testing.T) {
		returns := MonthlyReturns(map[string]float64{
			"2024-01": 100,
			"2024-02": 110,
			"2024-03": 99,
		})

		want := []model.MonthlyReturn{
			{Date: "2024-02", Return: 0.1},
			{Date: "2024-03", Return: -0.1},
		}
		if len(returns) != len(want) {
			t.Fatalf("Returns = %+v, want %+v", returns, want)
		}
		for i := range want {
			if returns[i] != want[i] {
				t.Errorf("Returns[%d] = %+v, want %+v", i, returns[i], want[i])
			}
		}
	})

	t.Run("fewer than two months yields no returns", func(t *testing.T) {
		if got := MonthlyReturns(map[string]float64{"2024-01": 100}); len(got) != 0 {
			t.Errorf("Expected empty series, got %+v", got)
		}
		if got := MonthlyReturns(nil); len(got) != 0 {
			t.Errorf("Expected empty series for nil input, got %+v", got)
		}
	})

	t.Run("non-positive previous price is skipped", func(t *testing.T) {
		returns := MonthlyReturns(map[string]float64{
			"2024-01": 0,
			"2024-02": 110,
			"2024-03": 121,
		})

		if len(returns) != 1 {
			t.Fatalf("Returns = %+v, want one entry", returns)
		}
		if returns[0].Date != "2024-03" || returns[0].Return != 0.1 {
			t.Errorf("Returns[0] = %+v, want 2024-03 / 0.1", returns[0])
		}
	})

	t.Run("returns are rounded to 8 decimals", func(t *testing.T) {
		returns := MonthlyReturns(map[string]float64{
			"2024-01": 3,
			"2024-02": 4,
		})

		if returns[0].Return != 0.33333333 {
			t.Errorf("Return = %v, want 0.33333333", returns[0].Return)
		}
	})
}
