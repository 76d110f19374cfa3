package analytics

import (
	"reflect"
	"testing"

	"github.com/marketfold/fund-analyzer/internal/model"
)

func TestReturnsMatrix_MergeFund(t *testing.T) {
	t.Run("aligns returns onto the grid with zero fill", func(t *testing.T) {
		m := NewReturnsMatrix()
		m.ExtendDates([]string{"2021-01", "2021-02", "2021-03", "2021-04", "2021-05"})

		m.MergeFund("THLV", []model.MonthlyReturn{
			{Date: "2021-03", Return: 0.012},
			{Date: "2021-04", Return: -0.004},
		})

		want := []float64{0, 0, 0.012, -0.004, 0}
		if !reflect.DeepEqual(m.Returns["THLV"], want) {
			t.Errorf("Row = %v, want %v", m.Returns["THLV"], want)
		}
	})

	t.Run("replaces an existing row", func(t *testing.T) {
		m := NewReturnsMatrix()
		m.ExtendDates([]string{"2021-01", "2021-02"})
		m.MergeFund("SPY", []model.MonthlyReturn{{Date: "2021-01", Return: 0.05}})

		m.MergeFund("SPY", []model.MonthlyReturn{{Date: "2021-02", Return: 0.01}})

		want := []float64{0, 0.01}
		if !reflect.DeepEqual(m.Returns["SPY"], want) {
			t.Errorf("Row = %v, want %v", m.Returns["SPY"], want)
		}
	})

	t.Run("months off the grid are dropped", func(t *testing.T) {
		m := NewReturnsMatrix()
		m.ExtendDates([]string{"2021-01"})

		m.MergeFund("SPY", []model.MonthlyReturn{
			{Date: "2021-01", Return: 0.05},
			{Date: "2021-02", Return: 0.01},
		})

		if len(m.Returns["SPY"]) != 1 {
			t.Errorf("Row = %v, want single grid-aligned value", m.Returns["SPY"])
		}
	})
}

func TestReturnsMatrix_ExtendDates(t *testing.T) {
	t.Run("unions and sorts month keys", func(t *testing.T) {
		m := NewReturnsMatrix()
		m.ExtendDates([]string{"2021-03", "2021-01"})
		m.ExtendDates([]string{"2021-02", "2021-03"})

		want := []string{"2021-01", "2021-02", "2021-03"}
		if !reflect.DeepEqual(m.Dates, want) {
			t.Errorf("Dates = %v, want %v", m.Dates, want)
		}
	})

	t.Run("re-aligns existing rows onto the grown grid", func(t *testing.T) {
		m := NewReturnsMatrix()
		m.ExtendDates([]string{"2021-02", "2021-03"})
		m.MergeFund("SPY", []model.MonthlyReturn{
			{Date: "2021-02", Return: 0.02},
			{Date: "2021-03", Return: 0.03},
		})

		m.ExtendDates([]string{"2021-01", "2021-04"})

		want := []float64{0, 0.02, 0.03, 0}
		if !reflect.DeepEqual(m.Returns["SPY"], want) {
			t.Errorf("Row = %v, want %v", m.Returns["SPY"], want)
		}
	})

	t.Run("no-op when nothing new", func(t *testing.T) {
		m := NewReturnsMatrix()
		m.ExtendDates([]string{"2021-01", "2021-02"})
		m.MergeFund("SPY", []model.MonthlyReturn{{Date: "2021-01", Return: 0.05}})

		m.ExtendDates([]string{"2021-02", "2021-01"})

		if !reflect.DeepEqual(m.Returns["SPY"], []float64{0.05, 0}) {
			t.Errorf("Row = %v, want unchanged alignment", m.Returns["SPY"])
		}
	})
}

func TestReplaceStats(t *testing.T) {
	stats := []model.FundStats{
		{Ticker: "SPY", AnnualizedReturn: 0.10},
		{Ticker: "AGG", AnnualizedReturn: 0.03},
	}

	out := ReplaceStats(stats, model.FundStats{Ticker: "SPY", AnnualizedReturn: 0.12})

	if len(out) != 2 {
		t.Fatalf("Stats = %+v, want 2 entries", out)
	}
	if out[0].Ticker != "AGG" {
		t.Errorf("Stats[0] = %+v, want surviving AGG entry first", out[0])
	}
	if out[1].Ticker != "SPY" || out[1].AnnualizedReturn != 0.12 {
		t.Errorf("Stats[1] = %+v, want replaced SPY entry appended", out[1])
	}

	// The input slice is left untouched.
	if stats[0].AnnualizedReturn != 0.10 {
		t.Errorf("Input mutated: %+v", stats)
	}

	out = ReplaceStats(nil, model.FundStats{Ticker: "QQQ"})
	if len(out) != 1 || out[0].Ticker != "QQQ" {
		t.Errorf("Stats = %+v, want single QQQ entry", out)
	}
}
