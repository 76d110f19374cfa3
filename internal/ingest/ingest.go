// Package ingest implements the offline batch job that pulls fund NAV
// histories, computes monthly returns and statistics, and regenerates
// the analytics snapshot. It runs human-supervised (manually or on a
// cron schedule); no live request path depends on a run succeeding.
package ingest

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/marketfold/fund-analyzer/internal/analytics"
	"github.com/marketfold/fund-analyzer/internal/config"
	"github.com/marketfold/fund-analyzer/internal/model"
	"github.com/marketfold/fund-analyzer/internal/repository"
	"github.com/marketfold/fund-analyzer/internal/snapshot"
	"github.com/marketfold/fund-analyzer/internal/ultimus"
	"github.com/marketfold/fund-analyzer/internal/yahoo"
)

// NAVClient fetches daily NAVs from the in-house fund administrator.
type NAVClient interface {
	DailyNAVHistory(ctx context.Context, ticker string, start, end time.Time) ([]ultimus.NAVPoint, error)
}

// ChartClient fetches and parses daily market prices (Yahoo chart API).
type ChartClient interface {
	QueryDailyHistory(ctx context.Context, symbol string, start, end time.Time) (yahoo.Response, error)
	ParseChart(yahoo.Response) (yahoo.PriceChart, error)
}

// Runner executes one ingestion batch.
type Runner struct {
	store     *snapshot.Store
	priceRepo *repository.PriceRepository
	nav       NAVClient
	chart     ChartClient
	now       func() time.Time
}

// NewRunner creates a Runner. nav may be nil when no in-house funds are
// configured; chart is required.
func NewRunner(store *snapshot.Store, priceRepo *repository.PriceRepository, nav NAVClient, chart ChartClient) *Runner {
	return &Runner{
		store:     store,
		priceRepo: priceRepo,
		nav:       nav,
		chart:     chart,
		now:       time.Now,
	}
}

// Run processes every fund sequentially: fetch daily history, cache raw
// prices, resample to monthly, compute returns and stats, and merge into
// the shared returns matrix. Fetches are deliberately serial; the fund
// count is tens, not thousands, and the job is infrequent.
//
// All snapshot files are written only after every fund succeeds, so a
// mid-batch failure leaves the previously persisted snapshot untouched.
func (r *Runner) Run(ctx context.Context, funds []config.FundSpec) error {
	snap, err := r.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load existing snapshot: %w", err)
	}

	for _, fund := range funds {
		if err := r.ingestFund(ctx, snap, fund); err != nil {
			return fmt.Errorf("fund %s: %w", fund.Ticker, err)
		}
	}

	if err := r.store.Save(snap); err != nil {
		return fmt.Errorf("failed to persist snapshot: %w", err)
	}
	log.Printf("Snapshot written: %d funds, %d months", len(snap.Lookup), len(snap.Matrix.Dates))
	return nil
}

func (r *Runner) ingestFund(ctx context.Context, snap *snapshot.Snapshot, fund config.FundSpec) error {
	obs, err := r.fetchObservations(ctx, fund)
	if err != nil {
		return err
	}
	log.Printf("%s: %d daily observations", fund.Ticker, len(obs))

	if err := r.cachePrices(fund.Ticker, obs); err != nil {
		return err
	}

	monthly := analytics.ResampleMonthly(obs)
	returns := analytics.MonthlyReturns(monthly)

	months := make([]string, 0, len(returns))
	for _, ret := range returns {
		months = append(months, ret.Date)
	}
	snap.Matrix.ExtendDates(months)
	snap.Matrix.MergeFund(fund.Ticker, returns)

	meta := model.Fund{
		Ticker: fund.Ticker,
		Name:   fund.Name,
		Type:   fund.Type,
		Sector: fund.Sector,
	}
	snap.Lookup[fund.Ticker] = meta

	detail := &model.FundDetail{
		Fund:          meta,
		MonthlyPrices: monthly,
		Returns:       returns,
	}
	if stats, ok := analytics.Compute(fund.Ticker, returns); ok {
		snap.UpsertStats(stats)
		detail.Stats = &stats
	} else {
		log.Printf("%s: only %d monthly returns, excluded from stats", fund.Ticker, len(returns))
	}
	snap.Funds[fund.Ticker] = detail

	return nil
}

// fetchObservations pulls the raw daily series for a fund from its
// configured source, from inception (or a 10y default) to now.
func (r *Runner) fetchObservations(ctx context.Context, fund config.FundSpec) ([]analytics.Observation, error) {
	end := r.now()
	start := end.AddDate(-10, 0, 0)
	if fund.Inception != "" {
		parsed, err := time.Parse("2006-01-02", fund.Inception)
		if err != nil {
			return nil, fmt.Errorf("invalid inception date %q: %w", fund.Inception, err)
		}
		start = parsed
	}

	if fund.Source == "ultimus" {
		if r.nav == nil {
			return nil, fmt.Errorf("no ultimus client configured for fund %s", fund.Ticker)
		}
		points, err := r.nav.DailyNAVHistory(ctx, fund.Ticker, start, end)
		if err != nil {
			return nil, err
		}
		obs := make([]analytics.Observation, 0, len(points))
		for _, p := range points {
			obs = append(obs, analytics.Observation{Date: p.Date, NAV: p.NAV})
		}
		return obs, nil
	}

	resp, err := r.chart.QueryDailyHistory(ctx, fund.Ticker, start, end)
	if err != nil {
		return nil, err
	}
	chart, err := r.chart.ParseChart(resp)
	if err != nil {
		return nil, err
	}
	obs := make([]analytics.Observation, 0, len(chart.Indicators))
	for _, ind := range chart.Indicators {
		obs = append(obs, analytics.Observation{Date: ind.Date, Price: ind.PriceClose})
	}
	return obs, nil
}

func (r *Runner) cachePrices(ticker string, obs []analytics.Observation) error {
	prices := make([]model.FundPrice, 0, len(obs))
	for _, o := range obs {
		nav := o.NAV
		if nav <= 0 {
			nav = o.Price
		}
		if nav <= 0 {
			continue
		}
		prices = append(prices, model.FundPrice{Ticker: ticker, Date: o.Date, NAV: nav})
	}
	if len(prices) == 0 {
		return nil
	}
	return r.priceRepo.UpsertPrices(ticker, prices)
}
