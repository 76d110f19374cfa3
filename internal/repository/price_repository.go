package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/marketfold/fund-analyzer/internal/model"
)

// PriceRepository provides data access for the fund_price cache. The
// ingest job upserts raw daily NAV observations here; the API serves
// them back as price history.
type PriceRepository struct {
	db *sql.DB
}

// NewPriceRepository creates a PriceRepository with the provided database connection.
func NewPriceRepository(db *sql.DB) *PriceRepository {
	return &PriceRepository{db: db}
}

// UpsertPrices inserts daily prices for a ticker, replacing the NAV on
// date conflicts. Runs in a single transaction so a partially written
// history never becomes visible.
func (r *PriceRepository) UpsertPrices(ticker string, prices []model.FundPrice) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO fund_price (id, ticker, date, nav)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (ticker, date) DO UPDATE SET nav = excluded.nav
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, p := range prices {
		date := p.Date.UTC().Format("2006-01-02")
		if _, err := stmt.Exec(uuid.New().String(), ticker, date, p.NAV); err != nil {
			return fmt.Errorf("failed to upsert price %s/%s: %w", ticker, date, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit prices: %w", err)
	}
	return nil
}

// GetPrices returns the cached daily prices for a ticker in ascending
// date order. An unknown ticker yields an empty slice, not an error.
func (r *PriceRepository) GetPrices(ticker string) ([]model.FundPrice, error) {
	rows, err := r.db.Query(`
		SELECT id, ticker, date, nav
		FROM fund_price
		WHERE ticker = ?
		ORDER BY date ASC
	`, ticker)
	if err != nil {
		return nil, fmt.Errorf("failed to query prices: %w", err)
	}
	defer rows.Close()

	prices := []model.FundPrice{}
	for rows.Next() {
		var p model.FundPrice
		var date string
		if err := rows.Scan(&p.ID, &p.Ticker, &date, &p.NAV); err != nil {
			return nil, fmt.Errorf("failed to scan price row: %w", err)
		}
		p.Date, err = ParseTime(date)
		if err != nil {
			return nil, err
		}
		prices = append(prices, p)
	}
	return prices, rows.Err()
}

// ParseTime parses a date string in "2006-01-02" or RFC3339 format.
func ParseTime(str string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", str)
	if err != nil {
		t, err = time.Parse(time.RFC3339, str)
		if err != nil {
			return time.Time{}, fmt.Errorf("failed to parse date: %w", err)
		}
	}
	return t.UTC(), nil
}
