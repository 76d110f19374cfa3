package model

import "time"

// Fund holds descriptive metadata for one fund, as persisted in
// ticker-lookup.json.
type Fund struct {
	Ticker string `json:"ticker"`
	Name   string `json:"name"`
	Type   string `json:"type"`
	Sector string `json:"sector"`
}

// FundPrice is one raw daily NAV observation from the price cache.
type FundPrice struct {
	ID     string    `json:"id"`
	Ticker string    `json:"ticker"`
	Date   time.Time `json:"date"`
	NAV    float64   `json:"nav"`
}
