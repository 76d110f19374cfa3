package model

// MonthlyReturn is one month's simple return, keyed by "YYYY-MM".
type MonthlyReturn struct {
	Date   string  `json:"date"`
	Return float64 `json:"return"`
}

// FundStats is the derived risk/return summary for one fund.
// Return, volatility and drawdown figures are rounded to 6 decimals,
// ratios to 4, so persisted output stays stable across runs.
type FundStats struct {
	Ticker           string  `json:"ticker"`
	AnnualizedReturn float64 `json:"annualizedReturn"`
	Volatility       float64 `json:"volatility"`
	MaxDrawdown      float64 `json:"maxDrawdown"`
	SharpeRatio      float64 `json:"sharpeRatio"`
	SortinoRatio     float64 `json:"sortinoRatio"`
}

// FundDetail is the full per-fund record persisted as funds/<ticker>.json.
type FundDetail struct {
	Fund
	MonthlyPrices map[string]float64 `json:"monthlyPrices"`
	Returns       []MonthlyReturn    `json:"returns"`
	Stats         *FundStats         `json:"stats,omitempty"`
}
