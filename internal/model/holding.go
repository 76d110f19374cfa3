package model

// Holding represents a single position extracted from an uploaded statement.
type Holding struct {
	Ticker     string  `json:"ticker"`
	Name       string  `json:"name"`
	Allocation float64 `json:"allocation"` // percent of portfolio, one decimal
	Value      float64 `json:"value"`      // dollar market value, 0 if unknown
	Type       string  `json:"type"`       // "etf" or "stock"
}

// ParseDebug carries extraction counters returned alongside a parse result.
type ParseDebug struct {
	TotalLines int `json:"totalLines"`
	TotalPages int `json:"totalPages"`
}

// ParseResult is the normalized output of the statement parser.
type ParseResult struct {
	Holdings []Holding  `json:"holdings"`
	Debug    ParseDebug `json:"debug"`
}
