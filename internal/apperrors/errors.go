package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrFundNotFound indicates that no snapshot record exists for the ticker.
	ErrFundNotFound = errors.New("fund not found")
)

// Statement parsing errors. The parser is a best-effort heuristic extractor:
// these cover hard failures only, never heuristic misses.
var (
	// ErrStatementUnreadable indicates the uploaded document could not be
	// opened or its text could not be extracted.
	ErrStatementUnreadable = errors.New("statement could not be read")

	// ErrStatementEncrypted indicates the uploaded PDF is password protected.
	ErrStatementEncrypted = errors.New("statement is encrypted")

	// ErrEmptyStatement indicates extraction succeeded but produced no text.
	ErrEmptyStatement = errors.New("statement contains no extractable text")
)

// Upstream data errors represent failures talking to pricing providers.
var (
	// ErrUpstreamUnavailable indicates the pricing API returned a non-200 response.
	ErrUpstreamUnavailable = errors.New("pricing provider unavailable")

	// ErrUpstreamAuth indicates token acquisition or refresh failed.
	ErrUpstreamAuth = errors.New("pricing provider authentication failed")

	// ErrNoPriceData indicates the provider responded but carried no usable prices.
	ErrNoPriceData = errors.New("no price data returned")
)
