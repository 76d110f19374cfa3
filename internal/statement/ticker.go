package statement

import "regexp"

var tickerPattern = regexp.MustCompile(`^[A-Z]{1,6}$`)

// knownETFs are widely held ETFs (major index funds, sector SPDRs, bond
// funds) plus the in-house fund tickers. Membership classifies a holding
// as "etf" and validates short ticker candidates.
var knownETFs = map[string]bool{
	// In-house funds
	"THLV": true, "THIR": true,
	// Broad index
	"SPY": true, "IVV": true, "VOO": true, "VTI": true, "ITOT": true,
	"QQQ": true, "QQQM": true, "DIA": true, "RSP": true,
	"IWM": true, "IWB": true, "IWF": true, "IWD": true,
	"MDY": true, "IJH": true, "IJR": true,
	"IVW": true, "IVE": true,
	// International
	"EFA": true, "EEM": true, "VEA": true, "VWO": true, "VXUS": true,
	// Style / dividend
	"VTV": true, "VUG": true, "VB": true, "VO": true,
	"VIG": true, "VYM": true, "DVY": true, "SCHD": true, "SCHX": true,
	// Sector SPDRs
	"XLB": true, "XLC": true, "XLE": true, "XLF": true, "XLI": true,
	"XLK": true, "XLP": true, "XLRE": true, "XLU": true, "XLV": true,
	"XLY": true,
	// Fixed income / cash
	"AGG": true, "BND": true, "LQD": true, "HYG": true, "TLT": true,
	"IEF": true, "SHY": true, "TIP": true, "MUB": true,
	"BIL": true, "SHV": true,
	// Commodities / real estate / thematic
	"GLD": true, "SLV": true, "USO": true, "VNQ": true,
	"SMH": true, "SOXX": true, "XBI": true, "IBB": true, "ARKK": true,
	"GDX": true,
}

// knownStocks are large-cap equities common in retail statements. They
// validate short candidates but classify as "stock".
var knownStocks = map[string]bool{
	"AAPL": true, "MSFT": true, "GOOGL": true, "GOOG": true, "AMZN": true,
	"NVDA": true, "META": true, "TSLA": true, "BRKB": true,
	"JPM": true, "BAC": true, "WFC": true, "GS": true, "MS": true, "C": true,
	"V": true, "MA": true, "AXP": true,
	"UNH": true, "JNJ": true, "PFE": true, "MRK": true, "ABBV": true,
	"LLY": true,
	"XOM": true, "CVX": true, "COP": true,
	"HD": true, "WMT": true, "COST": true, "TGT": true, "MCD": true,
	"PG": true, "KO": true, "PEP": true, "MO": true,
	"DIS": true, "NFLX": true, "CMCSA": true,
	"T": true, "VZ": true, "TMUS": true,
	"CRM": true, "ORCL": true, "ADBE": true, "AMD": true, "INTC": true,
	"CSCO": true, "IBM": true, "QCOM": true, "TXN": true, "AVGO": true,
	"BA": true, "CAT": true, "GE": true, "HON": true, "UPS": true,
	"F": true, "GM": true, "NKE": true, "SBUX": true,
}

// stopWords are uppercase tokens common in statement boilerplate
// (custodian names, account jargon, generic English) that must never be
// treated as ticker candidates, regardless of length.
var stopWords = map[string]bool{
	// Generic English / headers
	"THE": true, "AND": true, "FOR": true, "YOUR": true, "THIS": true,
	"WITH": true, "FROM": true, "DATE": true, "PAGE": true, "SEE": true,
	"NEW": true, "PER": true, "ALL": true, "NOT": true, "ARE": true,
	"MAY": true, "ANY": true, "EACH": true, "MORE": true,
	// Statement vocabulary
	"TOTAL": true, "CASH": true, "VALUE": true, "PRICE": true,
	"SHARES": true, "SHARE": true, "QTY": true, "SYMBOL": true,
	"CUSIP": true, "ACCOUNT": true, "MARKET": true, "CHANGE": true,
	"INCOME": true, "YIELD": true, "ASSET": true, "ASSETS": true,
	"CLASS": true, "EQUITY": true, "STOCKS": true, "FIXED": true,
	"BOND": true, "BONDS": true, "FUND": true, "FUNDS": true,
	"MONEY": true, "SWEEP": true, "CORE": true, "BALANCE": true,
	"PERIOD": true, "SUMMARY": true, "DETAIL": true,
	"OPENING": true, "CLOSING": true, "ENDING": true, "BEGIN": true,
	"HOLDING": true, "AMOUNT": true, "COST": true, "BASIS": true,
	"GAIN": true, "LOSS": true, "EST": true, "ANNUAL": true,
	"YTD": true, "MTD": true, "NET": true, "GROSS": true,
	"FEE": true, "FEES": true, "RATE": true, "TYPE": true,
	"ACCRUED": true, "PENDING": true, "SETTLED": true, "TRADE": true,
	"TRADES": true, "BUY": true, "SELL": true, "SOLD": true,
	"LOT": true, "LOTS": true, "NOTE": true, "NOTES": true,
	"USD": true, "USA": true, "INC": true, "CORP": true, "CO": true,
	"LLC": true, "LTD": true, "PLC": true, "ETF": true, "NAV": true,
	// Custodians and institutions
	"SCHWAB": true, "CHARLES": true, "FIDO": true, "VANGUARD": true,
	"MERRILL": true, "LYNCH": true, "MORGAN": true, "CHASE": true,
	"WELLS": true, "FARGO": true, "ETRADE": true, "ALLY": true,
	"TDA": true, "PERSH": true, "LPL": true,
	// Regulatory / account types
	"SEC": true, "FDIC": true, "SIPC": true, "FINRA": true, "NYSE": true,
	"NASDAQ": true, "IRA": true, "ROTH": true, "SEP": true, "JOINT": true,
	"TRUST": true, "UTMA": true, "BENE": true,
	// Footer boilerplate
	"MEMBER": true, "VISIT": true, "CALL": true, "ONLINE": true,
	"IMPORTANT": true, "PLEASE": true, "CONT": true, "CONTACT": true,
}

// LooksLikeTicker reports whether s is a plausible ticker symbol: 1-6
// uppercase letters, not statement vocabulary, and for one- or
// two-letter candidates, a member of the known-ticker set (short
// symbols are otherwise too ambiguous to accept).
func LooksLikeTicker(s string) bool {
	if !tickerPattern.MatchString(s) {
		return false
	}
	if stopWords[s] {
		return false
	}
	if len(s) <= 2 {
		return IsKnownTicker(s)
	}
	return true
}

// IsKnownTicker reports membership in the combined allow-list.
func IsKnownTicker(s string) bool {
	return knownETFs[s] || knownStocks[s]
}

// ClassifyType returns "etf" for allow-listed ETFs and "stock" for
// everything else, including allow-listed equities.
func ClassifyType(ticker string) string {
	if knownETFs[ticker] {
		return "etf"
	}
	return "stock"
}
