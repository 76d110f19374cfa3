package validation

import (
	"fmt"
	"regexp"
	"strings"
)

var tickerPattern = regexp.MustCompile(`^[A-Z]{1,6}$`)

// Error carries per-field validation failures.
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, msg))
	}
	return strings.Join(msgs, "; ")
}

// ValidateTicker checks that a ticker parameter is 1-6 uppercase letters.
// Lowercase input is not normalized here; URL parameters are expected
// upper-cased by the caller.
func ValidateTicker(ticker string) error {
	if ticker == "" {
		return &Error{Fields: map[string]string{"ticker": "ticker is required"}}
	}
	if !tickerPattern.MatchString(ticker) {
		return &Error{Fields: map[string]string{"ticker": "ticker must be 1-6 uppercase letters"}}
	}
	return nil
}
