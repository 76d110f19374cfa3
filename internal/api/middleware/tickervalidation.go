package middleware

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/marketfold/fund-analyzer/internal/api/response"
	"github.com/marketfold/fund-analyzer/internal/validation"
)

// ValidateTickerMiddleware validates the {ticker} URL parameter: present
// and 1-6 letters (case-insensitive on input; handlers receive whatever
// the client sent and upper-case it themselves). Returns 400 otherwise.
//
// Example usage in router:
//
//	r.Route("/{ticker}", func(r chi.Router) {
//	    r.Use(middleware.ValidateTickerMiddleware)
//	    r.Get("/", handler.Fund)
//	})
func ValidateTickerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ticker := chi.URLParam(r, "ticker")

		if ticker == "" {
			response.RespondError(w, http.StatusBadRequest, "ticker is required", "")
			return
		}

		if err := validation.ValidateTicker(strings.ToUpper(ticker)); err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid ticker format", err.Error())
			return
		}

		next.ServeHTTP(w, r)
	})
}
