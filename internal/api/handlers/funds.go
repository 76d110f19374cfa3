package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/marketfold/fund-analyzer/internal/api/response"
	"github.com/marketfold/fund-analyzer/internal/apperrors"
	"github.com/marketfold/fund-analyzer/internal/service"
)

// FundHandler handles HTTP requests for fund analytics endpoints.
// It serves as the HTTP layer adapter, parsing requests and delegating
// to the fundService.
type FundHandler struct {
	fundService *service.FundService
}

// NewFundHandler creates a new FundHandler with the provided service dependency.
func NewFundHandler(fundService *service.FundService) *FundHandler {
	return &FundHandler{
		fundService: fundService,
	}
}

// Funds handles GET requests for the per-fund stats list.
//
// Endpoint: GET /api/fund
// Response: 200 OK with array of FundStats
func (h *FundHandler) Funds(w http.ResponseWriter, r *http.Request) {
	stats, err := h.fundService.GetAllStats()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve fund stats", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, stats)
}

// Fund handles GET requests for one fund's detail record.
//
// Endpoint: GET /api/fund/{ticker}
// Response: 200 OK with FundDetail, 404 when the snapshot has no such fund
func (h *FundHandler) Fund(w http.ResponseWriter, r *http.Request) {
	ticker := strings.ToUpper(chi.URLParam(r, "ticker"))

	detail, err := h.fundService.GetFund(ticker)
	if err != nil {
		if errors.Is(err, apperrors.ErrFundNotFound) {
			response.RespondError(w, http.StatusNotFound, "fund not found", ticker)
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve fund", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, detail)
}

// Prices handles GET requests for a fund's cached daily NAV history.
//
// Endpoint: GET /api/fund/{ticker}/prices
// Response: 200 OK with array of FundPrice (empty when nothing cached)
func (h *FundHandler) Prices(w http.ResponseWriter, r *http.Request) {
	ticker := strings.ToUpper(chi.URLParam(r, "ticker"))

	prices, err := h.fundService.GetPriceHistory(ticker)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve price history", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, prices)
}

// ReturnsMatrix handles GET requests for the cross-sectional returns
// matrix consumed by the portfolio analyzer.
//
// Endpoint: GET /api/analyzer/returns-matrix
func (h *FundHandler) ReturnsMatrix(w http.ResponseWriter, r *http.Request) {
	matrix, err := h.fundService.GetReturnsMatrix()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve returns matrix", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, matrix)
}
