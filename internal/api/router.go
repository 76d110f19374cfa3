package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/marketfold/fund-analyzer/internal/api/handlers"
	custommiddleware "github.com/marketfold/fund-analyzer/internal/api/middleware"
	"github.com/marketfold/fund-analyzer/internal/config"
	"github.com/marketfold/fund-analyzer/internal/service"
)

// NewRouter creates and configures the HTTP router
func NewRouter(systemService *service.SystemService, statementService *service.StatementService, fundService *service.FundService, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(systemService)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		// Portfolio analyzer namespace
		r.Route("/analyzer", func(r chi.Router) {
			statementHandler := handlers.NewStatementHandler(statementService)
			fundHandler := handlers.NewFundHandler(fundService)
			r.Post("/parse-statement", statementHandler.ParseStatement)
			r.Post("/parse-csv", statementHandler.ParseCSV)
			r.Get("/returns-matrix", fundHandler.ReturnsMatrix)
		})

		// Fund namespace
		r.Route("/fund", func(r chi.Router) {
			fundHandler := handlers.NewFundHandler(fundService)
			r.Get("/", fundHandler.Funds)
			r.Route("/{ticker}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateTickerMiddleware)
				r.Get("/", fundHandler.Fund)
				r.Get("/prices", fundHandler.Prices)
			})
		})
	})

	return r
}
