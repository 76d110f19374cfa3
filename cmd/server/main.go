package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/marketfold/fund-analyzer/internal/api"
	"github.com/marketfold/fund-analyzer/internal/config"
	"github.com/marketfold/fund-analyzer/internal/database"
	"github.com/marketfold/fund-analyzer/internal/repository"
	"github.com/marketfold/fund-analyzer/internal/service"
	"github.com/marketfold/fund-analyzer/internal/snapshot"
	"github.com/marketfold/fund-analyzer/internal/statement"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Create repositories and stores
	priceRepo := repository.NewPriceRepository(db)
	snapshotStore := snapshot.NewStore(cfg.Snapshot.Dir)

	// Create services
	systemService := service.NewSystemService(db)
	statementService := service.NewStatementService(statement.NewPDFExtractor())
	fundService := service.NewFundService(snapshotStore, priceRepo)

	// Create router
	router := api.NewRouter(systemService, statementService, fundService, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
