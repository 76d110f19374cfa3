package main

import (
	"context"
	"database/sql"
	"flag"
	"log"

	"github.com/robfig/cron/v3"

	"github.com/marketfold/fund-analyzer/internal/config"
	"github.com/marketfold/fund-analyzer/internal/database"
	"github.com/marketfold/fund-analyzer/internal/ingest"
	"github.com/marketfold/fund-analyzer/internal/repository"
	"github.com/marketfold/fund-analyzer/internal/snapshot"
	"github.com/marketfold/fund-analyzer/internal/ultimus"
	"github.com/marketfold/fund-analyzer/internal/yahoo"
)

func main() {
	schedule := flag.String("schedule", "", "cron expression; when set, run on a schedule instead of once")
	fundsFile := flag.String("funds", "", "path to the fund universe file (overrides FUNDS_FILE)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *fundsFile != "" {
		cfg.Snapshot.FundsFile = *fundsFile
	}

	funds, err := config.LoadFunds(cfg.Snapshot.FundsFile)
	if err != nil {
		log.Fatalf("Failed to load fund universe: %v", err)
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// A typed nil must not reach the interface field; the runner checks
	// its nav client against nil.
	var nav ingest.NAVClient
	if client := buildUltimusClient(db, cfg); client != nil {
		nav = client
	}

	runner := ingest.NewRunner(
		snapshot.NewStore(cfg.Snapshot.Dir),
		repository.NewPriceRepository(db),
		nav,
		yahoo.NewFinanceClient(),
	)

	if *schedule == "" {
		if err := runner.Run(context.Background(), funds); err != nil {
			log.Fatalf("Ingest failed: %v", err)
		}
		return
	}

	c := cron.New()
	if _, err := c.AddFunc(*schedule, func() {
		if err := runner.Run(context.Background(), funds); err != nil {
			log.Printf("Ingest failed: %v", err)
		}
	}); err != nil {
		log.Fatalf("Invalid schedule %q: %v", *schedule, err)
	}
	log.Printf("Running on schedule %q", *schedule)
	c.Run()
}

// buildUltimusClient wires the in-house NAV client when credentials are
// configured; returns nil otherwise (yahoo-only universes need none).
// When a fernet key is present the access token is persisted encrypted,
// so restarts reuse an unexpired token.
func buildUltimusClient(db *sql.DB, cfg *config.Config) *ultimus.Client {
	if cfg.Ultimus.ClientID == "" || cfg.Ultimus.ClientSecret == "" {
		return nil
	}

	source := ultimus.NewAPITokenSource(cfg.Ultimus.BaseURL, cfg.Ultimus.ClientID, cfg.Ultimus.ClientSecret)

	opts := []ultimus.CacheOption{}
	if cfg.Ultimus.FernetKey != "" {
		tokenRepo, err := repository.NewTokenRepository(db, cfg.Ultimus.FernetKey)
		if err != nil {
			log.Fatalf("Invalid ULTIMUS_FERNET_KEY: %v", err)
		}
		opts = append(opts, ultimus.WithStore(tokenRepo))
	}

	return ultimus.NewClient(cfg.Ultimus.BaseURL, ultimus.NewTokenCache(source, opts...))
}
