package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Snapshot SnapshotConfig
	Ultimus  UltimusConfig
	CORS     CORSConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// SnapshotConfig locates the persisted analytics artifacts.
type SnapshotConfig struct {
	Dir       string // directory holding returns-matrix.json, stats.json, ...
	FundsFile string // fund universe consumed by the ingest job
}

// UltimusConfig holds credentials for the in-house fund data API.
// FernetKey, when set, enables encrypted at-rest persistence of the
// access token so restarts reuse an unexpired token.
type UltimusConfig struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	FernetKey    string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// FundSpec describes one fund in the ingest universe file.
type FundSpec struct {
	Ticker    string `json:"ticker"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	Sector    string `json:"sector"`
	Source    string `json:"source"`    // "ultimus" or "yahoo"
	Inception string `json:"inception"` // "YYYY-MM-DD", start of history fetch
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/fund_analyzer.db"),
		},
		Snapshot: SnapshotConfig{
			Dir:       getEnv("SNAPSHOT_DIR", "./data/snapshot"),
			FundsFile: getEnv("FUNDS_FILE", "./data/funds.json"),
		},
		Ultimus: UltimusConfig{
			BaseURL:      getEnv("ULTIMUS_BASE_URL", "https://api.ultimusfundsolutions.com"),
			ClientID:     getEnv("ULTIMUS_CLIENT_ID", ""),
			ClientSecret: getEnv("ULTIMUS_CLIENT_SECRET", ""),
			FernetKey:    getEnv("ULTIMUS_FERNET_KEY", ""),
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost",
			},
		},
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// LoadFunds reads the ingest fund universe from a JSON file.
func LoadFunds(path string) ([]FundSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read funds file: %w", err)
	}
	var funds []FundSpec
	if err := json.Unmarshal(data, &funds); err != nil {
		return nil, fmt.Errorf("failed to parse funds file: %w", err)
	}
	return funds, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
