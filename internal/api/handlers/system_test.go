package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/marketfold/fund-analyzer/internal/service"
	"github.com/marketfold/fund-analyzer/internal/testutil"
	"github.com/marketfold/fund-analyzer/internal/version"
)

func TestSystemHandler_Health(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := NewSystemHandler(service.NewSystemService(db))

		req := httptest.NewRequest(http.MethodGet, "/api/system/health", nil)
		rec := httptest.NewRecorder()
		handler.Health(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("Status = %d", rec.Code)
		}

		var health HealthResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &health); err != nil {
			t.Fatal(err)
		}
		if health.Status != "healthy" || health.Database != "connected" {
			t.Errorf("Health = %+v", health)
		}
	})

	t.Run("database down", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		db.Close()
		handler := NewSystemHandler(service.NewSystemService(db))

		req := httptest.NewRequest(http.MethodGet, "/api/system/health", nil)
		rec := httptest.NewRecorder()
		handler.Health(rec, req)

		if rec.Code != http.StatusServiceUnavailable {
			t.Fatalf("Status = %d, want 503", rec.Code)
		}

		var health HealthResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &health); err != nil {
			t.Fatal(err)
		}
		if health.Status != "unhealthy" || health.Error == "" {
			t.Errorf("Health = %+v", health)
		}
	})
}

func TestSystemHandler_Version(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewSystemHandler(service.NewSystemService(db))

	req := httptest.NewRequest(http.MethodGet, "/api/system/version", nil)
	rec := httptest.NewRecorder()
	handler.Version(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Status = %d", rec.Code)
	}

	var v VersionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatal(err)
	}
	if v.Version != version.Version {
		t.Errorf("Version = %q, want %q", v.Version, version.Version)
	}
}
