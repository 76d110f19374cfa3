package repository

import (
	"testing"
	"time"

	"github.com/marketfold/fund-analyzer/internal/testutil"
	"github.com/marketfold/fund-analyzer/internal/ultimus"
)

// 32 zero bytes, base64. Fine for tests, never for production.
const testFernetKey = "AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA="

const altFernetKey = "MDEyMzQ1Njc4OWFiY2RlZjAxMjM0NTY3ODlhYmNkZWY="

func TestTokenRepository(t *testing.T) {
	db := testutil.SetupTestDB(t)

	repo, err := NewTokenRepository(db, testFernetKey)
	if err != nil {
		t.Fatalf("NewTokenRepository: %v", err)
	}

	t.Run("empty store is a miss", func(t *testing.T) {
		_, ok, err := repo.LoadToken()
		if err != nil {
			t.Fatalf("LoadToken: %v", err)
		}
		if ok {
			t.Error("Expected miss on empty store")
		}
	})

	expiry := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)

	t.Run("round trip", func(t *testing.T) {
		tok := ultimus.Token{Value: "tok-1", ExpiresAt: expiry}
		if err := repo.SaveToken(tok); err != nil {
			t.Fatalf("SaveToken: %v", err)
		}

		got, ok, err := repo.LoadToken()
		if err != nil {
			t.Fatalf("LoadToken: %v", err)
		}
		if !ok || got.Value != "tok-1" || !got.ExpiresAt.Equal(expiry) {
			t.Errorf("LoadToken = %+v (ok %v)", got, ok)
		}
	})

	t.Run("save replaces previous token", func(t *testing.T) {
		tok := ultimus.Token{Value: "tok-2", ExpiresAt: expiry.Add(time.Hour)}
		if err := repo.SaveToken(tok); err != nil {
			t.Fatalf("SaveToken: %v", err)
		}

		got, ok, err := repo.LoadToken()
		if err != nil {
			t.Fatalf("LoadToken: %v", err)
		}
		if !ok || got.Value != "tok-2" {
			t.Errorf("LoadToken = %+v (ok %v), want replaced token", got, ok)
		}
	})

	t.Run("wrong key is a miss, not an error", func(t *testing.T) {
		other, err := NewTokenRepository(db, altFernetKey)
		if err != nil {
			t.Fatalf("NewTokenRepository: %v", err)
		}

		_, ok, err := other.LoadToken()
		if err != nil {
			t.Fatalf("LoadToken: %v", err)
		}
		if ok {
			t.Error("Expected miss when ciphertext fails verification")
		}
	})
}

func TestNewTokenRepository_InvalidKey(t *testing.T) {
	db := testutil.SetupTestDB(t)
	if _, err := NewTokenRepository(db, "not-a-key"); err == nil {
		t.Error("Expected error for malformed key")
	}
}
