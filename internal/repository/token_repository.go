package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fernet/fernet-go"

	"github.com/marketfold/fund-analyzer/internal/ultimus"
)

const tokenName = "ultimus"

// TokenRepository persists the upstream API token encrypted at rest with
// a fernet key, so a restart can reuse an unexpired token instead of
// hitting the OAuth endpoint again. Implements ultimus.TokenStore.
type TokenRepository struct {
	db  *sql.DB
	key *fernet.Key
}

// NewTokenRepository creates a TokenRepository. The key string must be a
// base64-encoded fernet key.
func NewTokenRepository(db *sql.DB, key string) (*TokenRepository, error) {
	k, err := fernet.DecodeKey(key)
	if err != nil {
		return nil, fmt.Errorf("invalid fernet key: %w", err)
	}
	return &TokenRepository{db: db, key: k}, nil
}

// SaveToken encrypts and stores the token, replacing any previous one.
func (r *TokenRepository) SaveToken(tok ultimus.Token) error {
	plain, err := json.Marshal(tok)
	if err != nil {
		return fmt.Errorf("failed to encode token: %w", err)
	}
	ciphertext, err := fernet.EncryptAndSign(plain, r.key)
	if err != nil {
		return fmt.Errorf("failed to encrypt token: %w", err)
	}

	_, err = r.db.Exec(`
		INSERT INTO api_token (name, ciphertext, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (name) DO UPDATE SET ciphertext = excluded.ciphertext, updated_at = excluded.updated_at
	`, tokenName, ciphertext, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}
	return nil
}

// LoadToken decrypts the stored token. The second result is false when
// no token exists or the ciphertext fails verification (wrong key or
// tampering), which callers treat the same as a cache miss.
func (r *TokenRepository) LoadToken() (ultimus.Token, bool, error) {
	var ciphertext []byte
	err := r.db.QueryRow(`SELECT ciphertext FROM api_token WHERE name = ?`, tokenName).Scan(&ciphertext)
	if err == sql.ErrNoRows {
		return ultimus.Token{}, false, nil
	}
	if err != nil {
		return ultimus.Token{}, false, fmt.Errorf("failed to load token: %w", err)
	}

	plain := fernet.VerifyAndDecrypt(ciphertext, 0, []*fernet.Key{r.key})
	if plain == nil {
		return ultimus.Token{}, false, nil
	}

	var tok ultimus.Token
	if err := json.Unmarshal(plain, &tok); err != nil {
		return ultimus.Token{}, false, fmt.Errorf("failed to decode token: %w", err)
	}
	return tok, true, nil
}
