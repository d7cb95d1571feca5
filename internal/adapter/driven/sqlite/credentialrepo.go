package sqlite

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/ericfisherdev/prcelebration/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.CredentialStore = (*CredentialRepo)(nil)

var errCiphertextTooShort = errors.New("ciphertext too short")

// CredentialRepo stores service tokens sealed with AES-256-GCM. The service
// name is bound as additional data, so a value copied to another row fails
// to open.
type CredentialRepo struct {
	db      *DB
	aead    cipher.AEAD // nil when no key is configured
	aeadErr error
}

// NewCredentialRepo creates a CredentialRepo. key must be 32 bytes, or nil to
// disable credential storage (Set and Get then return ErrEncryptionKeyNotSet).
func NewCredentialRepo(db *DB, key []byte) *CredentialRepo {
	r := &CredentialRepo{db: db}
	if key != nil {
		r.aead, r.aeadErr = newGCM(key)
	}
	return r
}

// Set stores or replaces the token for service.
func (r *CredentialRepo) Set(ctx context.Context, service, plaintext string) error {
	sealed, err := r.seal(service, plaintext)
	if err != nil {
		return err
	}

	const query = `
		INSERT INTO credentials (service, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(service) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
	if _, err := r.db.Writer.ExecContext(ctx, query, service, sealed, formatTime(time.Now())); err != nil {
		return fmt.Errorf("set credential %q: %w", service, err)
	}
	return nil
}

// Get returns the plaintext token for service, or "" if none is stored.
func (r *CredentialRepo) Get(ctx context.Context, service string) (string, error) {
	if err := r.ready(); err != nil {
		return "", err
	}

	var sealed string
	err := r.db.Reader.QueryRowContext(ctx, `SELECT value FROM credentials WHERE service = ?`, service).Scan(&sealed)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get credential %q: %w", service, err)
	}

	plaintext, err := r.open(service, sealed)
	if err != nil {
		return "", fmt.Errorf("decrypt credential %q: %w", service, err)
	}
	return plaintext, nil
}

// Delete removes the token for service. Deleting a missing token is not an error.
func (r *CredentialRepo) Delete(ctx context.Context, service string) error {
	if _, err := r.db.Writer.ExecContext(ctx, `DELETE FROM credentials WHERE service = ?`, service); err != nil {
		return fmt.Errorf("delete credential %q: %w", service, err)
	}
	return nil
}

func (r *CredentialRepo) ready() error {
	if r.aeadErr != nil {
		return r.aeadErr
	}
	if r.aead == nil {
		return driven.ErrEncryptionKeyNotSet
	}
	return nil
}

// seal returns base64(nonce || ciphertext || tag).
func (r *CredentialRepo) seal(service, plaintext string) (string, error) {
	if err := r.ready(); err != nil {
		return "", err
	}

	nonce := make([]byte, r.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	out := r.aead.Seal(nonce, nonce, []byte(plaintext), []byte(service))
	return base64.StdEncoding.EncodeToString(out), nil
}

func (r *CredentialRepo) open(service, encoded string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("base64 decode: %w", err)
	}

	n := r.aead.NonceSize()
	if len(data) < n {
		return "", errCiphertextTooShort
	}

	plaintext, err := r.aead.Open(nil, data[:n], data[n:], []byte(service))
	if err != nil {
		return "", fmt.Errorf("open sealed value: %w", err)
	}
	return string(plaintext), nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("credential key: %w", err)
	}
	return cipher.NewGCM(block)
}
