package middleware

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"github.com/Ernest-Sab/IPR-Tool/pkg/domain"
	"github.com/Ernest-Sab/IPR-Tool/pkg/ports"
)

// EncryptionConfig holds the keys for encryption and decryption.
type EncryptionConfig struct {
	// ActiveKey is the key used for encrypting new data.
	// Must be 32 bytes for AES-256.
	ActiveKey []byte

	// FallbackKeys is a list of old keys to try when decryption fails.
	// This enables zero-downtime key rotation.
	FallbackKeys [][]byte
}

type encryptionMiddleware struct {
	next   ports.OperationStore
	config EncryptionConfig
}

// NewEncryptionMiddleware creates a middleware that encrypts the asset-naming
// fields of each record (base object, deformer name, error text) with AES-GCM
// before they reach the underlying store. Status, kind and timestamps stay in
// the clear so dashboards keep working.
func NewEncryptionMiddleware(config EncryptionConfig) Middleware {
	if len(config.ActiveKey) != 32 {
		panic("active key must be 32 bytes (AES-256)")
	}
	return func(next ports.OperationStore) ports.OperationStore {
		return &encryptionMiddleware{
			next:   next,
			config: config,
		}
	}
}

func (m *encryptionMiddleware) Save(ctx context.Context, rec *domain.OperationRecord) error {
	sealed := *rec
	for _, field := range []*string{&sealed.BaseObject, &sealed.DeformerName, &sealed.Error} {
		enc, err := m.sealField(*field)
		if err != nil {
			return fmt.Errorf("failed to encrypt record %s: %w", rec.ID, err)
		}
		*field = enc
	}
	return m.next.Save(ctx, &sealed)
}

func (m *encryptionMiddleware) Get(ctx context.Context, id string) (*domain.OperationRecord, error) {
	rec, err := m.next.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return m.openRecord(rec)
}

func (m *encryptionMiddleware) List(ctx context.Context) ([]*domain.OperationRecord, error) {
	recs, err := m.next.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.OperationRecord, 0, len(recs))
	for _, rec := range recs {
		open, err := m.openRecord(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, open)
	}
	return out, nil
}

func (m *encryptionMiddleware) openRecord(rec *domain.OperationRecord) (*domain.OperationRecord, error) {
	open := *rec
	for _, field := range []*string{&open.BaseObject, &open.DeformerName, &open.Error} {
		plain, err := m.openField(*field)
		if err != nil {
			return nil, fmt.Errorf("failed to decrypt record %s: %w", rec.ID, err)
		}
		*field = plain
	}
	return &open, nil
}

func (m *encryptionMiddleware) sealField(value string) (string, error) {
	if value == "" {
		return "", nil
	}
	ciphertext, err := encrypt([]byte(value), m.config.ActiveKey)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

func (m *encryptionMiddleware) openField(value string) (string, error) {
	if value == "" {
		return "", nil
	}
	ciphertext, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return "", fmt.Errorf("failed to decode ciphertext base64: %w", err)
	}
	plain, err := decryptWithRotation(ciphertext, m.config.ActiveKey, m.config.FallbackKeys)
	if err != nil {
		return "", err
	}
	return string(plain), nil
}

// Helpers

func encrypt(plaintext []byte, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

func decryptWithRotation(ciphertext []byte, activeKey []byte, fallbackKeys [][]byte) ([]byte, error) {
	// Try active key first
	if plain, err := decrypt(ciphertext, activeKey); err == nil {
		return plain, nil
	}

	// Try fallbacks in order
	for _, key := range fallbackKeys {
		if plain, err := decrypt(ciphertext, key); err == nil {
			return plain, nil
		}
	}

	return nil, errors.New("decryption failed with all available keys")
}

func decrypt(ciphertext []byte, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	if len(ciphertext) < gcm.NonceSize() {
		return nil, errors.New("ciphertext too short")
	}

	nonce := ciphertext[:gcm.NonceSize()]
	ciphertextBytes := ciphertext[gcm.NonceSize():]

	return gcm.Open(nil, nonce, ciphertextBytes, nil)
}
