package middleware

import (
	"bytes"
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/kinetree/pkg/domain"
	"github.com/aretw0/kinetree/pkg/ports"
)

// sealedPrefix marks payloads written by the encryption middleware.
var sealedPrefix = []byte("kinetree:aes256gcm:")

// ErrNotEncrypted is returned when a stored payload lacks the encryption
// marker, e.g. a document written before encryption was enabled.
var ErrNotEncrypted = errors.New("document payload is not encrypted")

// EncryptionConfig holds the keys for encryption and decryption.
type EncryptionConfig struct {
	// ActiveKey seals new documents. Must be 32 bytes for AES-256.
	ActiveKey []byte

	// FallbackKeys are tried in order when the active key cannot open a
	// payload, which allows rotating keys without rewriting the store.
	FallbackKeys [][]byte
}

// ParseKey decodes a 32 byte key given as hex or standard base64.
func ParseKey(s string) ([]byte, error) {
	if k, err := hex.DecodeString(s); err == nil && len(k) == 32 {
		return k, nil
	}
	if k, err := base64.StdEncoding.DecodeString(s); err == nil && len(k) == 32 {
		return k, nil
	}
	return nil, errors.New("encryption key must be 32 bytes, hex or base64 encoded")
}

type encryptionMiddleware struct {
	next   ports.DocumentStore
	config EncryptionConfig
}

// NewEncryption creates a middleware that seals the URDF and the source of
// every document with AES-GCM. Names, summaries and timestamps stay in
// clear so that stores can still list documents.
func NewEncryption(config EncryptionConfig) (Middleware, error) {
	if len(config.ActiveKey) != 32 {
		return nil, errors.New("active key must be 32 bytes (AES-256)")
	}
	for i, k := range config.FallbackKeys {
		if len(k) != 32 {
			return nil, fmt.Errorf("fallback key %d must be 32 bytes (AES-256)", i)
		}
	}
	return func(next ports.DocumentStore) ports.DocumentStore {
		return &encryptionMiddleware{
			next:   next,
			config: config,
		}
	}, nil
}

func (m *encryptionMiddleware) Save(ctx context.Context, doc *domain.Document) error {
	sealed := doc.Clone()

	var err error
	if sealed.URDF, err = m.seal(doc.URDF); err != nil {
		return fmt.Errorf("failed to encrypt document %q: %w", doc.Name, err)
	}
	if sealed.Source, err = m.seal(doc.Source); err != nil {
		return fmt.Errorf("failed to encrypt document %q: %w", doc.Name, err)
	}
	return m.next.Save(ctx, sealed)
}

func (m *encryptionMiddleware) Load(ctx context.Context, name string) (*domain.Document, error) {
	doc, err := m.next.Load(ctx, name)
	if err != nil {
		return nil, err
	}

	if doc.URDF, err = m.open(doc.URDF); err != nil {
		return nil, fmt.Errorf("failed to decrypt document %q: %w", name, err)
	}
	if doc.Source, err = m.open(doc.Source); err != nil {
		return nil, fmt.Errorf("failed to decrypt document %q: %w", name, err)
	}
	return doc, nil
}

func (m *encryptionMiddleware) Delete(ctx context.Context, name string) error {
	return m.next.Delete(ctx, name)
}

func (m *encryptionMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}

// seal leaves empty payloads empty.
func (m *encryptionMiddleware) seal(plain []byte) ([]byte, error) {
	if len(plain) == 0 {
		return nil, nil
	}
	ciphertext, err := encrypt(plain, m.config.ActiveKey)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(sealedPrefix)+base64.StdEncoding.EncodedLen(len(ciphertext)))
	out = append(out, sealedPrefix...)
	return base64.StdEncoding.AppendEncode(out, ciphertext), nil
}

func (m *encryptionMiddleware) open(payload []byte) ([]byte, error) {
	if len(payload) == 0 {
		return nil, nil
	}
	encoded, ok := bytes.CutPrefix(payload, sealedPrefix)
	if !ok {
		return nil, ErrNotEncrypted
	}
	ciphertext, err := base64.StdEncoding.AppendDecode(nil, encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to decode ciphertext base64: %w", err)
	}
	return decryptWithRotation(ciphertext, m.config.ActiveKey, m.config.FallbackKeys)
}

func encrypt(plaintext []byte, key []byte) ([]byte, error) {
	gcm, err := newGCM(key)
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
	if plain, err := decrypt(ciphertext, activeKey); err == nil {
		return plain, nil
	}
	for _, key := range fallbackKeys {
		if plain, err := decrypt(ciphertext, key); err == nil {
			return plain, nil
		}
	}
	return nil, errors.New("decryption failed with all available keys")
}

func decrypt(ciphertext []byte, key []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	if len(ciphertext) < gcm.NonceSize() {
		return nil, errors.New("ciphertext too short")
	}
	nonce, body := ciphertext[:gcm.NonceSize()], ciphertext[gcm.NonceSize():]
	return gcm.Open(nil, nonce, body, nil)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
