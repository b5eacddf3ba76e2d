package middleware_test

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/kinetree/pkg/adapters/memory"
	"github.com/aretw0/kinetree/pkg/domain"
	"github.com/aretw0/kinetree/pkg/persistence/middleware"
	"github.com/aretw0/kinetree/pkg/ports"
)

func generateKey(t *testing.T) []byte {
	t.Helper()
	k := make([]byte, 32)
	_, err := io.ReadFull(rand.Reader, k)
	require.NoError(t, err)
	return k
}

func encrypted(t *testing.T, next ports.DocumentStore, cfg middleware.EncryptionConfig) ports.DocumentStore {
	t.Helper()
	mw, err := middleware.NewEncryption(cfg)
	require.NoError(t, err)
	return middleware.Chain(next, mw)
}

func TestEncryption_Contract(t *testing.T) {
	ports.RunDocumentStoreContract(t, encrypted(t, memory.NewStore(), middleware.EncryptionConfig{ActiveKey: generateKey(t)}))
}

func TestEncryption_Roundtrip(t *testing.T) {
	underlying := memory.NewStore()
	secure := encrypted(t, underlying, middleware.EncryptionConfig{ActiveKey: generateKey(t)})
	ctx := context.Background()

	doc := &domain.Document{
		Name:      "arm",
		URDF:      []byte(`<robot name="secret-arm"/>`),
		Source:    []byte("robot: secret-arm"),
		Summary:   "1 link",
		UpdatedAt: time.Now(),
	}
	require.NoError(t, secure.Save(ctx, doc))

	raw, err := underlying.Load(ctx, "arm")
	require.NoError(t, err)
	assert.False(t, bytes.Contains(raw.URDF, []byte("secret-arm")), "URDF must be sealed")
	assert.False(t, bytes.Contains(raw.Source, []byte("secret-arm")), "source must be sealed")
	assert.Equal(t, "1 link", raw.Summary, "summary stays in clear")

	loaded, err := secure.Load(ctx, "arm")
	require.NoError(t, err)
	assert.Equal(t, doc.URDF, loaded.URDF)
	assert.Equal(t, doc.Source, loaded.Source)

	names, err := secure.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"arm"}, names)
}

func TestEncryption_KeyRotation(t *testing.T) {
	underlying := memory.NewStore()
	oldKey, newKey := generateKey(t), generateKey(t)
	ctx := context.Background()

	secureOld := encrypted(t, underlying, middleware.EncryptionConfig{ActiveKey: oldKey})
	require.NoError(t, secureOld.Save(ctx, &domain.Document{Name: "arm", URDF: []byte("v1")}))

	secureNew := encrypted(t, underlying, middleware.EncryptionConfig{
		ActiveKey:    newKey,
		FallbackKeys: [][]byte{oldKey},
	})
	loaded, err := secureNew.Load(ctx, "arm")
	require.NoError(t, err, "fallback key must open old documents")
	assert.Equal(t, []byte("v1"), loaded.URDF)

	require.NoError(t, secureNew.Save(ctx, &domain.Document{Name: "arm", URDF: []byte("v2")}))
	_, err = secureOld.Load(ctx, "arm")
	assert.Error(t, err, "the old key alone cannot open documents sealed with the new one")
}

func TestEncryption_PlainDocument(t *testing.T) {
	underlying := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, underlying.Save(ctx, &domain.Document{Name: "legacy", URDF: []byte("<robot/>")}))

	secure := encrypted(t, underlying, middleware.EncryptionConfig{ActiveKey: generateKey(t)})
	_, err := secure.Load(ctx, "legacy")
	assert.ErrorIs(t, err, middleware.ErrNotEncrypted)

	_, err = secure.Load(ctx, "absent")
	assert.ErrorIs(t, err, domain.ErrDocumentNotFound)
}

func TestNewEncryption_InvalidKeys(t *testing.T) {
	_, err := middleware.NewEncryption(middleware.EncryptionConfig{ActiveKey: []byte("short-key")})
	assert.Error(t, err)

	_, err = middleware.NewEncryption(middleware.EncryptionConfig{
		ActiveKey:    generateKey(t),
		FallbackKeys: [][]byte{[]byte("short")},
	})
	assert.Error(t, err)
}

func TestParseKey(t *testing.T) {
	key := generateKey(t)

	k, err := middleware.ParseKey(hex.EncodeToString(key))
	require.NoError(t, err)
	assert.Equal(t, key, k)

	k, err = middleware.ParseKey(base64.StdEncoding.EncodeToString(key))
	require.NoError(t, err)
	assert.Equal(t, key, k)

	_, err = middleware.ParseKey("c2hvcnQ=")
	assert.Error(t, err)
}
