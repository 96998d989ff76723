package middleware_test

import (
	"context"
	"crypto/rand"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ernest-Sab/IPR-Tool/pkg/adapters/memory"
	"github.com/Ernest-Sab/IPR-Tool/pkg/domain"
	"github.com/Ernest-Sab/IPR-Tool/pkg/persistence/middleware"
	"github.com/Ernest-Sab/IPR-Tool/pkg/ports"
)

func generateKey(t *testing.T) []byte {
	t.Helper()
	k := make([]byte, 32)
	_, err := io.ReadFull(rand.Reader, k)
	require.NoError(t, err)
	return k
}

func newRecord(id string) *domain.OperationRecord {
	return &domain.OperationRecord{
		ID:           id,
		Kind:         domain.KindSmoothing,
		BaseObject:   "hero_body",
		DeformerName: "hero_body_superDelta",
		Mode:         domain.ModeComponent,
		Components:   4,
		Status:       domain.StatusSucceeded,
		StartedAt:    time.Now().UTC().Truncate(time.Millisecond),
	}
}

func TestEncryptionMiddleware_Roundtrip(t *testing.T) {
	ctx := context.Background()
	underlying := memory.NewStore()
	key := generateKey(t)
	secure := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: key})(underlying)

	require.NoError(t, secure.Save(ctx, newRecord("op-1")))

	// The underlying store must not see the asset names.
	raw, err := underlying.Get(ctx, "op-1")
	require.NoError(t, err)
	assert.NotEqual(t, "hero_body", raw.BaseObject)
	assert.NotEmpty(t, raw.BaseObject)
	assert.Equal(t, domain.StatusSucceeded, raw.Status, "status stays in the clear for dashboards")

	// Reading through the middleware restores them.
	loaded, err := secure.Get(ctx, "op-1")
	require.NoError(t, err)
	assert.Equal(t, "hero_body", loaded.BaseObject)
	assert.Equal(t, "hero_body_superDelta", loaded.DeformerName)

	recs, err := secure.List(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "hero_body", recs[0].BaseObject)
}

func TestEncryptionMiddleware_KeyRotation(t *testing.T) {
	ctx := context.Background()
	underlying := memory.NewStore()
	oldKey := generateKey(t)
	newKey := generateKey(t)

	oldStore := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: oldKey})(underlying)
	require.NoError(t, oldStore.Save(ctx, newRecord("op-old")))

	// New active key, old key demoted to fallback.
	rotated := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
		ActiveKey:    newKey,
		FallbackKeys: [][]byte{oldKey},
	})(underlying)

	loaded, err := rotated.Get(ctx, "op-old")
	require.NoError(t, err)
	assert.Equal(t, "hero_body", loaded.BaseObject)

	// Without the fallback, decryption must fail rather than return garbage.
	wrongOnly := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: newKey})(underlying)
	_, err = wrongOnly.Get(ctx, "op-old")
	assert.Error(t, err)
}

func TestRedactionMiddleware_MasksAssetNames(t *testing.T) {
	ctx := context.Background()
	underlying := memory.NewStore()
	store := middleware.NewRedactionMiddleware([]string{`hero_\w+`})(underlying)

	rec := newRecord("op-2")
	require.NoError(t, store.Save(ctx, rec))

	// Caller's record is untouched.
	assert.Equal(t, "hero_body", rec.BaseObject)

	raw, err := underlying.Get(ctx, "op-2")
	require.NoError(t, err)
	assert.Equal(t, "***", raw.BaseObject)
	assert.Equal(t, "***", raw.DeformerName)
}

func TestChain_OrderIsLeftToRight(t *testing.T) {
	ctx := context.Background()
	underlying := memory.NewStore()
	key := generateKey(t)

	// Redact first, then encrypt what is left.
	var store ports.OperationStore = middleware.Chain(underlying,
		middleware.NewRedactionMiddleware([]string{`hero_\w+`}),
		middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: key}),
	)

	require.NoError(t, store.Save(ctx, newRecord("op-3")))

	loaded, err := store.Get(ctx, "op-3")
	require.NoError(t, err)
	assert.Equal(t, "***", loaded.BaseObject, "redaction happened before encryption")
}
