package middleware_test

import (
	"context"
	"crypto/rand"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitrinehq/vitrine/internal/adapters/memory"
	"github.com/vitrinehq/vitrine/pkg/domain"
	"github.com/vitrinehq/vitrine/pkg/session/middleware"
)

func generateKey(t *testing.T) []byte {
	t.Helper()
	k := make([]byte, 32)
	_, err := io.ReadFull(rand.Reader, k)
	require.NoError(t, err)
	return k
}

func TestEncryptionMiddlewareRoundtrip(t *testing.T) {
	underlying := memory.NewSnapshotStore()
	mw := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})
	secure := mw(underlying)
	ctx := context.Background()

	original := domain.NewPreviewSession("preview-1")
	original.Overrides.Experience = "immersive"
	original.Signals[domain.SignalScrollProgress] = 0.42

	require.NoError(t, secure.Save(ctx, original))

	// The underlying record must be an opaque envelope.
	stored, err := underlying.Load(ctx, "preview-1")
	require.NoError(t, err)
	assert.Empty(t, stored.Overrides.Experience)
	assert.NotContains(t, stored.Signals, domain.SignalScrollProgress)
	assert.Contains(t, stored.Signals, "__encrypted__")

	loaded, err := secure.Load(ctx, "preview-1")
	require.NoError(t, err)
	assert.Equal(t, "immersive", loaded.Overrides.Experience)
	assert.Equal(t, 0.42, loaded.Signals.Float(domain.SignalScrollProgress, 0))
}

func TestEncryptionMiddlewareKeyRotation(t *testing.T) {
	underlying := memory.NewSnapshotStore()
	oldKey := generateKey(t)
	newKey := generateKey(t)
	ctx := context.Background()

	oldStore := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: oldKey})(underlying)

	session := domain.NewPreviewSession("rotation")
	session.Overrides.Transition = "wipe"
	require.NoError(t, oldStore.Save(ctx, session))

	newStore := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
		ActiveKey:    newKey,
		FallbackKeys: [][]byte{oldKey},
	})(underlying)

	loaded, err := newStore.Load(ctx, "rotation")
	require.NoError(t, err)
	assert.Equal(t, "wipe", loaded.Overrides.Transition)
}

func TestEncryptionMiddlewareRejectsWrongKey(t *testing.T) {
	underlying := memory.NewSnapshotStore()
	ctx := context.Background()

	writer := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})(underlying)
	require.NoError(t, writer.Save(ctx, domain.NewPreviewSession("locked")))

	reader := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})(underlying)
	_, err := reader.Load(ctx, "locked")
	require.Error(t, err)
}

func TestEncryptionMiddlewareRejectsPlainRecord(t *testing.T) {
	underlying := memory.NewSnapshotStore()
	ctx := context.Background()

	require.NoError(t, underlying.Save(ctx, domain.NewPreviewSession("plain")))

	secure := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})(underlying)
	_, err := secure.Load(ctx, "plain")
	require.Error(t, err)
}

func TestEncryptionMiddlewareRequiresFullKey(t *testing.T) {
	assert.Panics(t, func() {
		middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: []byte("short")})
	})
}
