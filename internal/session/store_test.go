package session

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chuilabs/chui/internal/logging"
)

func testLogger() logging.Logger {
	return logging.NewTextLogger(io.Discard, slog.LevelError)
}

func TestGet_NoDurableFile(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "session-token"), testLogger())
	assert.Equal(t, "", s.Get())
}

func TestSetAndGet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session-token")
	s := New(path, testLogger())
	ctx := context.Background()

	s.Set(ctx, "tok-123")
	assert.Equal(t, "tok-123", s.Get())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "tok-123\n", string(data))
}

func TestNew_RestoresPersistedToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session-token")
	require.NoError(t, os.WriteFile(path, []byte("tok-restored\n"), 0o600))

	s := New(path, testLogger())
	assert.Equal(t, "tok-restored", s.Get())
}

func TestSet_DurableWriteFailureIsSwallowed(t *testing.T) {
	// Point the store at a path inside a directory that does not exist:
	// every durable write fails, but the in-memory value must stand.
	path := filepath.Join(t.TempDir(), "no-such-dir", "session-token")
	s := New(path, testLogger())
	ctx := context.Background()

	s.Set(ctx, "tok-mem-only")
	assert.Equal(t, "tok-mem-only", s.Get())
}

func TestClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session-token")
	s := New(path, testLogger())
	ctx := context.Background()

	s.Set(ctx, "tok-123")
	s.Clear(ctx)

	assert.Equal(t, "", s.Get())
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// Clearing again (no file) stays quiet.
	s.Clear(ctx)
	assert.Equal(t, "", s.Get())
}

func TestSet_OverwritesPreviousToken(t *testing.T) {
	// One live token per installation: switching accounts overwrites.
	path := filepath.Join(t.TempDir(), "session-token")
	s := New(path, testLogger())
	ctx := context.Background()

	s.Set(ctx, "tok-alice")
	s.Set(ctx, "tok-bob")
	assert.Equal(t, "tok-bob", s.Get())

	reopened := New(path, testLogger())
	assert.Equal(t, "tok-bob", reopened.Get())
}
