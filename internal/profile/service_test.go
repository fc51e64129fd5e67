package profile

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strptr(s string) *string { return &s }

// tickingService returns a Service whose clock advances one second per call,
// so UpdatedAt comparisons are deterministic.
func tickingService(store Store) *Service {
	s := NewService(store)
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	calls := 0
	s.now = func() time.Time {
		calls++
		return base.Add(time.Duration(calls) * time.Second)
	}
	return s
}

func TestUpsert_InsertsMissingRecord(t *testing.T) {
	store := NewMemStore()
	svc := tickingService(store)
	ctx := context.Background()

	require.NoError(t, svc.Upsert(ctx, "alice", strptr("auth-1"), strptr("a@x.com")))

	rec, err := store.Find(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "auth-1", rec.AuthUserID)
	assert.Equal(t, "a@x.com", rec.Email)
	assert.Equal(t, rec.CreatedAt, rec.UpdatedAt)
}

func TestUpsert_AbsenceNeverClears(t *testing.T) {
	store := NewMemStore()
	svc := tickingService(store)
	ctx := context.Background()

	require.NoError(t, svc.Upsert(ctx, "alice", strptr("auth-1"), strptr("a@x.com")))
	require.NoError(t, svc.Upsert(ctx, "alice", nil, nil))

	rec, err := store.Find(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "auth-1", rec.AuthUserID)
	assert.Equal(t, "a@x.com", rec.Email)
	assert.True(t, rec.UpdatedAt.After(rec.CreatedAt))
}

func TestUpsert_NewValuesOverwrite(t *testing.T) {
	store := NewMemStore()
	svc := tickingService(store)
	ctx := context.Background()

	require.NoError(t, svc.Upsert(ctx, "alice", strptr("auth-1"), strptr("a@x.com")))

	before, err := store.Find(ctx, "alice")
	require.NoError(t, err)

	require.NoError(t, svc.Upsert(ctx, "alice", strptr("auth-2"), strptr("b@x.com")))

	after, err := store.Find(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "auth-2", after.AuthUserID)
	assert.Equal(t, "b@x.com", after.Email)
	assert.True(t, after.UpdatedAt.After(before.UpdatedAt))
	assert.Equal(t, before.CreatedAt, after.CreatedAt)
}

func TestUpsert_ExplicitEmptyEmailOverwrites(t *testing.T) {
	// Set-if-provided, not set-if-truthy: an explicit empty string clears.
	store := NewMemStore()
	svc := tickingService(store)
	ctx := context.Background()

	require.NoError(t, svc.Upsert(ctx, "alice", strptr("auth-1"), strptr("a@x.com")))
	require.NoError(t, svc.Upsert(ctx, "alice", nil, strptr("")))

	rec, err := store.Find(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "", rec.Email)
	assert.Equal(t, "auth-1", rec.AuthUserID)
}

func TestUpsert_Idempotent(t *testing.T) {
	store := NewMemStore()
	svc := tickingService(store)
	ctx := context.Background()

	require.NoError(t, svc.Upsert(ctx, "alice", strptr("auth-1"), nil))
	require.NoError(t, svc.Upsert(ctx, "alice", strptr("auth-1"), nil))

	assert.Len(t, store.All(), 1)
}
