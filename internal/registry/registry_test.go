package registry

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chuilabs/chui/internal/logging"
	"github.com/chuilabs/chui/internal/username"
)

func testLogger() logging.Logger {
	return logging.NewTextLogger(io.Discard, slog.LevelError)
}

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "users.csv"), testLogger())
}

func TestResolve_AllocatesSequentialIDs(t *testing.T) {
	r := newTestRegistry(t)
	ctx := context.Background()

	rec, err := r.Resolve(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, Record{UserID: 1, Username: "abc"}, rec)

	rec, err = r.Resolve(ctx, "xyz")
	require.NoError(t, err)
	assert.Equal(t, Record{UserID: 2, Username: "xyz"}, rec)

	// Resolving an existing name returns the same record, no new allocation.
	rec, err = r.Resolve(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, Record{UserID: 1, Username: "abc"}, rec)
}

func TestResolve_Idempotent(t *testing.T) {
	r := newTestRegistry(t)
	ctx := context.Background()

	first, err := r.Resolve(ctx, "carol_7")
	require.NoError(t, err)
	second, err := r.Resolve(ctx, "carol_7")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestResolve_NormalizesInput(t *testing.T) {
	r := newTestRegistry(t)
	ctx := context.Background()

	rec, err := r.Resolve(ctx, "  Dave  ")
	require.NoError(t, err)
	assert.Equal(t, "dave", rec.Username)

	again, err := r.Resolve(ctx, "DAVE")
	require.NoError(t, err)
	assert.Equal(t, rec.UserID, again.UserID)
}

func TestResolve_InvalidUsername(t *testing.T) {
	r := newTestRegistry(t)
	ctx := context.Background()

	for _, raw := range []string{"", "ab", "abcdefghijklmnopqrstu", "bad-name", "no way"} {
		_, err := r.Resolve(ctx, raw)
		assert.True(t, errors.Is(err, username.ErrInvalidUsername), "raw=%q", raw)
	}

	// No ledger rows were created by the failed attempts.
	rec, err := r.Resolve(ctx, "good")
	require.NoError(t, err)
	assert.Equal(t, int64(1), rec.UserID)
}

func TestResolve_InitializesHeaderOnlyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.csv")
	r := New(path, testLogger())

	_, err := r.load(context.Background())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "user_id,username\n", string(data))
}

func TestLoad_DropsMalformedRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.csv")
	contents := "user_id,username\n" +
		"1,alice\n" +
		"oops,bob\n" + // non-numeric id
		"3\n" + // missing column
		"4,\n" + // empty username
		"0,zero\n" + // non-positive id
		"5,carol\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	r := New(path, testLogger())
	records, err := r.load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []Record{{1, "alice"}, {5, "carol"}}, records)
}

func TestResolve_ContinuesAfterMaxFromSurvivingRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.csv")
	contents := "user_id,username\n7,alice\nbroken line\n2,bob\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	r := New(path, testLogger())
	rec, err := r.Resolve(context.Background(), "carol")
	require.NoError(t, err)
	assert.Equal(t, int64(8), rec.UserID)
}

func TestWrite_RoundTrip(t *testing.T) {
	r := newTestRegistry(t)
	ctx := context.Background()

	want := []Record{{1, "alice"}, {2, "bob_2"}, {3, "carol"}}
	require.NoError(t, r.write(want))

	got, err := r.load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
