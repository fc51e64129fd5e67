// Package registry implements the local flat-file identity ledger: a durable
// username -> numeric user id mapping with get-or-create semantics. It is the
// resolution path used when no networked identity service is reachable.
package registry

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"sync"

	"github.com/chuilabs/chui/internal/filex"
	"github.com/chuilabs/chui/internal/logging"
	"github.com/chuilabs/chui/internal/username"
)

// header is the fixed first row of the ledger file.
var header = []string{"user_id", "username"}

// Record is one row of the ledger.
type Record struct {
	UserID   int64
	Username string
}

// Registry reads and rewrites a two-column CSV ledger file.
//
// Resolve calls are serialized in-process with a mutex, which makes id
// allocation safe for a single process. Two *processes* touching the same
// ledger can still both read the same max id and allocate duplicates; the
// file carries no lock. That is acceptable for a single-user local client
// and must be revisited before any multi-writer use.
type Registry struct {
	mu   sync.Mutex
	path string
	log  logging.Logger
}

// New returns a Registry over the ledger file at path. The file is created
// lazily on first use.
func New(path string, log logging.Logger) *Registry {
	return &Registry{path: path, log: log.With("component", "registry")}
}

// Resolve returns the ledger record for the given raw username, allocating
// a new id (current max + 1) and rewriting the ledger when the username is
// not present yet. Calling it twice with the same name yields the same
// record: sign-in and sign-up are one idempotent operation on this path.
func (r *Registry) Resolve(ctx context.Context, raw string) (Record, error) {
	name, err := username.Validate(raw, username.Relaxed)
	if err != nil {
		return Record{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.load(ctx)
	if err != nil {
		return Record{}, err
	}

	for _, rec := range records {
		if rec.Username == name {
			return rec, nil
		}
	}

	var maxID int64
	for _, rec := range records {
		if rec.UserID > maxID {
			maxID = rec.UserID
		}
	}

	rec := Record{UserID: maxID + 1, Username: name}
	records = append(records, rec)

	if err := r.write(records); err != nil {
		return Record{}, err
	}

	r.log.Info(ctx, "allocated user id", "username", name, "user_id", rec.UserID)
	return rec, nil
}

// load parses the ledger, initializing a header-only file if absent.
//
// Malformed rows (wrong column count, non-numeric or non-positive id, empty
// username) are dropped rather than failing the whole read: the ledger is a
// hand-editable local file and tolerance beats strictness here. Dropped rows
// are counted and logged so the policy stays observable.
func (r *Registry) load(ctx context.Context) ([]Record, error) {
	if err := r.ensureFile(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("read ledger: %w", err)
	}

	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var (
		records []Record
		dropped int
		first   = true
		seen    = make(map[string]struct{})
	)

	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			dropped++
			continue
		}
		if first {
			first = false
			continue // header row
		}

		rec, ok := parseRow(row)
		if !ok {
			dropped++
			continue
		}
		if _, dup := seen[rec.Username]; dup {
			// First row wins for duplicate usernames.
			dropped++
			continue
		}
		seen[rec.Username] = struct{}{}
		records = append(records, rec)
	}

	if dropped > 0 {
		r.log.Warn(ctx, "ignored malformed ledger rows", "count", dropped, "path", r.path)
	}
	return records, nil
}

// parseRow converts one CSV row into a Record. ok is false for any row that
// does not strictly match the two-column format.
func parseRow(row []string) (Record, bool) {
	if len(row) != 2 {
		return Record{}, false
	}
	id, err := strconv.ParseInt(row[0], 10, 64)
	if err != nil || id < 1 {
		return Record{}, false
	}
	if row[1] == "" {
		return Record{}, false
	}
	return Record{UserID: id, Username: row[1]}, true
}

// write rewrites the whole ledger file: header plus one row per record.
func (r *Registry) write(records []Record) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(header); err != nil {
		return fmt.Errorf("write ledger header: %w", err)
	}
	for _, rec := range records {
		row := []string{strconv.FormatInt(rec.UserID, 10), rec.Username}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write ledger row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush ledger: %w", err)
	}

	if err := filex.WriteFileAtomic(r.path, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("rewrite ledger: %w", err)
	}
	return nil
}

// ensureFile creates a header-only ledger when the file does not exist.
func (r *Registry) ensureFile() error {
	_, err := os.Stat(r.path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat ledger: %w", err)
	}
	return r.write(nil)
}
