package schedule

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"sync/atomic"

	"github.com/masjidlabs/minbar/internal/log"
)

// dateColumn is the required CSV column holding the ISO date key.
const dateColumn = "date"

// Row maps a lower-cased prayer-name column to its free-text time
// value, e.g. "maghrib" -> "7:28 PM". Values are displayed verbatim.
type Row map[string]string

// Table maps an ISO date string (YYYY-MM-DD) to its Row. Keys are the
// raw date column values; a malformed date is stored verbatim and
// simply never matches a computed lookup key.
type Table struct {
	rows map[string]Row
}

// LoadCSV reads the schedule table from path.
//
// Column names are normalized to lower case; cell values are trimmed.
// At most one row per date (later rows win). A missing file yields an
// empty table and no error, so a bot without schedule data still
// serves; a present but unreadable or malformed file propagates.
func LoadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Table{rows: map[string]Row{}}, nil
		}
		return nil, fmt.Errorf("opening schedule file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return &Table{rows: map[string]Row{}}, nil
		}
		return nil, fmt.Errorf("reading schedule header: %w", err)
	}
	cols := make([]string, len(header))
	for i, h := range header {
		cols[i] = strings.ToLower(strings.TrimSpace(h))
	}

	rows := map[string]Row{}
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading schedule row: %w", err)
		}

		row := Row{}
		for i, cell := range record {
			if i < len(cols) {
				row[cols[i]] = strings.TrimSpace(cell)
			}
		}
		if d := row[dateColumn]; d != "" {
			rows[d] = row
		}
	}

	return &Table{rows: rows}, nil
}

// Len returns the number of dated rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rows)
}

// row returns the row for an ISO date key, or nil.
func (t *Table) row(date string) Row {
	if t == nil {
		return nil
	}
	return t.rows[date]
}

// Store holds the current schedule snapshot behind an atomic pointer,
// mirroring the kb.Store reload semantics: last load fully replaces
// earlier state.
type Store struct {
	path    string
	logger  log.Logger
	current atomic.Pointer[Table]
}

// NewStore creates a Store for the given CSV path with an empty table.
func NewStore(path string, logger log.Logger) *Store {
	s := &Store{path: path, logger: logger}
	s.current.Store(&Table{rows: map[string]Row{}})
	return s
}

// Load reads the schedule from disk and swaps it in.
// On error the previous snapshot stays current.
func (s *Store) Load() error {
	t, err := LoadCSV(s.path)
	if err != nil {
		return err
	}
	s.current.Store(t)
	s.logger.Info("prayer schedule loaded", "path", s.path, "rows", t.Len())
	return nil
}

// Snapshot returns the current table. Never nil.
func (s *Store) Snapshot() *Table {
	return s.current.Load()
}
