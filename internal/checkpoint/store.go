// Package checkpoint persists RawMap snapshots keyed by pipeline step so a
// generation run can resume mid-pipeline instead of restarting from
// scratch. Snapshots are stored as gzip-compressed gob blobs in a sqlite
// database, one row per step id.
package checkpoint

import (
	"bytes"
	"compress/gzip"
	"database/sql"
	"fmt"
	"io"

	_ "modernc.org/sqlite"

	"terrainforge/internal/raster"
)

// Store is a sqlite-backed cache of RawMap snapshots, one row per step id.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (creating if absent) the checkpoint database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open checkpoint database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("set pragma %q: %w", pragma, err)
		}
	}

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, path: path}, nil
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS steps (
			step INTEGER PRIMARY KEY,
			blob BLOB NOT NULL
		);
	`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("create checkpoint schema: %w", err)
	}
	return nil
}

// Load fetches and decodes the RawMap stored at step, if any.
func (s *Store) Load(step int) (*raster.RawMap, bool, error) {
	var compressed []byte
	err := s.db.QueryRow("SELECT blob FROM steps WHERE step = ?", step).Scan(&compressed)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load checkpoint step %d: %w", step, err)
	}

	raw, err := decode(compressed)
	if err != nil {
		return nil, false, fmt.Errorf("decode checkpoint step %d: %w", step, err)
	}
	return raw, true, nil
}

// Save encodes and stores rm under step, replacing any previous entry.
func (s *Store) Save(step int, rm *raster.RawMap) error {
	compressed, err := encode(rm)
	if err != nil {
		return fmt.Errorf("encode checkpoint step %d: %w", step, err)
	}

	_, err = s.db.Exec("INSERT OR REPLACE INTO steps (step, blob) VALUES (?, ?)", step, compressed)
	if err != nil {
		return fmt.Errorf("save checkpoint step %d: %w", step, err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func encode(rm *raster.RawMap) ([]byte, error) {
	var raw bytes.Buffer
	if err := gobEncode(&raw, rm.ToArray()); err != nil {
		return nil, err
	}

	var compressed bytes.Buffer
	gw := gzip.NewWriter(&compressed)
	if _, err := gw.Write(raw.Bytes()); err != nil {
		gw.Close()
		return nil, err
	}
	if err := gw.Close(); err != nil {
		return nil, err
	}
	return compressed.Bytes(), nil
}

func decode(compressed []byte) (*raster.RawMap, error) {
	gr, err := gzip.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, err
	}
	defer gr.Close()

	raw, err := io.ReadAll(gr)
	if err != nil {
		return nil, err
	}

	arr, err := gobDecode(raw)
	if err != nil {
		return nil, err
	}
	return raster.FromArray(arr), nil
}
