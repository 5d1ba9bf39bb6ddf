// Package storage persists named field snapshots keyed by name and time
// index. Fields flagged no-read by the caller are simply never read back;
// they are reinitialized from the conserved state instead.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/openfvm/reactingfv/field"
)

// FieldStore is a snapshotting SQLite-backed store with one row per
// (field, time index).
type FieldStore struct {
	db *sql.DB
}

type scalarPayload struct {
	Cells  []float64 `json:"cells"`
	BFaces []float64 `json:"bfaces"`
}

type vectorPayload struct {
	Cells  []field.Vec3 `json:"cells"`
	BFaces []field.Vec3 `json:"bfaces"`
}

func Open(path string) (*FieldStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS fields (
		name TEXT NOT NULL,
		tindex INTEGER NOT NULL,
		payload BLOB NOT NULL,
		PRIMARY KEY (name, tindex)
	)`); err != nil {
		return nil, fmt.Errorf("create fields table: %w", err)
	}
	return &FieldStore{db: db}, nil
}

func (s *FieldStore) Close() error { return s.db.Close() }

func (s *FieldStore) write(name string, tindex int, payload interface{}) error {
	blob, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	if _, err := s.db.Exec(
		`INSERT OR REPLACE INTO fields (name, tindex, payload) VALUES (?, ?, ?)`,
		name, tindex, blob,
	); err != nil {
		return fmt.Errorf("write %s[%d]: %w", name, tindex, err)
	}
	return nil
}

func (s *FieldStore) read(name string, tindex int, payload interface{}) error {
	var blob []byte
	err := s.db.QueryRow(
		`SELECT payload FROM fields WHERE name = ? AND tindex = ?`,
		name, tindex,
	).Scan(&blob)
	if err != nil {
		return fmt.Errorf("read %s[%d]: %w", name, tindex, err)
	}
	if err := json.Unmarshal(blob, payload); err != nil {
		return fmt.Errorf("decode %s[%d]: %w", name, tindex, err)
	}
	return nil
}

func (s *FieldStore) WriteScalar(tindex int, f *field.Scalar) error {
	return s.write(f.Name, tindex, scalarPayload{Cells: f.Cells, BFaces: f.BFaces})
}

func (s *FieldStore) ReadScalar(tindex int, f *field.Scalar) error {
	var p scalarPayload
	if err := s.read(f.Name, tindex, &p); err != nil {
		return err
	}
	if len(p.Cells) != len(f.Cells) || len(p.BFaces) != len(f.BFaces) {
		return fmt.Errorf("read %s[%d]: stored sizes %d/%d do not match the mesh %d/%d",
			f.Name, tindex, len(p.Cells), len(p.BFaces), len(f.Cells), len(f.BFaces))
	}
	copy(f.Cells, p.Cells)
	copy(f.BFaces, p.BFaces)
	return nil
}

func (s *FieldStore) WriteVector(tindex int, f *field.Vector) error {
	return s.write(f.Name, tindex, vectorPayload{Cells: f.Cells, BFaces: f.BFaces})
}

func (s *FieldStore) ReadVector(tindex int, f *field.Vector) error {
	var p vectorPayload
	if err := s.read(f.Name, tindex, &p); err != nil {
		return err
	}
	if len(p.Cells) != len(f.Cells) || len(p.BFaces) != len(f.BFaces) {
		return fmt.Errorf("read %s[%d]: stored sizes %d/%d do not match the mesh %d/%d",
			f.Name, tindex, len(p.Cells), len(p.BFaces), len(f.Cells), len(f.BFaces))
	}
	copy(f.Cells, p.Cells)
	copy(f.BFaces, p.BFaces)
	return nil
}

// TimeIndices lists the stored snapshot indices for a field name.
func (s *FieldStore) TimeIndices(name string) (out []int, err error) {
	rows, err := s.db.Query(`SELECT tindex FROM fields WHERE name = ? ORDER BY tindex`, name)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", name, err)
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var t int
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
