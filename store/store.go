package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	_ "modernc.org/sqlite" // register pure-Go SQLite driver

	"github.com/spatialkit/ppa/pointset"
)

// Store persists point collections and analysis runs in a SQLite
// database.
type Store struct {
	db *sql.DB
}

// Open opens a store at dsn, ensuring the schema and the point SQL
// functions are available. For file-based databases, pass a path like
// "./runs.sqlite"; pass ":memory:" for an ephemeral store.
func Open(dsn string) (*Store, error) {
	RegisterPointFunctions()
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := ensureSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// DB exposes the underlying handle for ad-hoc queries, e.g. using the
// point_l2 and point_cosine SQL functions.
func (s *Store) DB() *sql.DB { return s.db }

// SaveCollection persists a collection and returns its id. Collections
// are deduplicated by content fingerprint: saving identical coordinates
// and ids again returns the existing row's id.
func (s *Store) SaveCollection(ctx context.Context, source string, collection *pointset.Collection[float32]) (string, error) {
	if collection == nil {
		return "", fmt.Errorf("store: collection is nil")
	}
	points := collection.Points()
	blob := EncodeFloats(points.Flat())
	if blob == nil {
		blob = []byte{}
	}
	fp := fingerprint(blob, collection.IDs())

	var id string
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM point_collections WHERE fingerprint = ?`, fp).Scan(&id)
	switch {
	case err == nil:
		return id, nil
	case !errors.Is(err, sql.ErrNoRows):
		return "", err
	}

	var ids any
	if collection.IDs() != nil {
		encoded, err := json.Marshal(collection.IDs())
		if err != nil {
			return "", err
		}
		ids = string(encoded)
	}
	id = uuid.NewString()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO point_collections(id, source, dim, count, fingerprint, ids, data) VALUES(?, ?, ?, ?, ?, ?, ?)`,
		id, source, points.Dim(), points.Len(), fp, ids, blob)
	if err != nil {
		return "", err
	}
	return id, nil
}

// LoadCollection restores a collection by id.
func (s *Store) LoadCollection(ctx context.Context, id string) (*pointset.Collection[float32], error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT dim, ids, data FROM point_collections WHERE id = ?`, id)
	var dim int
	var idsJSON sql.NullString
	var blob []byte
	if err := row.Scan(&dim, &idsJSON, &blob); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("store: collection %q not found", id)
		}
		return nil, err
	}
	flat, err := DecodeFloats(blob)
	if err != nil {
		return nil, err
	}
	points, err := pointset.FromFlat(flat, dim)
	if err != nil {
		return nil, err
	}
	var ids []string
	if idsJSON.Valid {
		if err := json.Unmarshal([]byte(idsJSON.String), &ids); err != nil {
			return nil, err
		}
	}
	return pointset.NewCollection(points, ids)
}

// Run records one analysis command execution.
type Run struct {
	ID           string
	Command      string
	CollectionID string
	// ReferenceID is empty unless the command compared against a
	// reference collection.
	ReferenceID string
	Value       float64
	// Summary is a JSON distance summary, empty when the command has
	// none.
	Summary string
}

// SaveRun persists a run, assigning an id when none is set.
func (s *Store) SaveRun(ctx context.Context, run *Run) (string, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	var reference any
	if run.ReferenceID != "" {
		reference = run.ReferenceID
	}
	var summary any
	if run.Summary != "" {
		summary = run.Summary
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO analysis_runs(id, command, collection_id, reference_id, value, summary) VALUES(?, ?, ?, ?, ?, ?)`,
		run.ID, run.Command, run.CollectionID, reference, run.Value, summary)
	if err != nil {
		return "", err
	}
	return run.ID, nil
}

// fingerprint hashes the encoded coordinates together with the id
// sequence, so equal coordinates with different labels stay distinct.
func fingerprint(blob []byte, ids []string) string {
	digest := xxhash.New()
	_, _ = digest.Write(blob)
	for _, id := range ids {
		_, _ = digest.WriteString("\x00" + id)
	}
	return fmt.Sprintf("%016x", digest.Sum64())
}
