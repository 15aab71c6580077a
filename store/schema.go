package store

import "database/sql"

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS point_collections (
    id          TEXT PRIMARY KEY,
    source      TEXT,
    dim         INTEGER NOT NULL,
    count       INTEGER NOT NULL,
    fingerprint TEXT NOT NULL UNIQUE,
    ids         TEXT,
    data        BLOB NOT NULL,
    created_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);`,
	`CREATE TABLE IF NOT EXISTS analysis_runs (
    id            TEXT PRIMARY KEY,
    command       TEXT NOT NULL,
    collection_id TEXT NOT NULL REFERENCES point_collections(id),
    reference_id  TEXT REFERENCES point_collections(id),
    value         REAL NOT NULL,
    summary       TEXT,
    created_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);`,
}

// ensureSchema creates the base tables in the provided database if they do
// not already exist.
func ensureSchema(db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
