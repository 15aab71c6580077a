// Package store persists ingested point collections and analysis runs in
// SQLite using the pure-Go modernc.org/sqlite driver. It includes:
//   - schema helpers for the point_collections and analysis_runs tables
//   - point buffer encoding (little-endian float32 BLOB)
//   - content fingerprinting so identical datasets are stored once
//   - SQL scalar functions point_l2 and point_cosine over point BLOBs
package store
