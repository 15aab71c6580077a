// Package pointset defines the core point data model: a flat,
// dimension-typed coordinate buffer with shape-validated bulk
// constructors, and a collection type pairing it with optional per-point
// identifiers. It knows nothing about files, file formats, or units.
package pointset
