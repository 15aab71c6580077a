// Package analysis implements the commands that consume ingested point
// collections: Jaccard set-overlap similarity between two collections and
// the average nearest-neighbor distance of one collection. A Runner
// drives a command over every file matched by a search pattern.
package analysis
