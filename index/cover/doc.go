// Package cover implements a cover tree nearest-neighbor index for
// euclidean and cosine metrics. The tree prunes kNN searches with either
// cached per-node subtree radii or geometric level bounds.
package cover
