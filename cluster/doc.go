// Package cluster groups fleet markers into grid-bucket clusters for map
// rendering at low zoom levels.
//
// Clustering is a pure function of (vehicles, zoom, options). At or above the
// zoom threshold, or when the positioned-vehicle count is at or below the
// configured minimum, every vehicle is returned as its own marker.
package cluster
