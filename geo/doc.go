// Package geo provides the shared coordinate type and distance/travel-time
// primitives used by the dispatch core.
//
// All distances are great-circle (haversine) kilometers on a spherical earth.
// Travel-time estimates are straight-line distance over a configured average
// speed; there is no routing graph and no traffic model.
package geo
