// Package fleet models tracked vehicles and point-in-time fleet snapshots.
//
// This package handles:
// - The read-only Vehicle record fed by the AVL subsystem
// - Immutable snapshots with "newest feed timestamp wins" semantics
// - Position staleness evaluation against a configured threshold
//
// The Snapshot type represents a point-in-time capture of all vehicle
// positions; callers own the refresh loop and hand each new snapshot to the
// pure computations in the cluster and dispatch packages.
package fleet
