// Package avl ingests the automatic vehicle location feed.
//
// The fleet's AVL system exposes vehicle positions as a GTFS-RT
// VehiclePositions protobuf feed and operational statuses as a small JSON
// roster document. This package fetches and decodes both into fleet.Vehicle
// records; the refresh loop that drives it lives with the caller.
package avl
