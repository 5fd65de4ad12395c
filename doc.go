// Package fleetdispatch is the HTTP and wiring layer of the ambulance fleet
// dispatch service. It holds the current fleet snapshot, serves marker,
// nearest-vehicle and assignment endpoints, and owns the in-memory assignment
// store. The computations themselves live in the cluster, dispatch, fleet,
// geo and assignment packages and are pure functions over snapshot data.
package fleetdispatch
