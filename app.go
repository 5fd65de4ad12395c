package fleetdispatch

import (
	"fmt"
	"sync"
	"time"

	"github.com/lifeline-ems/fleet-dispatch/cluster"
	"github.com/lifeline-ems/fleet-dispatch/config"
	"github.com/lifeline-ems/fleet-dispatch/fleet"
)

// App wires the dispatch core together: the current fleet snapshot, the
// staleness policy, clustering options and the assignment store. The periodic
// refresh loop lives with the caller (cmd/dispatchd); App only receives
// snapshots.
type App struct {
	Cfg         config.AppConfig
	Stale       fleet.StalenessPolicy
	ClusterOpts cluster.Options
	Store       *AssignmentStore

	cache *LayerCache
	now   func() time.Time

	mu   sync.RWMutex
	snap *fleet.Snapshot
}

// NewApp validates the dispatch parameters out of cfg and builds an App with
// an empty snapshot.
func NewApp(cfg config.AppConfig) (*App, error) {
	stale, err := fleet.NewStalenessPolicy(time.Duration(cfg.Dispatch.StaleAfterSeconds) * time.Second)
	if err != nil {
		return nil, fmt.Errorf("dispatch config: %w", err)
	}
	if cfg.Dispatch.AverageSpeedKmh <= 0 {
		return nil, fmt.Errorf("dispatch config: average speed must be positive, got %g", cfg.Dispatch.AverageSpeedKmh)
	}
	return &App{
		Cfg:   cfg,
		Stale: stale,
		ClusterOpts: cluster.Options{
			CellSizeDegrees: cfg.Cluster.CellSizeDegrees,
			MinVehicles:     cfg.Cluster.MinVehicles,
			ZoomThreshold:   cfg.Cluster.ZoomThreshold,
		},
		Store: NewAssignmentStore(),
		cache: NewLayerCache(),
		now:   time.Now,
		snap:  fleet.NewSnapshot(nil, 0, nil),
	}, nil
}

// UpdateSnapshot installs a new fleet snapshot. Reads with an older or equal
// feed timestamp are discarded by fleet.NewSnapshot, so out-of-order refresh
// results never roll the view back.
func (a *App) UpdateSnapshot(vehicles []fleet.Vehicle, feedEpoch int64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.snap = fleet.NewSnapshot(vehicles, feedEpoch, a.snap)
}

// Snapshot returns the current fleet snapshot.
func (a *App) Snapshot() *fleet.Snapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.snap
}
