package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	log "github.com/sirupsen/logrus"

	lib "github.com/lifeline-ems/fleet-dispatch"
	"github.com/lifeline-ems/fleet-dispatch/avl"
	"github.com/lifeline-ems/fleet-dispatch/cluster"
	"github.com/lifeline-ems/fleet-dispatch/config"
	"github.com/lifeline-ems/fleet-dispatch/dispatch"
	"github.com/lifeline-ems/fleet-dispatch/geo"
)

func main() {
	configPath := flag.String("c", "", "config file path")
	mode := flag.String("mode", "oneshot", "oneshot|serve")
	call := flag.String("call", "markers", "oneshot output: markers|nearest|vehicles")
	zoom := flag.Float64("zoom", 16, "zoom level for -call markers")
	lat := flag.Float64("lat", 0, "target latitude for -call nearest")
	lon := flag.Float64("lon", 0, "target longitude for -call nearest")
	vehiclePositions := flag.String("vehiclePositions", "", "vehicle positions URL or .pb file (overrides config)")
	roster := flag.String("roster", "", "roster URL or .json file (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := lib.ConfigureLogging(cfg.Logging); err != nil {
		log.Fatalf("configure logging: %v", err)
	}

	vpSource := cfg.AVL.VehiclePositionsURL
	if *vehiclePositions != "" {
		vpSource = *vehiclePositions
	}
	rosterSource := cfg.AVL.RosterURL
	if *roster != "" {
		rosterSource = *roster
	}

	switch *mode {
	case "oneshot":
		runOneshot(cfg, vpSource, rosterSource, *call, *zoom, *lat, *lon)
	case "serve":
		runServe(cfg, vpSource, rosterSource)
	default:
		log.Fatalf("unknown mode %q", *mode)
	}
}

func runOneshot(cfg config.AppConfig, vpSource, rosterSource, call string, zoom, lat, lon float64) {
	f := newFetcher(time.Duration(cfg.AVL.TimeoutMS) * time.Millisecond)
	vp, rosterDoc, err := f.fetchAll(vpSource, rosterSource)
	if err != nil {
		log.Fatalf("fetch: %v", err)
	}
	wrapper, err := avl.NewWrapper(vp, rosterDoc)
	if err != nil {
		log.Fatalf("decode: %v", err)
	}
	snap := wrapper.Snapshot(nil)

	switch call {
	case "markers":
		opts := cluster.Options{
			CellSizeDegrees: cfg.Cluster.CellSizeDegrees,
			MinVehicles:     cfg.Cluster.MinVehicles,
			ZoomThreshold:   cfg.Cluster.ZoomThreshold,
		}
		layer, err := cluster.Build(snap.Vehicles(), zoom, opts)
		if err != nil {
			log.Fatalf("cluster: %v", err)
		}
		printJSON(layer)
	case "nearest":
		target := geo.Position{Lat: lat, Lon: lon}
		match, found, err := dispatch.Nearest(target, snap.Dispatchable())
		if err != nil {
			log.Fatalf("nearest: %v", err)
		}
		if !found {
			printJSON(map[string]any{"found": false})
			return
		}
		est, err := geo.EstimateTravel(*match.Vehicle.Position, target, cfg.Dispatch.AverageSpeedKmh)
		if err != nil {
			log.Fatalf("estimate: %v", err)
		}
		printJSON(map[string]any{
			"found":       true,
			"vehicle":     match.Vehicle,
			"distance_km": match.DistanceKM,
			"eta_minutes": est.ETAMinutes,
		})
	case "vehicles":
		printJSON(map[string]any{"feed_epoch": snap.FeedEpoch(), "vehicles": snap.Vehicles()})
	default:
		log.Fatalf("unknown call %q", call)
	}
}

func runServe(cfg config.AppConfig, vpSource, rosterSource string) {
	app, err := lib.NewApp(cfg)
	if err != nil {
		log.Fatalf("init: %v", err)
	}

	f := newFetcher(time.Duration(cfg.AVL.TimeoutMS) * time.Millisecond)
	refresh := func() {
		vp, rosterDoc, err := f.fetchAll(vpSource, rosterSource)
		if err != nil {
			log.Warnf("feed refresh failed: %v", err)
			return
		}
		wrapper, err := avl.NewWrapper(vp, rosterDoc)
		if err != nil {
			log.Warnf("feed decode failed: %v", err)
			return
		}
		app.UpdateSnapshot(wrapper.Vehicles(), wrapper.FeedEpoch())
		log.Debugf("snapshot updated, feed epoch %d", wrapper.FeedEpoch())
	}

	refresh()
	go func() {
		ticker := time.NewTicker(time.Duration(cfg.AVL.ReadIntervalMS) * time.Millisecond)
		defer ticker.Stop()
		for range ticker.C {
			refresh()
		}
	}()

	app.StartServer()
	lib.HandleGracefulShutdown()
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
