package fleetdispatch

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
)

var server *http.Server

// Routes returns the HTTP mux for the monitoring and dispatch API.
func (a *App) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", a.handleHealth)
	mux.HandleFunc("/api/fleet/markers.json", a.handleFleetMarkers)
	mux.HandleFunc("/api/fleet/vehicles.json", a.handleFleetVehicles)
	mux.HandleFunc("/api/dispatch/nearest.json", a.handleDispatchNearest)
	mux.HandleFunc("/api/assignments.json", a.handleAssignments)
	mux.HandleFunc("/api/assignments/transition", a.handleAssignmentTransition)
	return mux
}

// StartServer starts the HTTP API in the background.
func (a *App) StartServer() {
	addr := fmt.Sprintf(":%d", a.Cfg.Server.Port)
	server = &http.Server{
		Addr:              addr,
		Handler:           a.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()
	log.Infof("server listening on %s", addr)
}

// HandleGracefulShutdown blocks until SIGINT/SIGTERM and drains the server.
func HandleGracefulShutdown() {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	log.Info("shutdown signal received")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if server != nil {
		if err := server.Shutdown(ctx); err != nil {
			log.Errorf("server shutdown error: %v", err)
		} else {
			log.Info("server shut down successfully")
		}
	}
}
