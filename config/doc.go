// Package config loads and validates the YAML application configuration:
// HTTP server, AVL feed endpoints, dispatch parameters (staleness threshold,
// assumed average speed), clustering grid and logging.
package config
