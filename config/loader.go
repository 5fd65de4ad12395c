package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Defaults applied after unmarshal for keys the file leaves unset.
const (
	DefaultPort              = 17181
	DefaultReadIntervalMS    = 15000
	DefaultTimeoutMS         = 10000
	DefaultStaleAfterSeconds = 120
	DefaultAverageSpeedKmh   = 40.0
	DefaultCellSizeDegrees   = 0.01
	DefaultMinVehicles       = 10
	DefaultZoomThreshold     = 14.0
	DefaultLogLevel          = "info"
	DefaultLogMaxAgeDays     = 28
)

// Load reads and validates the application configuration. When path is empty
// the usual locations are tried in order.
func Load(path string) (AppConfig, error) {
	paths := []string{path}
	if path == "" {
		paths = []string{"config.yml", "./deploy/config.yml"}
	}
	var data []byte
	var err error
	for _, p := range paths {
		data, err = os.ReadFile(p)
		if err == nil {
			break
		}
	}
	if err != nil {
		return AppConfig{}, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return AppConfig{}, err
	}
	applyDefaults(&cfg)
	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultPort
	}
	if cfg.AVL.ReadIntervalMS == 0 {
		cfg.AVL.ReadIntervalMS = DefaultReadIntervalMS
	}
	if cfg.AVL.TimeoutMS == 0 {
		cfg.AVL.TimeoutMS = DefaultTimeoutMS
	}
	if cfg.Dispatch.StaleAfterSeconds == 0 {
		cfg.Dispatch.StaleAfterSeconds = DefaultStaleAfterSeconds
	}
	if cfg.Dispatch.AverageSpeedKmh == 0 {
		cfg.Dispatch.AverageSpeedKmh = DefaultAverageSpeedKmh
	}
	if cfg.Cluster.CellSizeDegrees == 0 {
		cfg.Cluster.CellSizeDegrees = DefaultCellSizeDegrees
	}
	if cfg.Cluster.MinVehicles == 0 {
		cfg.Cluster.MinVehicles = DefaultMinVehicles
	}
	if cfg.Cluster.ZoomThreshold == 0 {
		cfg.Cluster.ZoomThreshold = DefaultZoomThreshold
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = DefaultLogLevel
	}
	if cfg.Logging.MaxAgeDays == 0 {
		cfg.Logging.MaxAgeDays = DefaultLogMaxAgeDays
	}
}
