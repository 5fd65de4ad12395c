package config

// ServerConfig contains HTTP API configuration
type ServerConfig struct {
	Port int `yaml:"port" validate:"gt=0"`
}

// AVLConfig contains vehicle location feed configuration
type AVLConfig struct {
	VehiclePositionsURL string `yaml:"vehiclePositionsURL" validate:"omitempty,url"`
	RosterURL           string `yaml:"rosterURL" validate:"omitempty,url"`
	ReadIntervalMS      int    `yaml:"readIntervalMS" validate:"gte=0"`
	TimeoutMS           int    `yaml:"timeoutMS" validate:"gte=0"`
	FleetID             string `yaml:"fleetID"`
}

// DispatchConfig contains staleness and ETA parameters
type DispatchConfig struct {
	StaleAfterSeconds int     `yaml:"staleAfterSeconds" validate:"gte=0"`
	AverageSpeedKmh   float64 `yaml:"averageSpeedKmh" validate:"gte=0"`
}

// ClusterConfig contains map clustering parameters
type ClusterConfig struct {
	CellSizeDegrees float64 `yaml:"cellSizeDegrees" validate:"gte=0"`
	MinVehicles     int     `yaml:"minVehicles" validate:"gte=0"`
	ZoomThreshold   float64 `yaml:"zoomThreshold" validate:"gte=0"`
}

// LoggingConfig contains log level and optional rotated file output
type LoggingConfig struct {
	Level      string `yaml:"level" validate:"omitempty,oneof=trace debug info warn error"`
	FilePath   string `yaml:"filePath"`
	MaxAgeDays int    `yaml:"maxAgeDays" validate:"gte=0"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Server   ServerConfig   `yaml:"server"`
	AVL      AVLConfig      `yaml:"avl"`
	Dispatch DispatchConfig `yaml:"dispatch"`
	Cluster  ClusterConfig  `yaml:"cluster"`
	Logging  LoggingConfig  `yaml:"logging"`
}
