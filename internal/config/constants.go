package config

// Storage backends
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Defaults for optional environment variables
const (
	DefaultLogLevel           = "info"
	DefaultLogFormat          = "text"
	DefaultEnvironment        = "dev"
	DefaultHTTPPort           = "8080"
	DefaultSnapshotPath       = "data/ducks.json"
	DefaultEventPath          = "data/world_event.json"
	DefaultMaxSpawnsPerTick   = "20"
	DefaultMaxLeavesPerTick   = "25"
	DefaultDriftWarnSeconds   = "5"
	DefaultDriftResyncSeconds = "30"
	DefaultWorldEventOdds     = "12"
	DefaultDBMaxConns         = "10"
)
