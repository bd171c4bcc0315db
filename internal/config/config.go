package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	DiscordToken       string `validate:"required"`
	DiscordAppID       string `validate:"required"`
	LogChannelID       string
	ForceCommandUpdate bool

	Storage       string `validate:"oneof=postgres memory"`
	DBUser        string `validate:"required_if=Storage postgres"`
	DBPassword    string
	DBHost        string `validate:"required_if=Storage postgres"`
	DBPort        string `validate:"required_if=Storage postgres"`
	DBName        string `validate:"required_if=Storage postgres"`
	DBMaxConns    int    `validate:"gte=1"`
	RunMigrations bool

	HTTPPort    int `validate:"gte=1,lte=65535"`
	LogLevel    string
	LogFormat   string `validate:"oneof=json text"`
	Environment string
	Version     string

	SnapshotPath string `validate:"required"`
	EventPath    string `validate:"required"`
	ContentPath  string

	MaxSpawnsPerTick   int `validate:"gte=1"`
	MaxLeavesPerTick   int `validate:"gte=1"`
	DriftWarnSeconds   int `validate:"gte=1"`
	DriftResyncSeconds int `validate:"gtfield=DriftWarnSeconds"`
	WorldEventOdds     int `validate:"gte=1"`

	HugFriendIDs []string
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		DiscordToken:       os.Getenv("DISCORD_TOKEN"),
		DiscordAppID:       os.Getenv("DISCORD_APP_ID"),
		LogChannelID:       os.Getenv("DISCORD_LOG_CHANNEL_ID"),
		ForceCommandUpdate: getEnv("DISCORD_FORCE_COMMAND_UPDATE", "false") == "true",
		Storage:            strings.ToLower(getEnv("STORAGE", StoragePostgres)),
		DBUser:             getEnv("DB_USER", "postgres"),
		DBPassword:         getEnv("DB_PASSWORD", "postgres"),
		DBHost:             getEnv("DB_HOST", "localhost"),
		DBPort:             getEnv("DB_PORT", "5432"),
		DBName:             getEnv("DB_NAME", "duckhunt"),
		RunMigrations:      getEnv("RUN_MIGRATIONS", "true") == "true",
		LogLevel:           getEnv("LOG_LEVEL", DefaultLogLevel),
		LogFormat:          strings.ToLower(getEnv("LOG_FORMAT", DefaultLogFormat)),
		Environment:        getEnv("ENVIRONMENT", DefaultEnvironment),
		Version:            getEnv("VERSION", "dev"),
		SnapshotPath:       getEnv("SNAPSHOT_PATH", DefaultSnapshotPath),
		EventPath:          getEnv("EVENT_PATH", DefaultEventPath),
		ContentPath:        os.Getenv("CONTENT_PATH"),
		HugFriendIDs:       splitList(os.Getenv("HUG_FRIEND_IDS")),
	}

	ints := []struct {
		key, def string
		dst      *int
	}{
		{"HTTP_PORT", DefaultHTTPPort, &cfg.HTTPPort},
		{"DB_MAX_CONNS", DefaultDBMaxConns, &cfg.DBMaxConns},
		{"MAX_SPAWNS_PER_TICK", DefaultMaxSpawnsPerTick, &cfg.MaxSpawnsPerTick},
		{"MAX_LEAVES_PER_TICK", DefaultMaxLeavesPerTick, &cfg.MaxLeavesPerTick},
		{"DRIFT_WARN_SECONDS", DefaultDriftWarnSeconds, &cfg.DriftWarnSeconds},
		{"DRIFT_RESYNC_SECONDS", DefaultDriftResyncSeconds, &cfg.DriftResyncSeconds},
		{"WORLD_EVENT_ODDS", DefaultWorldEventOdds, &cfg.WorldEventOdds},
	}
	for _, v := range ints {
		n, err := strconv.Atoi(getEnv(v.key, v.def))
		if err != nil {
			return nil, fmt.Errorf("invalid %s value: %w", v.key, err)
		}
		*v.dst = n
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field constraints
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
