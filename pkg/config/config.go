package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/muhammadchandra19/tickstore/pkg/redis"
)

// MustLoad loads the configuration from environment variables and an optional .env file.
func MustLoad[T any](cfg T) {
	_ = godotenv.Load()

	env.Must(cfg, env.Parse(cfg))
}

// Load loads the configuration from environment variables and an optional .env file.
func Load[T any](cfg T) error {
	// a missing .env is fine, the process environment is authoritative
	_ = godotenv.Load()

	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	return nil
}

// Config holds the configuration for both the ingest and query commands.
type Config struct {
	App        AppConfig        `envPrefix:"APP_"`
	Store      StoreConfig      `envPrefix:"STORE_"`
	Clean      CleanConfig      `envPrefix:"CLEAN_"`
	Session    SessionConfig    `envPrefix:"SESSION_"`
	Redis      redis.Config     `envPrefix:"REDIS_"`
	QueryCache QueryCacheConfig `envPrefix:"QUERY_CACHE_"`
	Report     ReportConfig     `envPrefix:"REPORT_"`
}

// AppConfig represents the application configuration.
type AppConfig struct {
	Name        string   `env:"NAME" envDefault:"tickstore"`
	Environment string   `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string   `env:"LOG_LEVEL" envDefault:"info"`
	LogOutput   []string `env:"LOG_OUTPUT" envSeparator:"," envDefault:"stderr"`
	LogTimeKey  string   `env:"LOG_TIME_KEY" envDefault:"ts"`
	LogLevelKey string   `env:"LOG_LEVEL_KEY" envDefault:"level"`
	// LogCallerSkip drops the logger wrapper's own frame from the reported caller.
	LogCallerSkip int `env:"LOG_CALLER_SKIP" envDefault:"1"`
}

// StoreConfig locates the binary store and sizes its worker pools.
// Workers <= 0 means one worker per CPU, resolved at bootstrap.
type StoreConfig struct {
	DataDir    string `env:"DATA_DIR" envDefault:"./data"`
	FileSuffix string `env:"FILE_SUFFIX" envDefault:""`
	BinaryPath string `env:"BINARY_PATH" envDefault:"tick_data.bin"`
	IndexPath  string `env:"INDEX_PATH" envDefault:"tick_data_index.json"`
	Codec      string `env:"CODEC" envDefault:"milli"`
	Workers    int    `env:"WORKERS" envDefault:"0"`
	Location   string `env:"LOCATION" envDefault:"UTC"`
}

// CleanConfig holds the row filters applied while reading CSV files.
type CleanConfig struct {
	HourFrom     int     `env:"HOUR_FROM" envDefault:"9"`
	HourTo       int     `env:"HOUR_TO" envDefault:"16"`
	MaxJumpRatio float64 `env:"MAX_JUMP_RATIO" envDefault:"0.5"`
}

// SessionConfig is the trading session a query window must fall into.
type SessionConfig struct {
	Open  string `env:"OPEN" envDefault:"09:30"`
	Close string `env:"CLOSE" envDefault:"16:00"`
}

// QueryCacheConfig toggles the Redis-backed query result cache.
type QueryCacheConfig struct {
	Enabled bool          `env:"ENABLED" envDefault:"false"`
	TTL     time.Duration `env:"TTL" envDefault:"10m"`
}

// ReportConfig controls the query result artifact.
type ReportConfig struct {
	OutputPath string `env:"OUTPUT_PATH" envDefault:"query_result.csv"`
}

// LoadLocation resolves StoreConfig.Location.
func (s StoreConfig) LoadLocation() (*time.Location, error) {
	loc, err := time.LoadLocation(s.Location)
	if err != nil {
		return nil, fmt.Errorf("invalid STORE_LOCATION %q: %w", s.Location, err)
	}
	return loc, nil
}
