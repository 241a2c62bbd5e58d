package redis

import (
	"time"

	"github.com/muhammadchandra19/tickstore/pkg/errors"
)

// Mode represents the mode of the Redis client.
type Mode string

const (
	// Standalone Mode is for a single Redis instance.
	Standalone Mode = "standalone"
	// Cluster Mode is for a Redis cluster setup.
	Cluster Mode = "cluster"
)

// Config holds the configuration for the Redis client.
type Config struct {
	Mode     Mode   `env:"MODE" envDefault:"standalone"`
	Username string `env:"USERNAME"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB" envDefault:"0"`

	Addrs []string `env:"ADDRS" envDefault:"localhost:6379"`

	ConnectTimeout  time.Duration `env:"CONNECT_TIMEOUT" envDefault:"5s"`
	MaxRetries      int           `env:"MAX_RETRIES" envDefault:"3"`
	MinRetryBackoff time.Duration `env:"MIN_RETRY_BACKOFF" envDefault:"100ms"`
	MaxRetryBackoff time.Duration `env:"MAX_RETRY_BACKOFF" envDefault:"2s"`
	PoolSize        int           `env:"POOL_SIZE" envDefault:"10"`
	MinIdleConns    int           `env:"MIN_IDLE_CONNS" envDefault:"2"`
	MaxIdleConns    int           `env:"MAX_IDLE_CONNS" envDefault:"10"`
	ConnMaxLifetime time.Duration `env:"CONN_MAX_LIFETIME" envDefault:"30m"`
	ConnMaxIdleTime time.Duration `env:"CONN_MAX_IDLE_TIME" envDefault:"10m"`
	PoolTimeout     time.Duration `env:"POOL_TIMEOUT" envDefault:"4s"`
	PrefixKey       string        `env:"PREFIX_KEY" envDefault:"tickstore:"`
}

// DefaultConfig returns a default configuration for the Redis client.
func DefaultConfig() *Config {
	return &Config{
		Mode:            Standalone,
		Addrs:           []string{"localhost:6379"},
		ConnectTimeout:  5 * time.Second,
		MaxRetries:      3,
		MinRetryBackoff: 100 * time.Millisecond,
		MaxRetryBackoff: 2 * time.Second,
		PoolSize:        10,
		MinIdleConns:    2,
		MaxIdleConns:    10,
		ConnMaxLifetime: 30 * time.Minute,
		ConnMaxIdleTime: 10 * time.Minute,
		PoolTimeout:     4 * time.Second,
		PrefixKey:       "tickstore:",
	}
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	if c == nil {
		return errors.NewErrorDetails("Redis config is nil", string(errors.RedisConfigError), "config")
	}

	base := errors.NewBaseError()
	invalid := func(message, field string) {
		base.AddErrorDetails(errors.NewErrorDetails(message, string(errors.RedisConfigError), field))
	}

	if len(c.Addrs) == 0 {
		invalid("Redis addresses are empty", "addrs")
	}
	if c.Mode != Standalone && c.Mode != Cluster {
		invalid("Invalid Redis mode", "mode")
	}
	if c.ConnectTimeout <= 0 {
		invalid("Invalid Redis connect timeout", "connect_timeout")
	}
	if c.PoolSize <= 0 {
		invalid("Invalid Redis pool size", "pool_size")
	}
	if c.MaxIdleConns < 0 {
		invalid("Invalid Redis max idle connections", "max_idle_conns")
	}
	if c.ConnMaxLifetime <= 0 {
		invalid("Invalid Redis connection max lifetime", "conn_max_lifetime")
	}
	if c.ConnMaxIdleTime <= 0 {
		invalid("Invalid Redis connection max idle time", "conn_max_idle_time")
	}
	if c.PoolTimeout <= 0 {
		invalid("Invalid Redis pool timeout", "pool_timeout")
	}
	if c.MaxRetries < 0 {
		invalid("Invalid Redis max retries", "max_retries")
	}
	if c.MinRetryBackoff < 0 || c.MaxRetryBackoff < 0 {
		invalid("Invalid Redis retry backoff", "retry_backoff")
	}

	if base.HasDetails() {
		return base
	}
	return nil
}
