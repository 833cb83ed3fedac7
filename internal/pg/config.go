package pg

import (
	"fmt"
	"time"
)

// Config defines the PostgreSQL connection and pool settings.
type Config struct {
	// Debug logs every SQL statement at debug level.
	Debug bool `yaml:"debug" default:"false"`

	Host     string `yaml:"host"     default:"localhost"`
	Port     int    `yaml:"port"     default:"5432"`
	User     string `yaml:"user"     validate:"required"`
	Password string `yaml:"password" validate:"required" mask:"true"`
	Database string `yaml:"database" default:"filestorage"`

	// SSLMode is one of: disable, allow, prefer, require, verify-ca, verify-full.
	SSLMode        string        `yaml:"sslmode"         default:"disable" validate:"oneof=disable allow prefer require verify-ca verify-full"`
	SearchPath     string        `yaml:"search_path"     default:"public"`
	ConnectTimeout time.Duration `yaml:"connect_timeout" default:"10s"`

	PoolMaxConns        int32         `yaml:"pool_max_conns"          default:"8"`
	PoolMinConns        int32         `yaml:"pool_min_conns"          default:"1"`
	PoolMaxConnLifetime time.Duration `yaml:"pool_max_conn_lifetime"  default:"1h"`
	PoolMaxConnIdleTime time.Duration `yaml:"pool_max_conn_idle_time" default:"30m"`

	// SlowQueryThreshold marks statements slower than this as warnings. Zero disables it.
	SlowQueryThreshold time.Duration `yaml:"slow_query_threshold" default:"200ms"`

	// PingAttempts and PingDelay control how long startup waits for the database.
	PingAttempts uint          `yaml:"ping_attempts" default:"5" validate:"min=1"`
	PingDelay    time.Duration `yaml:"ping_delay"    default:"1s"`
}

func (c Config) dsn() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s search_path=%s connect_timeout=%d",
		c.Host,
		c.Port,
		c.User,
		c.Password,
		c.Database,
		c.SSLMode,
		c.SearchPath,
		int(c.ConnectTimeout.Seconds()),
	)
}
