// Package config provides configuration management for the dbglance CLI
// and server. Values come from defaults, an optional dbglance.yaml,
// DBGLANCE_* environment variables, and CLI flags, in ascending
// precedence.
package config

import (
	"strconv"
	"time"
)

// Defaults applied before any other configuration source.
const (
	DefaultHost           = "127.0.0.1"
	DefaultPort           = 8910
	DefaultMaxUploadBytes = 64 << 20 // 64 MiB
	DefaultQueryTimeout   = 10 * time.Second
	DefaultMaxRows        = 1000
	DefaultSampleLimit    = 20
	DefaultSessionTTL     = 2 * time.Hour
)

// Config holds all runtime configuration.
type Config struct {
	// Server
	Host string `koanf:"host"`
	Port int    `koanf:"port"`

	// SessionSecret signs the session cookie. A random secret is
	// generated at startup when unset, which invalidates cookies across
	// restarts; set it to keep sessions stable.
	SessionSecret string        `koanf:"session_secret"`
	SessionTTL    time.Duration `koanf:"session_ttl"`

	// Uploads
	MaxUploadBytes int64  `koanf:"max_upload_bytes"`
	TempDir        string `koanf:"temp_dir"`

	// Query execution
	QueryTimeout time.Duration `koanf:"query_timeout"`
	MaxRows      int           `koanf:"max_rows"`
	SampleLimit  int           `koanf:"sample_limit"`

	Verbose bool `koanf:"verbose"`
}

// Addr returns the host:port the server binds to.
func (c *Config) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}
