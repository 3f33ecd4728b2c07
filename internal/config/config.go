// Package config maps process environment variables into a typed struct
package config

import (
	"github.com/caarlos0/env/v11"
)

// Config holds runtime configuration for the bibliopi server
type Config struct {
	// DataDir holds the SQLite slot file
	DataDir string `env:"BIBLIOPI_DATA_DIR" envDefault:"./data"`

	// Addr is the bind address; the -url flag takes precedence
	Addr string `env:"BIBLIOPI_ADDR" envDefault:":8080"`

	// PostgresURL, when set, switches the state slot from the local
	// SQLite file to a Postgres server
	PostgresURL string `env:"BIBLIOPI_POSTGRES_URL"`

	Debug bool `env:"BIBLIOPI_DEBUG" envDefault:"false"`
}

// Load parses the environment
func Load() (Config, error) {
	return env.ParseAs[Config]()
}
