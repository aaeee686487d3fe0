package config

import (
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
)

type Environment string

const (
	Live Environment = "live"
	Beta             = "beta"
	Dev              = "dev"
)

type InkstoneConfig struct {
	Env      Environment
	LogLevel zerolog.Level

	Postgres   PostgresConfig
	Versioning VersioningConfig
}

type PostgresConfig struct {
	User     string
	Password string
	Hostname string
	Port     int
	DbName   string
	LogLevel tracelog.LogLevel
	MinConn  int32
	MaxConn  int32
}

func (info PostgresConfig) DSN() string {
	return fmt.Sprintf("user=%s password=%s host=%s port=%d dbname=%s", info.User, info.Password, info.Hostname, info.Port, info.DbName)
}

// Knobs for the draft versioning policy. These are plumbed into the draft
// helpers as an explicit blogdata.VersionPolicy at startup; nothing in the
// store reads them ambiently.
type VersioningConfig struct {
	// Edits closer together than this collapse into the current version
	// instead of creating a new one.
	UpdateWindow time.Duration

	// How many times an update may lose the optimistic version check
	// before we give up.
	MaxUpdateAttempts int
}
