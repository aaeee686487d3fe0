package config

import (
	"time"

	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
)

// Edit this and rebuild to configure a deployment. Secrets live here too,
// which is why production configs never get committed.
var Config = InkstoneConfig{
	Env:      Dev,
	LogLevel: zerolog.InfoLevel,
	Postgres: PostgresConfig{
		User:     "inkstone",
		Password: "password",
		Hostname: "localhost",
		Port:     5432,
		DbName:   "inkstone",
		LogLevel: tracelog.LogLevelWarn,
		MinConn:  2,
		MaxConn:  10,
	},
	Versioning: VersioningConfig{
		UpdateWindow:      60 * time.Second,
		MaxUpdateAttempts: 5,
	},
}
