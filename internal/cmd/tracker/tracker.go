// Package tracker parses tracker service flags and launches the service.
package tracker

import (
	"context"
	"flag"

	entrypoint "github.com/soliyanakewani/Project-Management-System/internal/platform/cmd"
	server "github.com/soliyanakewani/Project-Management-System/internal/services/tracker/app"
)

// Config holds tracker command configuration.
type Config struct {
	Addr      string `env:"TRACKER_HTTP_ADDR" envDefault:":8888"`
	DBPath    string `env:"TRACKER_DB_PATH" envDefault:"data/tracker.db"`
	JWTSecret string `env:"TRACKER_JWT_SECRET"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "The tracker HTTP listen address")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "The tracker SQLite database path")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the tracker HTTP API service.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceTracker, func(context.Context) error {
		return server.Run(ctx, server.Config{
			Addr:      cfg.Addr,
			DBPath:    cfg.DBPath,
			JWTSecret: cfg.JWTSecret,
		})
	})
}
