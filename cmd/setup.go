package main

import (
	"context"
	"fmt"
	"net/url"

	"github.com/desertthunder/glass/internal/shared"
	"github.com/urfave/cli/v3"
)

// ConfigInit writes the example configuration to --config.
func (r *Runner) ConfigInit(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("config")
	if err := shared.CreateConfigFile(path); err != nil {
		return err
	}

	r.logger.Info("config file created", "path", path)
	r.writePlain("✓ Wrote %s\n", path)
	r.writePlain("Set credentials.spotify.client_id (or SPOTIFY_CLIENT_ID) and session.secret (or SESSION_SECRET) before serving.\n")
	return nil
}

// ConfigShow prints the effective configuration after the environment overlay.
func (r *Runner) ConfigShow(ctx context.Context, cmd *cli.Command) error {
	config, err := r.configFromCommand(cmd)
	if err != nil {
		return err
	}
	return r.writeJSON(redact(*config), cmd.Bool("pretty"))
}

// redact hides the session secret and any password in the redis URL.
func redact(c shared.Config) shared.Config {
	if c.Session.Secret != "" {
		c.Session.Secret = "********"
	}
	if u, err := url.Parse(c.Session.RedisURL); err == nil && u.User != nil {
		c.Session.RedisURL = u.Redacted()
	}
	return c
}

// DBMigrate applies pending migrations to the SQLite session database.
func (r *Runner) DBMigrate(ctx context.Context, cmd *cli.Command) error {
	config, err := r.configFromCommand(cmd)
	if err != nil {
		return err
	}

	db, err := shared.NewDatabase(config.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	r.logger.Info("running database migrations", "path", config.Database.Path)
	if err := shared.RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	version, _, err := shared.CurrentVersion(db)
	if err != nil {
		return err
	}
	r.writePlain("✓ Database %s at version %d\n", config.Database.Path, version)
	return nil
}

// DBRollback rolls back the most recent migration.
func (r *Runner) DBRollback(ctx context.Context, cmd *cli.Command) error {
	config, err := r.configFromCommand(cmd)
	if err != nil {
		return err
	}

	db, err := shared.NewDatabase(config.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := shared.RollbackMigration(db); err != nil {
		return fmt.Errorf("failed to roll back: %w", err)
	}

	version, ok, err := shared.CurrentVersion(db)
	if err != nil {
		return err
	}
	if !ok {
		r.writePlain("✓ All migrations rolled back\n")
		return nil
	}
	r.writePlain("✓ Rolled back to version %d\n", version)
	return nil
}
