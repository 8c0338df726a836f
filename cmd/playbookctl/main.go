package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/ganot/playbook/internal/app"
	"github.com/ganot/playbook/internal/config"
	"github.com/ganot/playbook/internal/logging"
	"github.com/ganot/playbook/internal/sqlite"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func main() {
	// Load .env file first, but don't error if it doesn't exist.
	_ = godotenv.Load()

	cliApp := &cli.App{
		Name:  "playbookctl",
		Usage: "Administer the youth sports season calendar.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "db", Usage: "SQLite database path (defaults to the configured db.path)", EnvVars: []string{"PLAYBOOK_DB_PATH"}},
			&cli.StringFlag{Name: "log-level", Value: "warn", Usage: "debug, info, warn or error"},
		},
		Commands: []*cli.Command{
			hashPasswordCommand(),
			seedCommand(),
			monthCommand(),
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

// openApp loads configuration, opens the database and applies migrations.
// The returned cleanup closes the database.
func openApp(c *cli.Context) (*app.App, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	if path := c.String("db"); path != "" {
		cfg.DB.Path = path
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, nil, err
	}

	logger := logging.New(os.Stderr, c.String("log-level"))

	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		return nil, nil, err
	}
	if err := db.RunMigrations(); err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	a := app.New(db, app.Options{
		Location:     loc,
		RecentWindow: cfg.Calendar.RecentWindowDays,
		Logger:       logger,
	})
	return a, func() { _ = db.Close() }, nil
}

func commandContext(c *cli.Context) context.Context {
	if c.Context != nil {
		return c.Context
	}
	return context.Background()
}
