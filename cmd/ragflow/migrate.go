package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/BaSui01/ragflow/config"
	"github.com/BaSui01/ragflow/internal/migration"
)

// runMigrate handles the migrate command and its subcommands.
func runMigrate(args []string) {
	if len(args) < 1 {
		printMigrateUsage()
		os.Exit(1)
	}

	subcommand := args[0]
	subargs := args[1:]

	switch subcommand {
	case "up":
		withMigrator(subargs, func(m *migration.Migrator) error { return m.Up() })
	case "down":
		withMigrator(subargs, func(m *migration.Migrator) error { return m.Down() })
	case "version":
		withMigrator(subargs, func(m *migration.Migrator) error {
			version, dirty, err := m.Version()
			if err != nil {
				return err
			}
			fmt.Printf("version: %d dirty: %v\n", version, dirty)
			return nil
		})
	case "force":
		if len(subargs) < 1 {
			fmt.Fprintln(os.Stderr, "Usage: ragflow migrate force <version>")
			os.Exit(1)
		}
		version, err := strconv.Atoi(subargs[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid version number: %s\n", subargs[0])
			os.Exit(1)
		}
		withMigrator(subargs[1:], func(m *migration.Migrator) error { return m.Force(version) })
	case "help", "-h", "--help":
		printMigrateUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown migrate subcommand: %s\n", subcommand)
		printMigrateUsage()
		os.Exit(1)
	}
}

// withMigrator builds a migrator from flags, runs fn, and exits non-zero on
// failure.
func withMigrator(args []string, fn func(*migration.Migrator) error) {
	fs := flag.NewFlagSet("migrate", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to config file")
	sourcePath := fs.String("path", "migrations", "Path to migrations directory")
	dbURL := fs.String("db-url", "", "Database connection URL")
	fs.Parse(args)

	url := *dbURL
	if url == "" {
		loader := config.NewLoader()
		if *configPath != "" {
			loader = loader.WithConfigPath(*configPath)
		}
		cfg, err := loader.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}
		url = cfg.Database.MigrateURL()
	}

	migrator, err := migration.New(*sourcePath, url)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create migrator: %v\n", err)
		os.Exit(1)
	}
	defer migrator.Close()

	if err := fn(migrator); err != nil {
		fmt.Fprintf(os.Stderr, "Migration failed: %v\n", err)
		os.Exit(1)
	}
}

func printMigrateUsage() {
	fmt.Println(`Database Migration Commands

Usage:
  ragflow migrate <subcommand> [options]

Subcommands:
  up        Apply all pending migrations
  down      Rollback the last migration
  version   Show current migration version
  force     Force set migration version (use with caution)

Options:
  --config <path>   Path to configuration file (YAML)
  --path <dir>      Migrations directory (default: migrations)
  --db-url <url>    Database connection URL (default: from config)`)
}
