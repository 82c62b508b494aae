// cmd/dbtools/migrate/main.go
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	var (
		dbPath         = flag.String("db", "", "Path to SQLite database")
		migrationsPath = flag.String("migrations", "internal/db/migrations", "Path to migrations directory")
		command        = flag.String("command", "", "Command to run (up, down, steps, version, force)")
		steps          = flag.Int("n", 1, "Number of steps for the steps command (negative rolls back)")
		target         = flag.Int("version", -1, "Version for the force command")
	)
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if *dbPath == "" || *command == "" {
		flag.Usage()
		os.Exit(1)
	}
	if _, err := os.Stat(*migrationsPath); err != nil {
		log.Fatal().Err(err).Str("path", *migrationsPath).Msg("Migrations directory not found")
	}

	m, err := migrate.New(
		fmt.Sprintf("file://%s", *migrationsPath),
		fmt.Sprintf("sqlite3://%s?_fk=1", *dbPath),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Migration init failed")
	}
	defer m.Close()

	if err := runCommand(m, *command, *steps, *target); err != nil {
		log.Fatal().Err(err).Str("command", *command).Msg("Migration failed")
	}

	version, dirty, err := m.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		log.Info().Msg("No migrations applied")
	case err != nil:
		log.Fatal().Err(err).Msg("Get version failed")
	default:
		log.Info().Uint("version", version).Bool("dirty", dirty).Msg("Migration state")
	}
}

func runCommand(m *migrate.Migrate, command string, steps, target int) error {
	var err error
	switch command {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	case "steps":
		err = m.Steps(steps)
	case "force":
		if target < 0 {
			return fmt.Errorf("force requires -version")
		}
		err = m.Force(target)
	case "version":
		return nil
	default:
		return fmt.Errorf("unknown command: %s", command)
	}
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	return err
}
