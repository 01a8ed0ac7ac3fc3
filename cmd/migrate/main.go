package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"funntour/config"
	logs "funntour/internal/infra/log"
	"funntour/internal/infra/persistence/postgres"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// Supported subcommands:
// - up:     Create or update every table and unique index
// - tables: List the tables the service owns

func main() {
	upCmd := flag.NewFlagSet("up", flag.ExitOnError)
	upTimeout := upCmd.Duration("timeout", 2*time.Minute, "Maximum time for the migration")
	tablesCmd := flag.NewFlagSet("tables", flag.ExitOnError)

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "up":
		if err = upCmd.Parse(os.Args[2:]); err == nil {
			err = runUp(*upTimeout)
		}
	case "tables":
		if err = tablesCmd.Parse(os.Args[2:]); err == nil {
			err = runTables()
		}
	case "help", "-h", "--help":
		printUsage()

		return
	default:
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: migrate <command> [options]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  up       Create or update the database schema")
	fmt.Println("  tables   List the tables managed by the service")
}

func runUp(timeout time.Duration) error {
	var db *gorm.DB
	var logger *slog.Logger

	app := fx.New(
		fx.NopLogger,
		fx.Provide(
			config.New,
			logs.New,
			postgres.New,
		),
		// The explicit run below replaces the startup migration.
		fx.Decorate(func(cfg *config.Config) *config.Config {
			cfg.Database.AutoMigrate = false

			return cfg
		}),
		fx.Populate(&db, &logger),
	)
	if err := app.Err(); err != nil {
		return errors.Wrap(err, "failed to build migrate app")
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		return errors.Wrap(err, "failed to connect to database")
	}
	defer func() {
		stopCtx, stopCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer stopCancel()
		if err := app.Stop(stopCtx); err != nil {
			logger.Warn("Failed to close database", slog.Any("error", err))
		}
	}()

	start := time.Now()
	if err := postgres.Migrate(ctx, db); err != nil {
		return err
	}
	logger.Info("Database schema migrated", slog.Duration("elapsed", time.Since(start)))

	return nil
}

func runTables() error {
	names, err := postgres.TableNames()
	if err != nil {
		return err
	}
	for _, name := range names {
		fmt.Println(name)
	}

	return nil
}
