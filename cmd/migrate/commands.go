package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/ogurasousui/hcm-member-service/internal/platform/config"
	"github.com/spf13/cobra"
)

type migrator interface {
	Up() error
	Down() error
	Steps(n int) error
	Drop() error
	Version() (uint, bool, error)
	Close() (error, error)
}

type migratorFactory func(dir, dsn string) (migrator, error)

func newRootCmd() *cobra.Command {
	return newRootCmdWith(openMigrator)
}

func newRootCmdWith(open migratorFactory) *cobra.Command {
	var (
		configPath    string
		migrationsDir string
	)

	rootCmd := &cobra.Command{
		Use:           "migrate",
		Short:         "Apply database migrations for the member service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (defaults to CONFIG_PATH env or assets/local.yaml)")
	rootCmd.PersistentFlags().StringVar(&migrationsDir, "dir", "assets/migrations", "directory containing migration files")

	withMigrator := func(cmd *cobra.Command, fn func(migrator) error) error {
		cfg, err := config.Load(effectiveConfigPath(configPath))
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		m, err := open(migrationsDir, cfg.Database.DSN())
		if err != nil {
			return err
		}
		defer m.Close()
		return fn(m)
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withMigrator(cmd, func(m migrator) error {
				if err := ignoreNoChange(m.Up()); err != nil {
					return err
				}
				cmd.Println("migration up completed")
				return nil
			})
		},
	}

	var steps int
	downCmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations (all by default, or --steps N)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if steps < 0 {
				return fmt.Errorf("--steps must not be negative")
			}
			return withMigrator(cmd, func(m migrator) error {
				var err error
				if steps > 0 {
					err = m.Steps(-steps)
				} else {
					err = m.Down()
				}
				if err := ignoreNoChange(err); err != nil {
					return err
				}
				cmd.Println("migration down completed")
				return nil
			})
		},
	}
	downCmd.Flags().IntVar(&steps, "steps", 0, "number of migrations to roll back")

	dropCmd := &cobra.Command{
		Use:   "drop",
		Short: "Drop every object in the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withMigrator(cmd, func(m migrator) error {
				if err := m.Drop(); err != nil {
					return err
				}
				cmd.Println("migration drop completed")
				return nil
			})
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the applied migration version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withMigrator(cmd, func(m migrator) error {
				version, dirty, err := m.Version()
				if errors.Is(err, migrate.ErrNilVersion) {
					cmd.Println("no migration applied")
					return nil
				}
				if err != nil {
					return err
				}
				cmd.Printf("version=%d dirty=%t\n", version, dirty)
				return nil
			})
		},
	}

	rootCmd.AddCommand(upCmd, downCmd, dropCmd, versionCmd)
	return rootCmd
}

func effectiveConfigPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv("CONFIG_PATH"); env != "" {
		return env
	}
	return "assets/local.yaml"
}

func openMigrator(dir, dsn string) (migrator, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve path for %s: %w", dir, err)
	}
	absDir = filepath.ToSlash(absDir)

	m, err := migrate.New(fmt.Sprintf("file://%s", absDir), dsn)
	if err != nil {
		return nil, fmt.Errorf("create migrate instance: %w", err)
	}
	return m, nil
}

func ignoreNoChange(err error) error {
	if err == nil || errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	return err
}
