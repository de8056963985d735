package cmd

import (
	"fmt"
	"os"

	"github.com/dealmarket/bff/internal/db"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

type dbFlags struct {
	driver     string
	connection string
}

// bind registers the database flags, defaulting to the same env vars as the server.
func (f *dbFlags) bind(cmd *cobra.Command) {
	_ = godotenv.Load()

	driver := os.Getenv("DB_DRIVER")
	if driver == "" {
		driver = "sqlite"
	}
	connection := os.Getenv("DB_CONNECTION")
	if connection == "" {
		connection = "./data/bff.db?_pragma=foreign_keys(1)"
	}

	cmd.PersistentFlags().StringVar(&f.driver, "driver", driver, "database driver (sqlite or pgx)")
	cmd.PersistentFlags().StringVar(&f.connection, "db", connection, "database connection string")
}

func MigrateCmd() *cobra.Command {
	var flags dbFlags

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back database migrations",
	}
	flags.bind(migrateCmd)

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := db.Init(flags.driver, flags.connection)
			if err != nil {
				return err
			}
			defer db.Close(database)

			return db.RunMigrations(database.DB, flags.driver)
		},
	})

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := db.Init(flags.driver, flags.connection)
			if err != nil {
				return err
			}
			defer db.Close(database)

			err = db.MigrateDown(database.DB, flags.driver)
			if err != nil {
				return fmt.Errorf("rollback failed: %w", err)
			}
			return nil
		},
	})

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show applied and pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := db.Init(flags.driver, flags.connection)
			if err != nil {
				return err
			}
			defer db.Close(database)

			return db.MigrationStatus(database.DB, flags.driver)
		},
	})

	return migrateCmd
}
