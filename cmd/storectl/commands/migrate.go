package commands

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/GTDGit/store_api/internal/database"
)

var steps int

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
	Long: `Run database migrations.

Subcommands:
  up       - Apply pending migrations
  down     - Roll back migrations
  version  - Show the current schema version`,
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, db, err := connect()
		if err != nil {
			return err
		}
		defer db.Close()

		if err := database.MigrateUp(db.DB); err != nil {
			return err
		}
		return printVersion(cmd, db.DB)
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back migrations",
	Long: `Roll back applied migrations.

Examples:
  storectl migrate down             # Roll back the last migration
  storectl migrate down --steps 3   # Roll back three migrations`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if steps < 1 {
			return fmt.Errorf("--steps must be at least 1")
		}
		_, db, err := connect()
		if err != nil {
			return err
		}
		defer db.Close()

		if err := database.MigrateDown(db.DB, steps); err != nil {
			return err
		}
		return printVersion(cmd, db.DB)
	},
}

var migrateVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the current schema version",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, db, err := connect()
		if err != nil {
			return err
		}
		defer db.Close()
		return printVersion(cmd, db.DB)
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateVersionCmd)

	migrateDownCmd.Flags().IntVar(&steps, "steps", 1, "Number of migrations to roll back")
}

func printVersion(cmd *cobra.Command, db *sql.DB) error {
	version, dirty, err := database.MigrationVersion(db)
	if err != nil {
		return err
	}
	if dirty {
		cmd.Printf("schema version %d (dirty)\n", version)
		return nil
	}
	cmd.Printf("schema version %d\n", version)
	return nil
}
