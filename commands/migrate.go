package commands

import (
	"Gin_postgres_redis_book_exchange/app"
	"Gin_postgres_redis_book_exchange/db"

	"github.com/spf13/cobra"
)

var seed bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}
		defer log.Sync()

		conn, err := db.Open(cfg.DB, log)
		if err != nil {
			return err
		}
		if sqlDB, err := conn.DB(); err == nil {
			defer sqlDB.Close()
		}

		if err := db.Migrate(conn); err != nil {
			return err
		}
		Success("schema up to date (%s)\n", cfg.DB.Driver)

		if !seed {
			return nil
		}
		created, err := app.BootstrapDemoData(cmd.Context(), db.NewRepo(conn), log)
		if err != nil {
			return err
		}
		if created {
			Success("demo data created, log in as %s / password\n", app.DemoOwnerEmail)
		} else {
			Warning("demo data skipped: database already has users\n")
		}
		return nil
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&seed, "seed", false, "insert a demo owner and books into an empty database")
}
