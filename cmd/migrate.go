package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/frahmantamala/finance-tracker/db/migrations"
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"
)

var (
	migrateCmd = &cobra.Command{
		RunE:  runMigration,
		Use:   "migrate",
		Short: "to run db migration files under db/migrations directory",
	}
	migrateRollback bool
	migrateDir      string
)

func init() {
	migrateCmd.Flags().BoolVarP(&migrateRollback, "rollback", "r", false, "to rollback the latest version of sql migration")
	migrateCmd.PersistentFlags().StringVarP(&migrateDir, "dir", "d", "", "sql migrations directory (defaults to the migrations embedded in the binary)")
}

func runMigration(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		log.Fatal(err)
	}

	db, err := openSQL(cfg.Database)
	if err != nil {
		log.Fatalf("goose: failed to open DB: %v\n", err)
	}
	defer db.Close()

	command := "up"
	if migrateRollback {
		command = "down"
	}

	if err := migrate(context.Background(), db, cfg.Database.MigrationsTable, command); err != nil {
		log.Fatalf("goose %s: %v", command, err)
	}

	return nil
}

func migrate(ctx context.Context, db *sql.DB, table, command string) error {
	var fsys fs.FS = migrations.FS
	dir := "."
	if migrateDir != "" {
		fsys = os.DirFS(migrateDir)
	}

	goose.SetBaseFS(fsys)
	goose.SetTableName(table)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}

	return goose.RunContext(ctx, command, db, dir)
}
