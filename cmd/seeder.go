package cmd

import (
	"context"
	"log"

	"github.com/frahmantamala/finance-tracker/internal/seed"
	"github.com/frahmantamala/finance-tracker/pkg/logger"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with the default admin and categories",
	Long:  `Create the default admin user and their starter categories. Running it again is a no-op.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(configPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
		lg := logger.Configure(cfg.Logging.Level, cfg.Logging.Format)

		dbs, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer dbs.Close()

		if _, err := seed.NewSeeder(dbs.Gorm, cfg.Security.BCryptCost, lg).Run(context.Background(), cfg.Seed); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
	},
}
