package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/frahmantamala/finance-tracker/api"
	"github.com/frahmantamala/finance-tracker/internal"
	"github.com/frahmantamala/finance-tracker/internal/auth"
	authPostgres "github.com/frahmantamala/finance-tracker/internal/auth/postgres"
	"github.com/frahmantamala/finance-tracker/internal/category"
	categoryPostgres "github.com/frahmantamala/finance-tracker/internal/category/postgres"
	"github.com/frahmantamala/finance-tracker/internal/dashboard"
	dashboardPostgres "github.com/frahmantamala/finance-tracker/internal/dashboard/postgres"
	"github.com/frahmantamala/finance-tracker/internal/seed"
	"github.com/frahmantamala/finance-tracker/internal/transaction"
	transactionPostgres "github.com/frahmantamala/finance-tracker/internal/transaction/postgres"
	"github.com/frahmantamala/finance-tracker/internal/transport"
	"github.com/frahmantamala/finance-tracker/internal/transport/rest"
	"github.com/frahmantamala/finance-tracker/internal/user"
	userPostgres "github.com/frahmantamala/finance-tracker/internal/user/postgres"
	"github.com/frahmantamala/finance-tracker/pkg/logger"

	"github.com/go-chi/chi"
	"github.com/spf13/cobra"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	DB     *Databases
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	if err := setupRoutes(deps); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up routes: %v\n", err)
		_ = deps.DB.Close()
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), deps.Config.Server.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("Server shutdown error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			deps.Logger.Error("Server failed to start", "error", err)
			_ = deps.DB.Close()
			os.Exit(1)
		}
	}

	if err := deps.DB.Close(); err != nil {
		deps.Logger.Error("Database close error", "error", err)
	}
	deps.Logger.Info("Server stopped")
}

func setupRoutes(deps *Dependencies) error {
	cfg := deps.Config
	lg := deps.Logger

	// refuse to serve a broken document at /openapi.yml
	doc, err := api.Load(context.Background())
	if err != nil {
		return err
	}
	lg.Info("OpenAPI document loaded", "title", doc.Info.Title, "version", doc.Info.Version, "paths", doc.Paths.Len())
	base := transport.NewBaseHandler(lg)

	tokens := auth.NewJWTTokenGenerator(cfg.Security.JWTSecret, cfg.Security.TokenDuration)
	authService := auth.NewService(authPostgres.NewRepository(deps.DB.Gorm), tokens, lg)
	userService := user.NewService(userPostgres.NewUserRepository(deps.DB.Gorm))
	categoryService := category.NewService(categoryPostgres.NewCategoryRepository(deps.DB.Gorm), lg)
	transactionService := transaction.NewService(transactionPostgres.NewTransactionRepository(deps.DB.Gorm), categoryService, lg)
	dashboardService := dashboard.NewService(
		dashboardPostgres.NewStatsRepository(deps.DB.Sqlx),
		lg,
		dashboard.WithQueryTimeout(cfg.Database.QueryTimeout),
	)

	rest.RegisterAllRoutes(deps.Router, rest.Handlers{
		Health:      rest.NewHealthHandler(base, deps.DB.SQL),
		Auth:        auth.NewHandler(base, authService),
		User:        user.NewHandler(base, userService),
		Category:    category.NewHandler(base, categoryService),
		Transaction: transaction.NewHandler(base, transactionService),
		Dashboard:   dashboard.NewHandler(base, dashboardService),
	}, cfg.Server.Origins(), lg)
	return nil
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	lg := logger.Configure(config.Logging.Level, config.Logging.Format)

	dbs, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	ctx := context.Background()
	if config.Database.AutoMigrate {
		if err := migrate(ctx, dbs.SQL, config.Database.MigrationsTable, "up"); err != nil {
			_ = dbs.Close()
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	if config.Seed.OnStartup {
		if _, err := seed.NewSeeder(dbs.Gorm, config.Security.BCryptCost, lg).Run(ctx, config.Seed); err != nil {
			_ = dbs.Close()
			return nil, fmt.Errorf("failed to seed database: %w", err)
		}
	}

	return &Dependencies{
		Config: config,
		Logger: lg,
		DB:     dbs,
		Router: chi.NewRouter(),
	}, nil
}
