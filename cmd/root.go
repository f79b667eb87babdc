package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/hopeIsCo0l/AnuTest/internal/core/config"
	"github.com/hopeIsCo0l/AnuTest/internal/core/container"
	"github.com/hopeIsCo0l/AnuTest/internal/core/logger"
	"github.com/hopeIsCo0l/AnuTest/internal/core/routes"
	"github.com/hopeIsCo0l/AnuTest/internal/database"
	"github.com/hopeIsCo0l/AnuTest/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var Version = "dev"

var ServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return serve(cmd.Context())
	},
}

var MigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or upgrade the audit log schema.",
	Long:  `Applies the migrations in --dir to AUDIT_DATABASE_URL. Only needed when the audit sink is enabled.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		log := logger.NewLogger(cfg.Log.Level, cfg.Log.Format)
		defer log.Sync()

		migrationDir, _ := cmd.Flags().GetString("dir")
		if migrationDir == "" {
			migrationDir = cfg.Audit.MigrationsDir
		}

		if err := database.RunMigrations(cfg.Audit.DatabaseURL, migrationDir, log); err != nil {
			return fmt.Errorf("migrate database: %w", err)
		}
		return nil
	},
}

func init() {
	MigrateCmd.Flags().String("dir", "", "Directory containing the migration files (default AUDIT_MIGRATIONS_DIR or ./migrations)")
}

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "anuinv",
		Short:         "Candy factory inventory and production service",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          ServeCmd.RunE,
	}
	rootCmd.AddCommand(ServeCmd, MigrateCmd)
	return rootCmd
}

func Execute(ctx context.Context) {
	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serve(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := logger.NewLogger(cfg.Log.Level, cfg.Log.Format)
	defer log.Sync()

	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	middleware.SetVersion(Version)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := container.NewAppContainer(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer app.Close()

	srv := &http.Server{
		Addr:        cfg.Server.Host,
		Handler:     routes.NewRouter(app),
		ReadTimeout: cfg.Server.ReadTimeout,
		// no WriteTimeout: the event stream stays open until ctx ends
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", cfg.Server.Host), zap.String("version", Version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Shutting down server...")
	middleware.UpdateHealthStatus("stopping")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
		return err
	}
	return nil
}
