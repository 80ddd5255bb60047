package commands

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"Gin_postgres_redis_book_exchange/app"
	"Gin_postgres_redis_book_exchange/db"
	"Gin_postgres_redis_book_exchange/routes"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}

		application := app.MustNew(cfg, log)
		defer application.Close()

		if cfg.SeedDemo {
			if _, err := app.BootstrapDemoData(cmd.Context(), db.NewRepo(application.DB), log); err != nil {
				log.Warn("demo seed failed", zap.Error(err))
			}
		}

		routes.RegisterRoutes(application.Router, application)

		srv := &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           application.Router,
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			log.Info("listening", zap.String("addr", srv.Addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}
