package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"library/internal/config"
	"library/internal/handlers"
	"library/internal/services"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(load managerLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the library over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, mgr, err := load()
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg, mgr)
		},
	}
}

func newRouter(cfg *config.Config, mgr services.LibraryManager) *gin.Engine {
	if cfg.Mode == config.ModeRelease {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	_ = router.SetTrustedProxies(nil)

	if cfg.Mode == config.ModeDev {
		router.Use(cors.New(cors.Config{
			AllowOrigins:  cfg.CORS.AllowOrigins,
			AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:  []string{"Origin", "Content-Type"},
			ExposeHeaders: []string{"Content-Length"},
		}))
	}

	handlers.RegisterRoutes(router, mgr)
	return router
}

func serve(ctx context.Context, cfg *config.Config, mgr services.LibraryManager) error {
	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      newRouter(cfg, mgr),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[INFO] Starting server on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Printf("[ERROR] server error: %v", err)
		}
		return err
	case <-ctx.Done():
	}

	log.Println("[INFO] shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
