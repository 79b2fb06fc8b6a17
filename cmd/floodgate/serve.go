package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jassus213/floodgate"
	"github.com/jassus213/floodgate/internal/config"
	"github.com/jassus213/floodgate/internal/logging"
	ginmw "github.com/jassus213/floodgate/middleware/gin"
)

func newServeCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run an HTTP server whose routes share one jumping window",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgFile, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(v, cfgFile)
			if err != nil {
				return err
			}

			logger, err := logging.New(cfg.Logging.Backend, cfg.Logging.Level, os.Stderr)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cfg, logger)
		},
	}

	cmd.Flags().String("addr", ":8080", "listen address")
	cmd.Flags().Uint64("capacity", 5, "triggers allowed per window")
	cmd.Flags().Duration("period", time.Minute, "window length")
	cmd.Flags().String("log-backend", "zap", "log backend: zap, logrus, zerolog or std")
	cmd.Flags().String("log-level", "info", "log level: debug, info, warn or error")

	_ = v.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))
	_ = v.BindPFlag("limit.capacity", cmd.Flags().Lookup("capacity"))
	_ = v.BindPFlag("logging.backend", cmd.Flags().Lookup("log-backend"))
	_ = v.BindPFlag("logging.level", cmd.Flags().Lookup("log-level"))
	_ = v.BindPFlag("limit.period", cmd.Flags().Lookup("period"))

	return cmd
}

func newRouter(cooldown *floodgate.Cooldown, logger floodgate.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	limited := router.Group("/", ginmw.RateLimiter(cooldown, floodgate.WithLogger(logger)))
	limited.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	limited.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"remaining":  cooldown.Remaining(),
			"next_reset": cooldown.NextReset().String(),
		})
	})

	return router
}

func serve(ctx context.Context, cfg *config.Config, logger floodgate.Logger) error {
	gin.SetMode(gin.ReleaseMode)

	cooldown := floodgate.NewCooldown(cfg.Limit.Capacity, cfg.Limit.Period)
	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: newRouter(cooldown, logger),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Debugf("Listening on %s (capacity=%d, period=%s)", cfg.Server.Addr, cfg.Limit.Capacity, cfg.Limit.Period)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			logger.Errorf("Server failed: %v", err)
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
