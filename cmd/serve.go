package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmehdipour/whatsapp-gateway/internal/config"
	"github.com/jmehdipour/whatsapp-gateway/internal/db"
	httpSrv "github.com/jmehdipour/whatsapp-gateway/internal/http"
	"github.com/jmehdipour/whatsapp-gateway/internal/logger"
	"github.com/jmehdipour/whatsapp-gateway/internal/metrics"
	"github.com/jmehdipour/whatsapp-gateway/internal/provider"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		logger.Init(cfg.Log.Level)
		defer func() { _ = logger.Log.Sync() }()

		metrics.MustRegister(prometheus.DefaultRegisterer)

		// rate limiting is opt-in; without redis the gateway runs unthrottled
		var redisClient *redis.Client
		if cfg.Redis.Addr != "" && cfg.RateLimit.RPS > 0 {
			redisClient, err = db.NewRedisClient(cfg.Redis)
			if err != nil {
				return fmt.Errorf("redis connect: %w", err)
			}
			defer func() { _ = redisClient.Close() }()
		}

		client := provider.NewTwilio(cfg.Twilio, logger.L())

		// startup probe; a broken setup logs loudly but the server still starts
		probeCtx, probeCancel := context.WithTimeout(context.Background(), 10*time.Second)
		working, probeErr := client.CheckCredentials(probeCtx)
		probeCancel()
		switch {
		case probeErr != nil:
			logger.L().Warn("credential probe failed at startup", zap.Error(probeErr))
		case !working:
			logger.L().Warn("twilio credentials missing or rejected; sends will fail until fixed")
		default:
			logger.L().Info("twilio credentials verified")
		}

		server := httpSrv.NewServer(cfg, client, redisClient)

		errCh := make(chan error, 1)
		go func() {
			log.Printf("starting http on %s", cfg.HTTP.Addr)
			errCh <- server.Start(cfg.HTTP.Addr)
		}()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-sigCh:
			log.Printf("signal received: %s, shutting down...", sig)
		case err := <-errCh:
			if err != nil {
				log.Printf("http server exited: %v", err)
			}
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(ctx)

		return nil
	},
}
