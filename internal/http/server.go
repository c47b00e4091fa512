package http

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/jmehdipour/whatsapp-gateway/internal/config"
	"github.com/jmehdipour/whatsapp-gateway/internal/http/middleware"
	"github.com/jmehdipour/whatsapp-gateway/internal/provider"
	"github.com/jmehdipour/whatsapp-gateway/internal/util"
	"github.com/labstack/echo/v4"
	echoMid "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

type Server struct{ e *echo.Echo }

// NewServer wires routes and middleware around the provider client. rds
// may be nil, which leaves the rate limiter disabled. Metric registration
// happens in cmd/serve so tests can build servers freely.
func NewServer(cfg config.Config, client provider.Client, rds *redis.Client) *Server {
	// echo
	e := echo.New()
	e.HideBanner = true
	e.Use(echoMid.Recover(), echoMid.Logger())
	e.Use(echoMid.RequestIDWithConfig(echoMid.RequestIDConfig{Generator: util.New}))

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// health
	e.GET("/healthz", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })

	// middlewares
	rlMW := middleware.RateLimitMiddleware(middleware.RateLimitConfig{
		Redis:          rds,
		RPS:            cfg.RateLimit.RPS,
		KeyPrefix:      "rl:ip:",
		Window:         time.Second,
		RetryAfterHint: true,
	})

	// routes
	send := sendWhatsAppHandler(client)
	e.POST("/send-whatsapp/", send, rlMW)
	e.POST("/send-whatsapp", send, rlMW)
	e.GET("/verify-config", verifyConfigHandler(cfg.Twilio, client))

	return &Server{e: e}
}

func (s *Server) Start(addr string) error {
	log.Printf("http: listening on %s", addr)
	return s.e.Start(addr)
}
func (s *Server) Shutdown(ctx context.Context) error { return s.e.Shutdown(ctx) }

// Echo exposes the router for handler-level tests.
func (s *Server) Echo() *echo.Echo { return s.e }
