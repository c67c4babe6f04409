package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"wxgate.app/wxgate/common/id"
	"wxgate.app/wxgate/common/logger"
	"wxgate.app/wxgate/common/otel"
	"wxgate.app/wxgate/common/token"
	"wxgate.app/wxgate/core/config"
	"wxgate.app/wxgate/core/db"
	"wxgate.app/wxgate/internal/cache"
	"wxgate.app/wxgate/internal/email"
	"wxgate.app/wxgate/internal/gingai"
	"wxgate.app/wxgate/internal/http/middleware"
	httprouter "wxgate.app/wxgate/internal/http/router"
	"wxgate.app/wxgate/internal/service"
	"wxgate.app/wxgate/internal/store"
	"wxgate.app/wxgate/internal/wcf"
)

func main() {
	fmt.Printf("%s\n", banner)
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}

	// OTel must init before logger (logger uses OTel provider in production)
	telemetry, err := otel.Setup(ctx, cfg.OTel)
	if err != nil {
		// Can't use slog yet — OTel failed before logger setup
		os.Stderr.WriteString("failed to initialize otel: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger.Setup(cfg)

	if telemetry != nil {
		slog.InfoContext(ctx, "otel initialized", "endpoint", cfg.OTel.Endpoint)
	} else {
		slog.InfoContext(ctx, "otel disabled (no endpoint configured)")
	}

	slog.InfoContext(ctx, "wxgate starting", "env", cfg.Env, "service", cfg.OTel.ServiceName)
	if err := id.Init(1); err != nil {
		slog.ErrorContext(ctx, "failed to initialize snowflake id generator", "error", err)
		os.Exit(1)
	}

	database, err := db.New(ctx, cfg.DB)
	if err != nil {
		slog.ErrorContext(ctx, "failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()
	slog.InfoContext(ctx, "database connected")

	redisOpts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		slog.ErrorContext(ctx, "failed to parse redis url", "error", err)
		os.Exit(1)
	}

	redisClient := redis.NewClient(redisOpts)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		slog.ErrorContext(ctx, "failed to connect to redis", "error", err)
		os.Exit(1)
	}
	slog.InfoContext(ctx, "redis connected")

	stores := store.NewStores(database.Pool())
	tokens := token.NewManager(cfg.JWT.Secret, cfg.JWT.Expiry)

	services := service.NewServices(service.Dependencies{
		Stores: stores,
		Tokens: tokens,
		Google: cfg.Google,
		Bridge: wcf.New(cfg.WCF.APIBase),
		Conversations: gingai.New(gingai.Config{
			APIBase:       cfg.GingAI.APIBase,
			APIKey:        cfg.GingAI.APIKey,
			ApplicationID: cfg.GingAI.ApplicationID,
		}),
		Mailer:  email.NewSender(cfg.SMTP),
		Limiter: cache.NewResendLimiter(redisClient, time.Minute),
	})

	if err := services.Users().SeedAdmin(ctx, cfg.Admin.Password); err != nil {
		slog.ErrorContext(ctx, "failed to seed admin account", "error", err)
		os.Exit(1)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := setupRouter(cfg, services, tokens)
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.InfoContext(ctx, "http server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.ErrorContext(ctx, "http server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.InfoContext(ctx, "shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.ErrorContext(shutdownCtx, "http server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "otel shutdown error", "error", err)
		}
	}

	slog.InfoContext(shutdownCtx, "shutdown complete")
}

func setupRouter(cfg config.Config, services *service.Services, tokens *token.Manager) *gin.Engine {
	router := gin.New()

	// Order matters: OTel creates span → Recovery catches panics → Logger logs with trace context
	if cfg.OTel.Enabled() {
		router.Use(otelgin.Middleware(cfg.OTel.ServiceName))
	}
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.CORS())

	httprouter.SetupRoutes(router, services, tokens)

	return router
}

const banner = `
██╗    ██╗██╗  ██╗ ██████╗  █████╗ ████████╗███████╗
██║    ██║╚██╗██╔╝██╔════╝ ██╔══██╗╚══██╔══╝██╔════╝
██║ █╗ ██║ ╚███╔╝ ██║  ███╗███████║   ██║   █████╗
██║███╗██║ ██╔██╗ ██║   ██║██╔══██║   ██║   ██╔══╝
╚███╔███╔╝██╔╝ ██╗╚██████╔╝██║  ██║   ██║   ███████╗
 ╚══╝╚══╝ ╚═╝  ╚═╝ ╚═════╝ ╚═╝  ╚═╝   ╚═╝   ╚══════╝
`
