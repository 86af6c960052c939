package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/notebot-labs/chatgate/internal/api"
	"github.com/notebot-labs/chatgate/internal/config"
	"github.com/notebot-labs/chatgate/internal/contentfilter"
	"github.com/notebot-labs/chatgate/internal/database"
	"github.com/notebot-labs/chatgate/internal/governance"
	"github.com/notebot-labs/chatgate/internal/governance/audit"
	mw "github.com/notebot-labs/chatgate/internal/middleware"
	cnats "github.com/notebot-labs/chatgate/internal/nats"
	"github.com/notebot-labs/chatgate/internal/quota"
	iredis "github.com/notebot-labs/chatgate/internal/redis"
	"github.com/notebot-labs/chatgate/internal/search"
	"github.com/notebot-labs/chatgate/internal/server"
	"github.com/notebot-labs/chatgate/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("loading config", "error", err)
		os.Exit(1)
	}

	setupLogger(cfg.Log)

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// PostgreSQL
	pool, err := database.NewPostgresPool(ctx, cfg.DB)
	if err != nil {
		slog.Error("connecting to postgres", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := database.RunMigrations(cfg.DB.DSN(), "migrations"); err != nil {
		slog.Error("running migrations", "error", err)
		os.Exit(1)
	}

	// Redis
	redisClient, err := iredis.NewClient(ctx, cfg.Redis)
	if err != nil {
		slog.Error("connecting to redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()

	// NATS (optional)
	var natsClient *cnats.Client
	var publisher governance.EventPublisher
	auditRepo := audit.NewRepository(pool)
	if cfg.NATS.URL != "" {
		natsClient, err = cnats.NewClient(ctx, cfg.NATS)
		if err != nil {
			slog.Error("connecting to NATS", "error", err)
			os.Exit(1)
		}
		defer natsClient.Close()

		publisher = cnats.NewPublisher(natsClient.JetStream())

		consumer := audit.NewConsumer(cnats.NewConsumerManager(natsClient.JetStream()), auditRepo)
		go func() {
			if err := consumer.Start(ctx); err != nil {
				slog.Error("audit consumer stopped", "error", err)
			}
		}()
	}

	// Content filter
	denylist := contentfilter.DefaultDenylist
	if cfg.Chat.DenylistPath != "" {
		denylist, err = contentfilter.LoadDenylist(cfg.Chat.DenylistPath)
		if err != nil {
			slog.Error("loading denylist", "path", cfg.Chat.DenylistPath, "error", err)
			os.Exit(1)
		}
	}
	filter := contentfilter.New(denylist)

	// Quota tracking
	tracker := quota.NewTracker(quota.NewRedisStore(redisClient), cfg.Chat.MaxMessagesPerDay)

	// Downstream search
	searchClient := search.NewClient(cfg.Search.URL, cfg.Search.Timeout)

	// Governance gate
	gate := governance.NewGate(filter, tracker, searchClient, publisher, cfg.Chat.MaxMessageLength)
	governanceHandler := governance.NewHandler(gate, auditRepo)

	// Sessions
	sessionMgr := session.NewManager(cfg.Session.Secret, cfg.Session.Expiry)
	sessionHandler := session.NewHandler(sessionMgr)

	rateLimiter := mw.NewRateLimiter(redisClient, cfg.RateLimit.SessionPerMinute, 60)

	// Router
	router := api.NewRouter(pool, redisClient, natsClient, api.RouterConfig{
		CORSAllowedOrigins: cfg.CORS.AllowedOrigins,
		SessionRateLimiter: rateLimiter.Middleware,
	}, api.HandlerSet{
		CreateSession: sessionHandler.Create,

		ValidateMessage: governanceHandler.ValidateMessage,
		SubmitMessage:   governanceHandler.SubmitMessage,
		GetQuota:        governanceHandler.GetQuota,
		ListAuditLogs:   governanceHandler.ListAuditLogs,

		SessionMiddleware: session.Middleware(sessionMgr),
	})

	// Start server
	srv := server.New(cfg.Server, router)
	if err := srv.Start(); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

func setupLogger(cfg config.LogConfig) {
	var handler slog.Handler

	opts := &slog.HandlerOptions{}
	switch cfg.Level {
	case "debug":
		opts.Level = slog.LevelDebug
	case "info":
		opts.Level = slog.LevelInfo
	case "warn":
		opts.Level = slog.LevelWarn
	case "error":
		opts.Level = slog.LevelError
	default:
		opts.Level = slog.LevelInfo
	}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(handler))
}
