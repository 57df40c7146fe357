package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/ekaya-inc/sqlassist/pkg/audit"
	"github.com/ekaya-inc/sqlassist/pkg/auth"
	"github.com/ekaya-inc/sqlassist/pkg/config"
	"github.com/ekaya-inc/sqlassist/pkg/database"
	"github.com/ekaya-inc/sqlassist/pkg/handlers"
	"github.com/ekaya-inc/sqlassist/pkg/llm"
	"github.com/ekaya-inc/sqlassist/pkg/logging"
	"github.com/ekaya-inc/sqlassist/pkg/middleware"
	"github.com/ekaya-inc/sqlassist/pkg/session"
	"github.com/ekaya-inc/sqlassist/ui"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.NewLogger(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Configuration loaded",
		zap.String("env", cfg.Env),
		zap.String("base_url", cfg.BaseURL),
		zap.String("llm_provider", cfg.LLM.Provider),
		zap.String("llm_model", cfg.LLM.Model),
		zap.String("database",
			logging.SanitizeConnectionString(cfg.Database.URL())))

	// The database connection is opened lazily and memoized: a database
	// that is down at startup surfaces as an inline error on the page,
	// not a crashed process.
	dbManager := database.NewManager(&database.Config{
		URL:            cfg.Database.URL(),
		MaxConnections: cfg.Database.MaxConnections,
	}, logger)
	defer dbManager.Close()

	startupCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	applyMigrations(startupCtx, cfg, logger)
	cancel()

	llmClient, err := llm.NewFromConfig(&cfg.LLM, logger)
	if err != nil {
		logger.Fatal("Failed to create LLM client", zap.Error(err))
	}

	states := session.NewStore(logger)
	stop := make(chan struct{})
	defer close(stop)
	states.StartJanitor(30*time.Minute, 24*time.Hour, stop)

	secure := auth.IsHTTPS(cfg.BaseURL)
	manager := auth.NewManager(cfg.SessionSecret, cfg.HashedPassword, secure, states, logger)

	auditor := audit.NewSecurityAuditor(logger)
	store := audit.NewQueryStore(dbManager, logger)
	executor := database.NewExecutor(dbManager,
		time.Duration(cfg.Database.QueryTimeoutSeconds)*time.Second, logger)

	mux := http.NewServeMux()

	handlers.NewHealthHandler(cfg, logger).RegisterRoutes(mux)
	handlers.NewAuthHandler(manager, states, auditor, logger).RegisterRoutes(mux)
	handlers.NewQueryHandler(manager, states, llmClient, executor, auditor, store,
		time.Duration(cfg.LLM.RequestTimeoutSeconds)*time.Second, logger).
		RegisterRoutes(mux, manager.RequireLogin)
	handlers.NewHistoryHandler(manager, states, logger).RegisterRoutes(mux, manager.RequireLogin)

	mux.Handle("/", http.FileServerFS(ui.DistFS()))

	handler := middleware.RequestLogger(logger)(mux)

	addr := cfg.BindAddr + ":" + cfg.Port
	logger.Info("Starting sqlassist",
		zap.String("addr", addr),
		zap.String("version", cfg.Version))
	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}

// applyMigrations creates the query audit table. Failure is logged, not
// fatal: the assistant works without the persisted audit trail.
func applyMigrations(ctx context.Context, cfg *config.Config, logger *zap.Logger) {
	sqlDB, err := sql.Open("pgx", cfg.Database.URL())
	if err != nil {
		logger.Warn("Skipping migrations, cannot open database",
			zap.String("error", logging.SanitizeError(err)))
		return
	}
	defer sqlDB.Close()

	if err := sqlDB.PingContext(ctx); err != nil {
		logger.Warn("Skipping migrations, database unreachable",
			zap.String("error", logging.SanitizeError(err)))
		return
	}

	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Warn("Migrations failed",
			zap.String("error", logging.SanitizeError(err)))
	}
}
