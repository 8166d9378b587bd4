package server

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobboard-backend/internal/analyzer"
	"jobboard-backend/internal/coverletter"
	"jobboard-backend/internal/llm"
	"jobboard-backend/internal/llm/gemini"
	"jobboard-backend/internal/quota"
	"jobboard-backend/internal/shared/config"
	"jobboard-backend/internal/shared/metrics"
	"jobboard-backend/internal/shared/server/middleware"
	"jobboard-backend/internal/shared/server/respond"
	"jobboard-backend/internal/shared/storage/db"
	"jobboard-backend/internal/shared/storage/object"
	localstore "jobboard-backend/internal/shared/storage/object/local"
	s3store "jobboard-backend/internal/shared/storage/object/s3"
	"jobboard-backend/internal/shared/telemetry"
	"jobboard-backend/internal/users"
)

// NewRouter constructs the Gin engine with middleware and routes registered.
// Missing infrastructure degrades instead of failing startup: no database
// means in-memory stores, no API key means the AI endpoints answer 503.
func NewRouter(cfg config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
		middleware.Auth(cfg.Env),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				middleware.RateLimitGroupAI: {Rate: 0.2, Burst: 3},
			},
			GroupFor: middleware.AIGroupFor,
		}),
	)

	ctx := context.Background()

	var sqlDB *sql.DB
	if cfg.DatabaseURL != "" {
		conn, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
		if err != nil {
			telemetry.Warn("db.connect_failed", map[string]any{"err": err.Error()})
		} else if err := db.RunMigrations(ctx, conn); err != nil {
			telemetry.Warn("db.migrate_failed", map[string]any{"err": err.Error()})
			conn.Close()
		} else {
			sqlDB = conn
		}
	}

	store := buildObjectStore(ctx, cfg)
	llmClient := buildLLM(ctx, cfg)

	var userRepo users.Repo
	var quotaSvc *quota.Service
	if sqlDB != nil {
		userRepo = &users.PGRepo{DB: sqlDB}
		quotaSvc = quota.NewPostgresService(quota.NewPGStore(sqlDB))
	} else {
		quotaStore := quota.NewMemoryStore()
		quotaSvc = quota.NewPostgresService(quotaStore)
		userRepo = provisioningRepo{Repo: users.NewMemoryRepo(), quota: quotaStore}
	}

	analyzerHandler := analyzer.NewHandler(&analyzer.Service{Quota: quotaSvc, LLM: llmClient})
	letterHandler := coverletter.NewHandler(&coverletter.Service{Quota: quotaSvc, LLM: llmClient})
	quotaHandler := quota.NewHandler(quotaSvc)
	userHandler := users.NewHandler(userRepo, store)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	api.GET("/metrics", metrics.Handler())
	analyzerHandler.RegisterRoutes(api)
	letterHandler.RegisterRoutes(api)
	quotaHandler.RegisterRoutes(api)
	userHandler.RegisterRoutes(api)
	if cfg.Env == "dev" || cfg.Env == "local" {
		dev := api.Group("/dev")
		quotaHandler.RegisterDevRoutes(dev)
	}

	return r
}

func buildObjectStore(ctx context.Context, cfg config.Config) object.ObjectStore {
	if cfg.ObjectStoreType == "s3" && cfg.S3Bucket != "" {
		store, err := s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix)
		if err == nil {
			return store
		}
		telemetry.Warn("storage.s3_init_failed", map[string]any{"err": err.Error()})
	}
	return localstore.New(cfg.LocalStoreDir)
}

func buildLLM(ctx context.Context, cfg config.Config) llm.Client {
	if cfg.GeminiAPIKey == "" {
		telemetry.Warn("llm.not_configured", map[string]any{"hint": "set GEMINI_API_KEY"})
		return llm.PlaceholderClient{}
	}
	client, err := gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		telemetry.Warn("llm.init_failed", map[string]any{"err": err.Error()})
		return llm.PlaceholderClient{}
	}
	return client
}

// provisioningRepo keeps the in-memory quota store in step with user
// creation, the way a users-table insert seeds the quota columns in Postgres.
type provisioningRepo struct {
	users.Repo
	quota *quota.MemoryStore
}

func (r provisioningRepo) Upsert(ctx context.Context, u users.User) error {
	if err := r.Repo.Upsert(ctx, u); err != nil {
		return err
	}
	r.quota.Provision(u.ID)
	return nil
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
