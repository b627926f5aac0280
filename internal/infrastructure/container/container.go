package container

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/penpalhq/penpals-backend/internal/config"
	"github.com/penpalhq/penpals-backend/internal/delivery/http"
	"github.com/penpalhq/penpals-backend/internal/delivery/http/handler"
	"github.com/penpalhq/penpals-backend/internal/delivery/http/middleware"
	"github.com/penpalhq/penpals-backend/internal/infrastructure/database"
	"github.com/penpalhq/penpals-backend/internal/infrastructure/embedding"
	"github.com/penpalhq/penpals-backend/internal/infrastructure/server"
	"github.com/penpalhq/penpals-backend/internal/infrastructure/vectorindex"
	"github.com/penpalhq/penpals-backend/internal/repository/postgres"
	redisrepo "github.com/penpalhq/penpals-backend/internal/repository/redis"
	"github.com/penpalhq/penpals-backend/internal/usecase/account"
	"github.com/penpalhq/penpals-backend/internal/usecase/matching"
	"github.com/penpalhq/penpals-backend/internal/usecase/post"
	"github.com/penpalhq/penpals-backend/internal/usecase/profile"
	"github.com/penpalhq/penpals-backend/internal/usecase/relation"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config   *config.Config
	Log      *zap.Logger
	DB       *sqlx.DB
	Redis    *redis.Client
	Embedder *embedding.GeminiEmbedder
	Index    *vectorindex.Index
	Server   *server.Server
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config, log *zap.Logger) (*Container, error) {
	// Initialize database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Initialize Redis
	redisClient, err := database.NewRedisClient(&cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize redis: %w", err)
	}

	// Initialize embedder and vector index
	embedder, err := embedding.NewGeminiEmbedder(context.Background(), &cfg.Gemini)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize embedder: %w", err)
	}

	index, err := vectorindex.New(db, embedder, &cfg.VectorIndex, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize vector index: %w", err)
	}

	// Initialize repositories
	accountRepo := postgres.NewAccountRepository(db)
	profileRepo := postgres.NewProfileRepository(db)
	relationRepo := postgres.NewRelationRepository(db)
	postRepo := postgres.NewPostRepository(db)
	denylist := redisrepo.NewTokenDenylist(redisClient)

	// Initialize use cases
	orchestrator := matching.NewOrchestrator(index, profileRepo, log)

	accountUseCase := account.NewAccountUseCase(
		accountRepo,
		profileRepo,
		relationRepo,
		denylist,
		orchestrator,
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		log,
	)

	profileUseCase := profile.NewProfileUseCase(
		profileRepo,
		relationRepo,
		orchestrator,
		log,
	)

	relationUseCase := relation.NewRelationUseCase(
		relationRepo,
		profileRepo,
		log,
	)

	postUseCase := post.NewPostUseCase(postRepo, profileRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(accountUseCase)
	accountHandler := handler.NewAccountHandler(accountUseCase)
	profileHandler := handler.NewProfileHandler(profileUseCase, relationUseCase)
	relationHandler := handler.NewRelationHandler(relationUseCase)
	postHandler := handler.NewPostHandler(postUseCase)
	documentHandler := handler.NewDocumentHandler(index)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(accountUseCase)

	// Initialize router
	router := http.NewRouter(
		authHandler,
		accountHandler,
		profileHandler,
		relationHandler,
		postHandler,
		documentHandler,
		authMiddleware,
	)

	// Setup routes
	ginRouter := router.Setup()

	// Initialize server
	srv := server.NewServer(&cfg.Server, ginRouter, log)

	return &Container{
		Config:   cfg,
		Log:      log,
		DB:       db,
		Redis:    redisClient,
		Embedder: embedder,
		Index:    index,
		Server:   srv,
	}, nil
}

// Close closes all connections
func (c *Container) Close() error {
	if c.Embedder != nil {
		if err := c.Embedder.Close(); err != nil {
			c.Log.Warn("failed to close embedder", zap.Error(err))
		}
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.Log.Warn("failed to close redis", zap.Error(err))
		}
	}

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	return nil
}
