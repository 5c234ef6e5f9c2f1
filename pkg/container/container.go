package container

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"rewear-backend/internal/config"
	itemHandler "rewear-backend/internal/domains/item/handler"
	itemRepo "rewear-backend/internal/domains/item/repository"
	itemService "rewear-backend/internal/domains/item/service"
	infraCache "rewear-backend/internal/infrastructure/cache"
	"rewear-backend/internal/infrastructure/database"
	"rewear-backend/internal/infrastructure/storage"
	"rewear-backend/pkg/cache"
	"rewear-backend/pkg/jwt"
)

// Container is the root of the dependency graph. Everything in it is a
// singleton for the application lifetime.
type Container struct {
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      cache.Cache
	Storage    *storage.MinIOStorage
	JWTManager *jwt.Manager

	AsynqClient *asynq.Client

	ItemRepo    itemRepo.ItemRepository
	UploadSvc   itemService.UploadOrchestrator
	ItemService itemService.ItemService
	ItemHandler *itemHandler.ItemHandler

	redisCache *infraCache.RedisCache
}

// NewContainer initializes the whole dependency graph in order:
// config, infrastructure, repositories, services, handlers.
func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Info().Str("environment", cfg.App.Environment).Msg("Config loaded")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	c.DB = db
	log.Info().Msg("PostgreSQL connected")

	c.redisCache = infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := c.redisCache.Ping(ctx); err != nil {
		c.Cleanup()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	c.Cache = c.redisCache
	log.Info().Msg("Redis connected")

	minioStorage, err := storage.NewMinIOStorage(cfg.MinIO)
	if err != nil {
		c.Cleanup()
		return nil, fmt.Errorf("failed to init minio storage: %w", err)
	}
	c.Storage = minioStorage
	log.Info().Str("bucket", cfg.MinIO.Bucket).Msg("MinIO ready")

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret)

	c.AsynqClient = asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.Redis.Host,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	processor := storage.NewImageProcessor(cfg.Upload.MaxImageBytes)

	c.ItemRepo = itemRepo.NewPostgresRepository(db.Pool)
	c.UploadSvc = itemService.NewUploadService(
		minioStorage,
		processor,
		cfg.Upload.Folder,
		time.Duration(cfg.Upload.TimeoutSeconds)*time.Second,
	)
	c.ItemService = itemService.NewItemService(c.ItemRepo, c.UploadSvc, c.Cache, c.AsynqClient)
	c.ItemHandler = itemHandler.NewItemHandler(c.ItemService)

	return c, nil
}

// Cleanup releases held connections. Safe on a partially built
// container.
func (c *Container) Cleanup() {
	if c.AsynqClient != nil {
		if err := c.AsynqClient.Close(); err != nil {
			log.Error().Err(err).Msg("asynq client close failed")
		}
	}
	if c.redisCache != nil {
		if err := c.redisCache.Close(); err != nil {
			log.Error().Err(err).Msg("redis close failed")
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
}
