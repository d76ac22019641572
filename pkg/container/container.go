package container

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"

	"library-api/internal/config"
	infraCache "library-api/internal/infrastructure/cache"
	"library-api/internal/infrastructure/database"
	"library-api/internal/infrastructure/queue"
	"library-api/internal/infrastructure/storage"
	"library-api/internal/shared/authz"
	"library-api/internal/shared/middleware"
	"library-api/pkg/cache"
	"library-api/pkg/jwt"

	authorHandler "library-api/internal/domains/author/handler"
	authorRepo "library-api/internal/domains/author/repository"
	authorService "library-api/internal/domains/author/service"
	bookHandler "library-api/internal/domains/book/handler"
	bookRepo "library-api/internal/domains/book/repository"
	bookService "library-api/internal/domains/book/service"
)

// LocalUploadsRoute is where the local storage directory is served.
const LocalUploadsRoute = "/uploads"

// ========================================
// CONTAINER STRUCT
// ========================================

// Container is the root of the dependency graph. Every component is built
// once at startup and shared by all requests.
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================

	Config     *config.Config
	DB         *database.PostgresDB // nil when running on in-memory repositories
	Cache      cache.Cache
	JWTManager *jwt.Manager
	Policy     authz.Policy

	Storage      storage.FileStore
	LocalStorage *storage.LocalStorage // set only for the local driver
	Images       *storage.ImageProcessor

	AsynqClient *asynq.Client
	TaskQueue   *queue.TaskQueue

	Metrics *prometheus.Registry

	// ========================================
	// REPOSITORY LAYER
	// ========================================

	AuthorRepo authorRepo.RepositoryInterface
	BookRepo   bookRepo.RepositoryInterface

	// ========================================
	// SERVICE LAYER
	// ========================================

	AuthorService authorService.ServiceInterface
	BookService   bookService.ServiceInterface

	// ========================================
	// HANDLER LAYER
	// ========================================

	AuthorHandler *authorHandler.AuthorHandler
	BookHandler   *bookHandler.Handler
}

// NewContainer builds the production graph:
// config → database (+ migrations) → cache → storage → queue → domains.
func NewContainer() (*Container, error) {
	c := &Container{}

	// ========================================
	// STEP 1: LOAD CONFIG
	// ========================================
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg

	// ========================================
	// STEP 2: CONNECT DATABASE
	// ========================================
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	c.DB = database.NewPostgresDB(&cfg.Database)
	if err := c.DB.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}
	if err := c.DB.HealthCheck(ctx); err != nil {
		c.DB.Close()
		return nil, fmt.Errorf("database health check failed: %w", err)
	}

	if cfg.App.AutoMigrate {
		if err := c.DB.Migrate(ctx); err != nil {
			c.DB.Close()
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
	}
	log.Info().Str("host", cfg.Database.Host).Str("db", cfg.Database.DBName).Msg("Database ready")

	// ========================================
	// STEP 3: CACHE
	// ========================================
	// Redis is optional: on failure the app runs uncached.
	redisCache := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisCache.Connect(ctx); err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, running without cache")
		_ = redisCache.Close()
		c.Cache = cache.Noop{}
	} else {
		c.Cache = redisCache
	}

	// ========================================
	// STEP 4: STORAGE + QUEUE
	// ========================================
	c.Storage, c.LocalStorage, err = NewFileStore(ctx, cfg)
	if err != nil {
		c.Cleanup()
		return nil, err
	}

	c.AsynqClient = queue.NewClient(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	c.TaskQueue = queue.NewTaskQueue(c.AsynqClient)

	// ========================================
	// STEP 5: REPOSITORIES → SERVICES → HANDLERS
	// ========================================
	c.AuthorRepo = authorRepo.NewPostgresRepository(c.DB.Pool, c.Cache)
	c.BookRepo = bookRepo.NewPostgresRepository(c.DB.Pool)

	c.initShared()
	c.initServices()
	c.initHandlers()

	log.Info().Str("storage", cfg.Storage.Driver).Msg("Container initialized")
	return c, nil
}

// NewInMemory builds the graph on in-memory repositories and local storage
// rooted at storageDir. No database, Redis or queue is required.
func NewInMemory(cfg *config.Config, storageDir string) (*Container, error) {
	local, err := storage.NewLocalStorage(storageDir, LocalUploadsRoute)
	if err != nil {
		return nil, err
	}

	authors := authorRepo.NewMemoryRepository()
	c := &Container{
		Config:       cfg,
		Cache:        cache.Noop{},
		Storage:      local,
		LocalStorage: local,
		AuthorRepo:   authors,
		BookRepo:     bookRepo.NewMemoryRepository(authors),
	}

	c.initShared()
	c.initServices()
	c.initHandlers()
	return c, nil
}

// NewFileStore builds the configured object store. The local store is also
// returned so the API can serve it.
func NewFileStore(ctx context.Context, cfg *config.Config) (storage.FileStore, *storage.LocalStorage, error) {
	switch cfg.Storage.Driver {
	case "minio":
		s, err := storage.NewMinIOStorage(ctx, cfg.MinIO)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to init minio storage: %w", err)
		}
		return s, nil, nil
	default:
		s, err := storage.NewLocalStorage(cfg.Storage.LocalDir, LocalUploadsRoute)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to init local storage: %w", err)
		}
		return s, s, nil
	}
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

func (c *Container) initShared() {
	c.JWTManager = jwt.NewManager(c.Config.JWT.Secret, c.Config.JWT.Expiry)
	c.Policy = authz.NewPolicy(c.Config.Auth.AdminEmail)
	c.Images = storage.NewImageProcessor(c.Config.Storage.MaxUploadBytes)

	c.Metrics = prometheus.NewRegistry()
	c.Metrics.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	middleware.RegisterMetrics(c.Metrics)
}

func (c *Container) initServices() {
	// Left as a nil interface when no queue is configured.
	var jobs authorService.ImageJobs
	if c.TaskQueue != nil {
		jobs = c.TaskQueue
	}

	c.AuthorService = authorService.NewAuthorService(
		c.AuthorRepo,
		c.JWTManager,
		c.Storage,
		c.Images,
		jobs,
		authorService.WithAdminEmail(c.Config.Auth.AdminEmail),
	)

	c.BookService = bookService.NewBookService(
		c.BookRepo,
		c.AuthorRepo, // author existence check
	)
}

func (c *Container) initHandlers() {
	c.AuthorHandler = authorHandler.NewAuthorHandler(c.AuthorService, c.Config.Storage.MaxUploadBytes)
	c.BookHandler = bookHandler.NewHandler(c.BookService)
}

// Cleanup releases connections. Called on graceful shutdown.
func (c *Container) Cleanup() {
	if c.AsynqClient != nil {
		if err := c.AsynqClient.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close asynq client")
		}
	}

	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close Redis")
		}
	}

	if c.DB != nil {
		c.DB.Close()
	}

	log.Info().Msg("Container cleanup completed")
}
