package http

import (
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"inkwell/internal/application/resources"
	"inkwell/internal/infrastructure/auth"
	"inkwell/internal/infrastructure/cache"
	"inkwell/internal/infrastructure/config"
	"inkwell/internal/infrastructure/email"
	"inkwell/internal/infrastructure/repository"
	"inkwell/internal/interfaces/http/handlers"
	"inkwell/internal/interfaces/http/middleware"
	"inkwell/internal/resource"
	"inkwell/internal/resource/jsonapi"
	"inkwell/internal/resource/validation"
	"inkwell/internal/shared/authorization"
	"inkwell/internal/shared/logger"
	"inkwell/internal/shared/services/markdown"
)

// Router wires the dispatch surface. A single pair of generic handlers
// serves every registered resource type; only authentication has dedicated
// routes.
type Router struct {
	engine          *gin.Engine
	cfg             *config.Config
	resourceHandler *handlers.ResourceHandler
	authHandler     *handlers.AuthHandler
	authMiddleware  *middleware.AuthMiddleware
	rateLimiter     *middleware.RateLimiter
	logger          logger.Interface
}

func NewRouter(db *gorm.DB, redisClient *redis.Client, cfg *config.Config, log logger.Interface) (*Router, error) {
	engine := gin.New()

	gate, err := authorization.NewGate(log)
	if err != nil {
		return nil, err
	}

	responseCache := cache.NewResponseCache(
		redisClient,
		time.Duration(cfg.Cache.TTLSeconds)*time.Second,
		cfg.Cache.Enabled,
		log,
	)

	renderer := markdown.NewRenderer()
	mailer := email.NewMailer(&cfg.Email, log)
	hasher := auth.NewPasswordHasher(cfg.Auth.Password.BcryptCost)
	jwtService := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes, cfg.Auth.JWT.RefreshExpDays)

	postRepo := repository.NewPostRepository(db)
	pageRepo := repository.NewPageRepository(db)
	webPageRepo := repository.NewWebPageRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	tagRepo := repository.NewTagRepository(db)
	contactRepo := repository.NewContactRepository(db)
	userRepo := repository.NewUserRepository(db)

	registry := resource.NewRegistry()
	registry.Register(resources.NewPostsCapability(postRepo, renderer, responseCache, log))
	registry.Register(resources.NewPagesCapability(pageRepo, renderer, responseCache, log))
	registry.Register(resources.NewWebPagesCapability(webPageRepo, responseCache, log))
	registry.Register(resources.NewCategoriesCapability(categoryRepo, responseCache, log))
	registry.Register(resources.NewTagsCapability(tagRepo, responseCache, log))
	registry.Register(resources.NewContactsCapability(contactRepo, mailer, log))
	registry.Register(resources.NewUsersCapability(userRepo, hasher, log))

	validationEngine := validation.NewEngine(repository.NewUniquenessChecker(db))

	return &Router{
		engine:          engine,
		cfg:             cfg,
		resourceHandler: handlers.NewResourceHandler(registry, gate, validationEngine, log),
		authHandler:     handlers.NewAuthHandler(userRepo, hasher, jwtService, log),
		authMiddleware:  middleware.NewAuthMiddleware(jwtService, log),
		rateLimiter:     middleware.NewRateLimiter(redisClient, 60, time.Minute),
		logger:          log,
	}, nil
}

// SetupRoutes registers middleware and the versioned surface.
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.Logger(r.logger))
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.CORS(r.cfg.Server.AllowedOrigins))
	r.engine.Use(middleware.SecurityHeaders())

	r.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.engine.NoRoute(func(c *gin.Context) {
		jsonapi.NotFound(c)
	})

	v1 := r.engine.Group("/v1")
	v1.Use(r.authMiddleware.Identify())
	{
		v1.POST("/auth/login", r.rateLimiter.Limit(), r.authHandler.Login)
		v1.POST("/auth/refresh", r.rateLimiter.Limit(), r.authHandler.Refresh)

		v1.GET("/:resource", r.resourceHandler.Index)
		v1.POST("/:resource", r.rateLimiter.Limit(), r.resourceHandler.Store)
		v1.GET("/:resource/*identifier", r.resourceHandler.Show)
		v1.PUT("/:resource/*identifier", r.resourceHandler.Update)
		v1.PATCH("/:resource/*identifier", r.resourceHandler.Update)
		v1.DELETE("/:resource/*identifier", r.resourceHandler.Delete)
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
