package http

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	conversionUC "sharayeh/internal/application/conversion/usecases"
	entitlementUC "sharayeh/internal/application/entitlement/usecases"
	"sharayeh/internal/domain/entitlement"
	"sharayeh/internal/infrastructure/artifactstore"
	"sharayeh/internal/infrastructure/auth"
	"sharayeh/internal/infrastructure/cache"
	"sharayeh/internal/infrastructure/config"
	"sharayeh/internal/infrastructure/repository"
	"sharayeh/internal/infrastructure/slides"
	"sharayeh/internal/interfaces/http/handlers"
	"sharayeh/internal/interfaces/http/middleware"
	"sharayeh/internal/shared/constants"
	"sharayeh/internal/shared/logger"
)

// Router wires the HTTP surface: repositories, use cases, handlers, and
// middleware, in that order.
type Router struct {
	engine             *gin.Engine
	entitlementHandler *handlers.EntitlementHandler
	conversionHandler  *handlers.ConversionHandler
	planHandler        *handlers.PlanHandler
	authMiddleware     *middleware.AuthMiddleware
}

// NewRouter builds the fully wired router.
func NewRouter(
	db *gorm.DB,
	redisClient *redis.Client,
	catalog *entitlement.Catalog,
	cfg *config.Config,
	log logger.Interface,
) *Router {
	if cfg.Server.Mode == constants.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	// Repositories
	creditsRepo := repository.NewUserCreditsRepository(db, log)
	subsRepo := repository.NewSubscriptionRepository(db, log)
	legacyRepo := repository.NewLegacySubscriptionRepository(db, log)

	// Caching; nil disables it and use cases degrade to direct reads.
	var entitlementCache cache.EntitlementCache
	if redisClient != nil {
		entitlementCache = cache.NewRedisEntitlementCache(redisClient, log)
	}

	// Domain services
	resolver := entitlement.NewResolver(creditsRepo, subsRepo, legacyRepo, catalog, cfg.Credits.InitialGrant, log)

	// Remote services
	slideService := slides.NewClient(&cfg.Slides, log)
	store := artifactstore.NewSupabaseStore(&cfg.Storage, log)

	// Use cases
	resolveUC := entitlementUC.NewResolveEntitlementUseCase(resolver, entitlementCache, log)
	consumeUC := entitlementUC.NewConsumeCreditsUseCase(creditsRepo, entitlementCache, cfg.Credits.InitialGrant, log)
	listPlansUC := entitlementUC.NewListPlansUseCase(catalog)
	applyMorphUC := conversionUC.NewApplyMorphTransitionUseCase(slideService, store, &cfg.Conversion, &cfg.Slides.Transition, log)

	// Handlers
	entitlementHandler := handlers.NewEntitlementHandler(resolveUC, consumeUC, log)
	conversionHandler := handlers.NewConversionHandler(applyMorphUC, log)
	planHandler := handlers.NewPlanHandler(listPlansUC)

	verifier := auth.NewJWTVerifier(cfg.Auth.JWT.Secret, cfg.Auth.JWT.Issuer)
	authMiddleware := middleware.NewAuthMiddleware(verifier, log)

	r := &Router{
		engine:             gin.New(),
		entitlementHandler: entitlementHandler,
		conversionHandler:  conversionHandler,
		planHandler:        planHandler,
		authMiddleware:     authMiddleware,
	}
	r.setupMiddleware(log)
	r.setupRoutes()
	return r
}

func (r *Router) setupMiddleware(log logger.Interface) {
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.Logger(log))
	r.engine.Use(middleware.Locale())
}

func (r *Router) setupRoutes() {
	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.engine.Group("/api")
	{
		api.GET("/plans", r.planHandler.ListPlans)

		user := api.Group("/user")
		user.Use(r.authMiddleware.RequireAuth())
		{
			user.GET("/entitlement", r.entitlementHandler.GetEntitlement)
			user.POST("/credits/consume", r.entitlementHandler.ConsumeCredits)
		}

		conversions := api.Group("/conversions")
		conversions.Use(r.authMiddleware.RequireAuth())
		{
			conversions.POST("/morph", r.conversionHandler.ApplyMorph)
		}
	}
}

// Engine exposes the underlying gin engine for the HTTP server.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
