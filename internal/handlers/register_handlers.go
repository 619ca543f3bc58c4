package handlers

import (
	"log/slog"

	"github.com/SscSPs/bullion_books_app/cmd/docs"
	"github.com/SscSPs/bullion_books_app/internal/core/domain"
	portssvc "github.com/SscSPs/bullion_books_app/internal/core/ports/services"
	"github.com/SscSPs/bullion_books_app/internal/middleware"
	"github.com/SscSPs/bullion_books_app/internal/platform/config"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	ginprometheus "github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	registerValidations()

	r.Use(cors.Default())
	r.Use(middleware.Metrics())

	// Add health check route
	r.GET("/health", GetHome)

	// Prometheus scrape endpoint
	r.GET("/metrics", gin.WrapH(ginprometheus.Handler()))

	// Register public authentication routes, rate limited per client IP
	registerAuthRoutes(r, services.Auth, loginRateLimiter(cfg))

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	setupAPIV1Routes(r, cfg, services)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// registerValidations installs custom binding validators on gin's validator
// engine. Safe to call more than once; registration is idempotent.
func registerValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("denomination", func(fl validator.FieldLevel) bool {
			return domain.Denomination(fl.Field().String()).IsValid()
		})
	}
}

// loginRateLimiter builds the per-IP limiter guarding the login route.
func loginRateLimiter(cfg *config.Config) gin.HandlerFunc {
	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		slog.Warn("Invalid RATE_LIMIT value, falling back to 100-M", slog.String("value", cfg.RateLimit))
		rate, _ = limiter.NewRateFromFormatted("100-M")
	}
	return middleware.RateLimit(limiter.New(memory.NewStore(), rate))
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Apply AuthMiddleware to the entire v1 group
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerCustomerRoutes(v1, services.Customer, services.Transaction, services.RateCut)
	RegisterTransactionRoutes(v1, services.Transaction)
	registerStockRoutes(v1, services.Stock)
	registerInventoryRoutes(v1, services.Inventory)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	// Swagger setup
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
