package router

import (
	"context"
	"net/http"
	"time"

	"profhub/internal/config"
	"profhub/internal/middleware"
	"profhub/internal/modules/auth"
	"profhub/internal/modules/category"
	"profhub/internal/modules/professional"
	"profhub/internal/modules/review"
	jwtsvc "profhub/internal/pkg/jwt"
	"profhub/internal/pkg/response"
	"profhub/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// New builds the HTTP engine with every module mounted under /api/v1.
func New(cfg *config.Config, db *gorm.DB, log zerolog.Logger) *gin.Engine {
	if cfg.IsProd() {
		gin.SetMode(gin.ReleaseMode)
	}

	userRepo := repository.NewUserRepository(db)
	professionalRepo := repository.NewProfessionalRepository(db, log)
	categoryRepo := repository.NewCategoryRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	authHandler := auth.NewHandler(
		auth.NewService(userRepo, j),
		auth.CookieConfig{Name: cfg.CookieName, Secure: cfg.CookieSecure},
	)
	professionalHandler := professional.NewHandler(professional.NewService(professionalRepo))
	categoryHandler := category.NewHandler(category.NewService(categoryRepo))
	reviewHandler := review.NewHandler(review.NewService(reviewRepo, professionalRepo))
	owner := middleware.NewOwnershipChecker(professionalRepo)

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.RequestLogger(log),
		middleware.ErrorLogger(log),
		middleware.CORS(cfg.CORSAllowedOrigins),
	)

	r.GET("/health", healthHandler(db))

	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterPublicRoutes(v1)

		protected := v1.Group("")
		protected.Use(middleware.JWTAuth(j, cfg.CookieName))

		authHandler.RegisterProtectedRoutes(protected)
		professionalHandler.RegisterRoutes(v1, protected, owner.CheckProfessionalOwnership())
		categoryHandler.RegisterRoutes(v1, protected)
		reviewHandler.RegisterRoutes(v1, protected)
	}

	return r
}

func healthHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			_ = c.Error(err)
			response.Error(c, http.StatusServiceUnavailable, response.CodeServiceUnhealthy, "Database unavailable")
			return
		}

		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	}
}
