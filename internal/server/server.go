package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/platewise/backend/config"
	"github.com/platewise/backend/internal/api"
	"github.com/platewise/backend/internal/middleware"
	"github.com/platewise/backend/internal/router"
	"github.com/platewise/backend/internal/service"
)

// Server wires the services together and owns the HTTP lifecycle.
type Server struct {
	engine *gin.Engine
	http   *http.Server
	cfg    *config.Config
}

// New builds the full service graph. Redis and S3 are optional: without
// Redis the AI routes run unthrottled, without S3 image upload answers 503.
func New(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, s3Config *config.S3Config) *Server {
	authService := service.NewAuthService(db, cfg.JWTSecret)
	recipeService := service.NewRecipeService(db)
	mealPlanService := service.NewMealPlanService(db)
	profileService := service.NewProfileService(db)

	var imageService *service.ImageService
	if s3Config != nil {
		imageService = service.NewImageService(s3Config)
	}

	var drafter api.RecipeDrafter
	var generator service.RecipeGenerator
	if llmService, err := service.NewLLMService(); err != nil {
		log.Printf("LLM service disabled: %v", err)
	} else {
		drafter = llmService
		generator = llmService
	}
	plannerService := service.NewPlannerService(recipeService, mealPlanService, generator)

	var rateLimiter *middleware.RateLimiter
	if redisClient != nil {
		rateLimiter = middleware.NewRateLimiter(redisClient, middleware.RateLimitConfig{
			Window:    time.Minute,
			Limit:     10,
			KeyPrefix: "ratelimit:ai",
		})
	}

	engine := router.SetupRouter(db, router.Handlers{
		Auth:     api.NewAuthHandler(authService),
		Recipe:   api.NewRecipeHandler(recipeService, imageService, authService),
		MealPlan: api.NewMealPlanHandler(mealPlanService, authService),
		Profile:  api.NewProfileHandler(profileService, authService),
		AI:       api.NewAIHandler(drafter, plannerService, profileService, authService, rateLimiter),
	})

	return &Server{engine: engine, cfg: cfg}
}

// Start blocks serving HTTP until Shutdown is called.
func (s *Server) Start() error {
	s.http = &http.Server{
		Addr:    s.cfg.ServerHost + ":" + s.cfg.ServerPort,
		Handler: s.engine,
	}

	log.Printf("Listening on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.http.Shutdown(ctx)
}
