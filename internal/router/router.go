package router

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/platewise/backend/internal/api"
	"github.com/platewise/backend/internal/database"
)

// Handlers bundles everything the route table mounts.
type Handlers struct {
	Auth     *api.AuthHandler
	Recipe   *api.RecipeHandler
	MealPlan *api.MealPlanHandler
	Profile  *api.ProfileHandler
	AI       *api.AIHandler
}

// SetupRouter configures the application routes.
func SetupRouter(db *gorm.DB, h Handlers) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(corsConfig()))

	router.GET("/health", func(c *gin.Context) {
		if err := database.HealthCheck(c.Request.Context(), db); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	{
		h.Auth.RegisterRoutes(v1)
		h.Recipe.RegisterRoutes(v1)
		h.MealPlan.RegisterRoutes(v1)
		h.Profile.RegisterRoutes(v1)
		h.AI.RegisterRoutes(v1)
	}

	return router
}

func corsConfig() cors.Config {
	origins := []string{"http://localhost:5173", "http://localhost:3000"}
	if env := os.Getenv("CORS_ALLOWED_ORIGINS"); env != "" {
		origins = strings.Split(env, ",")
	}

	return cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "Accept", "Origin"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}
}
