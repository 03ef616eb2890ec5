package router

import (
	"log"
	"net/http"

	"finlife/config"
	"finlife/controllers"
	dbpkg "finlife/db"
	"finlife/middleware"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Initialize wires all routes and middlewares.
// Public routes, routes with optional user and authenticated routes.
func Initialize(r *gin.Engine, cfg config.Configuration, database *gorm.DB) {
	controllers.SetConfigurations(cfg)

	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware(cfg.Security.AllowedOrigin))
	r.Use(middleware.Metrics())
	r.Use(dbpkg.SetDBtoContext(database))

	r.GET("/health", func(c *gin.Context) {
		if err := database.DB().Ping(); err != nil {
			controllers.RespondError(c, "db indisponível", http.StatusServiceUnavailable)
			return
		}
		c.String(http.StatusOK, "ok")
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")

	// Public (no auth)
	api.GET("/products/deposit", Logger(), controllers.ListDepositProducts)
	api.GET("/products/deposit/:code", Logger(), controllers.GetDepositProduct)
	api.GET("/products/spot", Logger(), controllers.ListSpotPrices)
	api.POST("/accounts/signup", Logger(), controllers.Signup)
	api.POST("/accounts/login", Logger(), controllers.Login)

	// Usuário opcional: só entra no log
	api.POST("/products/recommend", Logger(), controllers.OptionalAuth(), controllers.Recommend)

	// Authenticated routes (token required)
	auth := api.Group("")
	auth.Use(controllers.AuthRequired())
	auth.POST("/products/deposit/:code/join", Logger(), controllers.JoinDepositProduct)
	auth.DELETE("/products/deposit/:code/join", Logger(), controllers.UnjoinDepositProduct)
	auth.GET("/accounts/me", Logger(), controllers.Me)
	auth.PATCH("/accounts/me", Logger(), controllers.UpdateCurrentUser)

	log.Printf("Routes initialized")
}
