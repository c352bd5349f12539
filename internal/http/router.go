package api

import (
	"log"
	stdhttp "net/http"
	"time"

	intconfig "subite-backend/internal/config"
	"subite-backend/internal/domain"
	h "subite-backend/internal/http/handlers"
	"subite-backend/internal/http/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	h.ConfigureAuth(env.JWTSecret, env.JWTExpiry)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), corsFrom(env), middleware.Metrics())

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error": gin.H{"code": "NOT_FOUND", "message": "Route not found"},
		})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authn := middleware.Authenticate(env.JWTSecret)
	managerOnly := middleware.RequireRoles(domain.RoleManager)
	needsCompany := middleware.RequireCompany()

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)

		auth := api.Group("/auth")
		auth.POST("/login", h.Login)
		auth.POST("/register", h.Register)
		auth.GET("/me", authn, h.CurrentUser)

		users := api.Group("/users", authn)
		users.GET("/me", h.CurrentUser)
		users.GET("", h.GetUsers)
		users.POST("", managerOnly, needsCompany, h.CreateUser)
		users.PUT("/:id", h.UpdateUser)

		companies := api.Group("/companies", authn)
		companies.POST("", managerOnly, h.CreateCompany)
		companies.GET("/:id", h.GetCompany)
		companies.PUT("/:id", managerOnly, h.UpdateCompany)
		companies.GET("/:id/vehicles", h.GetCompanyVehicles)

		vehicles := api.Group("/vehicles", authn)
		vehicles.GET("/:id", h.GetVehicle)
		vehicles.POST("", managerOnly, needsCompany, h.CreateVehicle)
		vehicles.PUT("/:id", managerOnly, needsCompany, h.UpdateVehicle)
		vehicles.DELETE("/:id", managerOnly, needsCompany, h.DeleteVehicle)

		routes := api.Group("/daily-routes", authn)
		routes.GET("", h.GetDailyRoutes)
		routes.GET("/:id", h.GetDailyRoute)
		routes.GET("/:id/manifest", h.GetRouteManifest)
		routes.POST("", managerOnly, needsCompany, h.CreateDailyRoute)
		routes.PUT("/:id", middleware.RequireRoles(domain.RoleManager, domain.RoleDriver), h.UpdateDailyRoute)
	}

	return r
}

func corsFrom(env intconfig.Env) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(env.CORSOrigins) > 0 {
		cfg.AllowOrigins = env.CORSOrigins
	} else {
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
	}
	return cors.New(cfg)
}
