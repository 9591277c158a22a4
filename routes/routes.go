package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"streamdesk-backend/config"
	"streamdesk-backend/controllers"
)

func SetupRouter(cfg config.ServerConfig, h *controllers.Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	corsConfig := cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}
	if len(cfg.AllowedOrigins) == 0 {
		corsConfig.AllowOrigins = nil
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowCredentials = false
	}
	r.Use(cors.New(corsConfig))

	r.Use(config.PerformanceLogger())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		// Service routes
		services := api.Group("/services")
		{
			services.GET("", h.GetServices)
			services.POST("", h.CreateService)
			services.DELETE("/:id", h.DeleteService)
		}

		// Account routes
		accounts := api.Group("/accounts")
		{
			accounts.GET("", h.GetAccounts)
			accounts.POST("", h.CreateAccount)
			accounts.GET("/:id", h.GetAccount)
			accounts.PUT("/:id", h.UpdateAccount)
			accounts.DELETE("/:id", h.DeleteAccount) // requires ?confirm=true

			accounts.POST("/:id/profiles", h.AddProfile)
			accounts.PUT("/:id/profiles/:profileId", h.UpdateProfile)
			accounts.DELETE("/:id/profiles/:profileId", h.DeleteProfile)
		}

		// Customer routes
		customers := api.Group("/customers")
		{
			customers.POST("", h.CreateCustomer)
			customers.GET("", h.GetCustomers)
			customers.GET("/:id", h.GetCustomer)
			customers.PUT("/:id", h.UpdateCustomer)
			customers.DELETE("/:id", h.DeleteCustomer)
		}

		api.GET("/dashboard", h.GetDashboardOverview)
		api.GET("/reports", h.GetReportAnalytics)

		// Settings and notifications
		api.GET("/settings/notifications", h.GetNotificationSettings)
		api.PUT("/settings/notifications", h.UpdateNotificationSettings)

		notifications := api.Group("/notifications")
		{
			notifications.GET("/expiring", h.GetExpiringAccounts)
			notifications.POST("/test/:accountId", h.SendTestNotification)
			notifications.GET("/log", h.GetNotificationLog)
		}
	}

	return r
}
