package routes

import (
	"aquacare-backend/config"
	"aquacare-backend/controllers"
	"aquacare-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter(mc *controllers.MessageController, cc *controllers.CronController) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	// External scheduler trigger for the daily messaging run
	r.POST("/cron/run", cc.Run)

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// Customer routes
		customers := api.Group("/customers")
		{
			customers.POST("", controllers.CreateCustomer)
			customers.GET("", controllers.GetCustomers)
			customers.GET("/:id", controllers.GetCustomer)
			customers.PUT("/:id", controllers.UpdateCustomer)
			customers.DELETE("/:id", controllers.DeleteCustomer)
		}

		// Message template routes
		templates := api.Group("/templates")
		{
			templates.POST("", controllers.CreateTemplate)
			templates.GET("", controllers.GetTemplates)
			templates.GET("/:id", controllers.GetTemplate)
			templates.PUT("/:id", controllers.UpdateTemplate)
			templates.DELETE("/:id", controllers.DeleteTemplate)
		}

		// Message center routes
		messages := api.Group("/messages")
		{
			messages.GET("", mc.GetScheduledMessages)
			messages.POST("", mc.CreateScheduledMessage)
			messages.PUT("/:id", mc.UpdateScheduledMessage)
			messages.DELETE("/:id", mc.DeleteScheduledMessage)
			messages.POST("/send", mc.SendMessage)
			messages.POST("/compose", mc.Compose)
		}

		// Filter management routes
		filters := api.Group("/filters")
		{
			filters.POST("", controllers.CreateFilterChange)
			filters.GET("", controllers.GetFilterChanges)
			filters.GET("/pending", controllers.GetPendingFilters)
			filters.DELETE("/:id", controllers.DeleteFilterChange)
		}

		// Service review routes
		reviews := api.Group("/reviews")
		{
			reviews.POST("", controllers.CreateReview)
			reviews.GET("", controllers.GetReviews)
			reviews.PUT("/:id", controllers.UpdateReview)
			reviews.DELETE("/:id", controllers.DeleteReview)
		}

		// Notification settings routes
		settings := api.Group("/settings")
		{
			settings.GET("", controllers.GetSettings)
			settings.PUT("", controllers.UpsertSetting)
		}

		// Dashboard routes
		api.GET("/dashboard", controllers.GetDashboardOverview)
	}

	return r
}
