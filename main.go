package main

import (
	"fmt"

	"aquacare-backend/config"
	"aquacare-backend/controllers"
	"aquacare-backend/models"
	"aquacare-backend/routes"
	"aquacare-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		config.Logger.Info().Msg("No .env file found")
	}
	if _, err := config.Load(); err != nil {
		config.Logger.Fatal().Err(err).Msg("Failed to load configuration")
	}
	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.MessageTemplate{},
		&models.ScheduledMessage{},
		&models.FilterChange{},
		&models.ServiceReview{},
		&models.NotificationSetting{},
	)
}

func main() {
	cfg := config.App
	loc := cfg.Location()

	messenger := services.NewMessenger(cfg.Messaging, config.Logger)
	store := services.NewGormStore(config.DB)
	orchestrator := services.NewOrchestrator(store, messenger, loc, config.Logger)

	if cfg.Redis.DedupEnabled {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		orchestrator = orchestrator.WithDedup(services.NewRedisDedup(client))
	}

	if _, err := services.StartScheduler(orchestrator, cfg.CronSpec, loc, config.Logger); err != nil {
		config.Logger.Fatal().Err(err).Msg("Failed to start scheduler")
	}

	mc := &controllers.MessageController{Messenger: messenger}
	cc := &controllers.CronController{Orchestrator: orchestrator}

	r := routes.SetupRouter(mc, cc)
	printRoutes(r)
	r.Run(":" + cfg.Port)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
