package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/LovationAdmin/wealth-sync/config"
	"github.com/LovationAdmin/wealth-sync/handlers"
	"github.com/LovationAdmin/wealth-sync/middleware"
	"github.com/LovationAdmin/wealth-sync/routes"
	"github.com/LovationAdmin/wealth-sync/services"
	"github.com/LovationAdmin/wealth-sync/utils"
)

const version = "1.0.0"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()
	utils.LogLevel = utils.ParseLogLevel(cfg.LogLevel)
	utils.IsProduction = utils.IsProduction || cfg.Environment == "production"
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	var backend *services.Backend
	if cfg.DatabaseURL != "" {
		db, err := config.InitDB(cfg.DatabaseURL)
		if err != nil {
			log.Fatal("Failed to connect to database:", err)
		}
		defer db.Close()
		log.Println("✅ Database connected successfully")

		if err := config.RunMigrations(db); err != nil {
			log.Fatal("Failed to run migrations:", err)
		}
		backend = services.NewPostgresBackend(db)
	} else {
		log.Println("⚠️ DATABASE_URL not set, records are kept in memory")
		backend = services.NewMemoryBackend()
	}

	wsHandler := handlers.NewWSHandler()
	defer wsHandler.Close()

	limiter := middleware.NewRateLimiter(cfg.RateLimit, time.Minute)
	stop := make(chan struct{})
	defer close(stop)
	go limiter.Run(stop)

	origins := cfg.AllowedOrigins()
	log.Printf("🌍 CORS: Allowing origins:")
	for _, origin := range origins {
		log.Printf("   - %s", origin)
	}

	router := routes.NewRouter(routes.Options{
		JWTSecret:      []byte(cfg.JWTSecret),
		TokenTTL:       cfg.TokenTTL,
		AllowedOrigins: origins,
		Limiter:        limiter,
	}, backend, wsHandler)

	utils.LogStartup("wealth-sync API", version, cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
