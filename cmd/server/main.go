package main

import (
	"context"
	"log"

	"ecocampus/internal/api"        // HTTP handlers
	"ecocampus/internal/config"     // Configuration
	"ecocampus/internal/db"         // Database setup
	"ecocampus/internal/middleware" // JWT middleware
	"ecocampus/internal/remote"     // Catalogue fetch client
	"ecocampus/internal/service"    // Transaction service
	"ecocampus/internal/session"    // Durable session
	"ecocampus/internal/store"      // Persistent store

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Open the local database file
	gdb, err := db.Open(cfg.DBPath)
	if err != nil {
		logrus.Fatalf("failed to open database: %v", err)
	}

	// Setup Redis client (durable session storage + read cache)
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})
	if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	// Wire the core: store, session, catalogue client, transaction service
	st := store.New(gdb)
	sessions := session.NewManager(session.NewRedisKV(redisClient))
	catalog := remote.NewClient(cfg.MenuURL, cfg.ProductsURL, cfg.FetchTimeout)
	svc := service.New(st, sessions)

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.Default() // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	// Auth routes
	r.POST("/auth/register", api.RegisterHandler(svc, cfg.JWTSecret)) // Registration endpoint (auto-login)
	r.POST("/auth/login", api.LoginHandler(svc, cfg.JWTSecret))       // Login endpoint

	// Public catalogue routes
	r.GET("/menu", api.MenuHandler(catalog, redisClient))             // Daily canteen menu
	r.GET("/bar/products", api.ProductsHandler(catalog, redisClient)) // Bar catalogue
	r.GET("/campus/locations", api.LocationsHandler())                // Static campus map markers

	// Protected routes (JWT) with the Redis client injected for caching
	authGroup := r.Group("/")
	authGroup.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret), func(c *gin.Context) {
		c.Set("redisClient", redisClient)
		c.Next()
	})
	authGroup.POST("/auth/logout", api.LogoutHandler(svc))                // Clear the durable session
	authGroup.GET("/profile", api.GetProfileHandler(svc))                 // Profile read
	authGroup.PUT("/profile", api.UpdateProfileHandler(svc))              // Profile update
	authGroup.GET("/wallet", api.GetWalletHandler(svc, redisClient))      // Wallet balance
	authGroup.POST("/wallet/topup", api.TopUpHandler(svc))                // Wallet top-up
	authGroup.POST("/wallet/purchase", api.PurchaseHandler(svc))          // Purchase (debit + ledger row)
	authGroup.GET("/wallet/orders", api.OrdersHandler(svc))               // Purchase history

	log.Println("Server running on " + cfg.AppPort) // Log server start
	r.Run(":" + cfg.AppPort)                        // Start the server on port cfg.AppPort
}
