package config

import (
	"os"      // For environment variables
	"strconv" // For string to int conversion
	"time"

	"github.com/joho/godotenv" // For loading .env files
)

// Config holds the application configuration
type Config struct {
	AppPort      string        // Application port
	DBPath       string        // Path to the local sqlite database file
	JWTSecret    string        // JWT secret key
	RedisAddr    string        // Redis server address (session + cache)
	RedisPass    string        // Redis password
	RedisDB      int           // Redis database number
	MenuURL      string        // Daily menu JSON document
	ProductsURL  string        // Bar catalogue JSON document
	FetchTimeout time.Duration // Remote fetch timeout
	IsProd       bool          // Is production environment
}

// Published gist documents the original catalogue lives at.
const (
	defaultMenuURL     = "https://gist.githubusercontent.com/JBelizard/ab8fb9f51a5a6cc8c7c19b131d74045a/raw/f06ad218abedeb85ea872002f694f18756787910/menu.json"
	defaultProductsURL = "https://gist.githubusercontent.com/JBelizard/4c2295142d2487b9a7d73d6ba31d6e10/raw/0c0f1fdf928d18460408d5e602a923eeaaf92ac3/products.json"
)

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))

	fetchTimeout := 10 * time.Second
	if v := os.Getenv("FETCH_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			fetchTimeout = d
		}
	}

	cfg := &Config{
		AppPort:      getenv("APP_PORT", "8080"),
		DBPath:       getenv("DB_PATH", "ecocampus.db"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		RedisAddr:    getenv("REDIS_ADDR", "localhost:6379"),
		RedisPass:    os.Getenv("REDIS_PASS"),
		RedisDB:      redisDB,
		MenuURL:      getenv("MENU_URL", defaultMenuURL),
		ProductsURL:  getenv("PRODUCTS_URL", defaultProductsURL),
		FetchTimeout: fetchTimeout,
		IsProd:       os.Getenv("IS_PROD") == "true",
	}
	return cfg
}

// getenv returns the value of key, or fallback when unset.
func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
