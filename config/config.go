package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

const (
	DefaultEnv                = "development"
	DefaultPort               = "8080"
	DefaultLogLevel           = "info"
	DefaultTokenPurgeSchedule = "@every 5m"
	DefaultCORSAllowOrigins   = "*"
	DefaultBcryptCost         = bcrypt.DefaultCost
)

type Config struct {
	Env                string
	Port               string
	LogLevel           string
	DBURL              string
	JWTSecret          string
	TokenHMACSecret    string
	AdminAPIKey        string
	RabbitMQURL        string
	TokenPurgeSchedule string
	CORSAllowOrigins   string
	BcryptCost         int
}

// fileValues holds the keys read from the active .env file.
var fileValues map[string]string

// Load reads config/.env.dev, or config/.env.prod when ENV=production, then
// the process environment. Real environment variables win over the file.
func Load() *Config {
	fileValues = nil
	env := getEnv("ENV", DefaultEnv)

	file := ".env.dev"
	if env == "production" {
		file = ".env.prod"
	}
	values, err := godotenv.Read(filepath.Join("config", file))
	if err != nil && !os.IsNotExist(err) {
		log.Printf("Could not read %s: %v", file, err)
	}
	fileValues = values

	return &Config{
		Env:                env,
		Port:               getEnv("PORT", DefaultPort),
		LogLevel:           getEnv("LOG_LEVEL", DefaultLogLevel),
		DBURL:              mustGetEnv("DB_URL"),
		JWTSecret:          mustGetEnv("JWT_SECRET"),
		TokenHMACSecret:    mustGetEnv("TOKEN_HMAC_SECRET"),
		AdminAPIKey:        getEnv("ADMIN_API_KEY", ""),
		RabbitMQURL:        getEnv("RABBITMQ_URL", ""),
		TokenPurgeSchedule: getEnv("TOKEN_PURGE_SCHEDULE", DefaultTokenPurgeSchedule),
		CORSAllowOrigins:   getEnv("CORS_ALLOW_ORIGINS", DefaultCORSAllowOrigins),
		BcryptCost:         getEnvAsInt("BCRYPT_COST", DefaultBcryptCost),
	}
}

func lookup(key string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fileValues[key]
}

func getEnv(key string, defaultVal string) string {
	if value := lookup(key); value != "" {
		return value
	}
	return defaultVal
}

func mustGetEnv(key string) string {
	if value := lookup(key); value != "" {
		return value
	}
	log.Fatalf("Missing required config: %s", key)
	return ""
}

func getEnvAsInt(key string, defaultVal int) int {
	valStr := lookup(key)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		log.Printf("Invalid value for %s, using default %d", key, defaultVal)
		return defaultVal
	}
	return val
}
