package config

import (
	"log"
	"os"
	"strconv"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string

	// Redis (optional - admin tokens fall back to process memory when unset)
	RedisHost     string
	RedisPort     int
	RedisPassword string

	// Admin panel credentials
	AdminUser string
	AdminPass string

	// Token / trial windows
	TokenTTLHours int
	TrialSeconds  int

	// API
	APIPort int
}

func Load() *Config {
	// Admin credentials - admin login is rejected outright without them
	adminUser := getEnv("ADMIN_USER", "")
	adminPass := getEnv("ADMIN_PASS", "")
	if adminUser == "" || adminPass == "" {
		log.Println("WARNING: ADMIN_USER or ADMIN_PASS not set - admin login will be unavailable!")
	}

	// Database password - warn if using default
	dbPassword := getEnv("DB_PASSWORD", "")
	if dbPassword == "" {
		log.Println("WARNING: DB_PASSWORD not set - this is insecure for production!")
		dbPassword = "changeme"
	}

	return &Config{
		// Database
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnvInt("DB_PORT", 5432),
		DBUser:     getEnv("DB_USER", "nyxlicense"),
		DBPassword: dbPassword,
		DBName:     getEnv("DB_NAME", "nyxlicense"),

		// Redis
		RedisHost:     getEnv("REDIS_HOST", ""),
		RedisPort:     getEnvInt("REDIS_PORT", 6379),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		// Admin
		AdminUser: adminUser,
		AdminPass: adminPass,

		// Windows
		TokenTTLHours: getEnvInt("TOKEN_TTL_HOURS", 8),
		TrialSeconds:  getEnvInt("TRIAL_SECONDS", 300),

		// API
		APIPort: getEnvInt("API_PORT", 8080),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
