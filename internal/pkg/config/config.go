package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/gigmetric/earnmap/internal/pkg/models"
)

// InitConfig loads configuration from the environment, optionally seeded
// from a .env file when running locally.
func InitConfig(configPath string) *models.Config {
	if configPath != "" {
		if err := godotenv.Load(configPath); err != nil {
			log.Println("error loading config from file", err)
		}
	}
	return loadConfigFromEnv()
}

func loadConfigFromEnv() *models.Config {
	configs := &models.Config{}

	// App config
	configs.App.Name = GetEnv("APP_NAME", "earnmap")
	configs.App.Environment = GetEnv("APP_ENV", "local")
	configs.App.Debug = GetEnvAsBool("APP_DEBUG", false)
	configs.App.Version = GetEnv("APP_VERSION", "")

	// Server config (serve mode only)
	configs.Server.Port = GetEnvAsInt("SERVER_PORT", 9980)
	configs.Server.ReadTimeout = GetEnvAsInt("SERVER_READ_TIMEOUT", 15)
	configs.Server.WriteTimeout = GetEnvAsInt("SERVER_WRITE_TIMEOUT", 15)
	configs.Server.ShutdownTimeout = GetEnvAsInt("SERVER_SHUTDOWN_TIMEOUT", 30)

	// Database config
	configs.Database.Host = GetEnv("DB_HOST", "localhost")
	configs.Database.Port = GetEnvAsInt("DB_PORT", 5432)
	configs.Database.Username = GetEnv("DB_USERNAME", "")
	configs.Database.Password = GetEnv("DB_PASSWORD", "")
	configs.Database.Database = GetEnv("DB_DATABASE", "earnmap")
	configs.Database.SSLMode = GetEnv("DB_SSL_MODE", "disable")
	configs.Database.MaxConns = GetEnvAsInt("DB_MAX_CONNS", 4)
	configs.Database.IdleConns = GetEnvAsInt("DB_IDLE_CONNS", 2)

	// Redis config (export sink; disabled when host is empty)
	configs.Redis.Host = GetEnv("REDIS_HOST", "")
	configs.Redis.Port = GetEnvAsInt("REDIS_PORT", 6379)
	configs.Redis.Password = GetEnv("REDIS_PASSWORD", "")
	configs.Redis.DB = GetEnvAsInt("REDIS_DB", 0)
	configs.Redis.PoolSize = GetEnvAsInt("REDIS_POOL_SIZE", 10)

	// NATS config (run events; disabled when URL is empty)
	configs.NATS.URL = GetEnv("NATS_URL", "")

	// Logger config
	configs.Logger.Level = GetEnv("LOG_LEVEL", "info")
	configs.Logger.FilePath = GetEnv("LOG_FILE_PATH", "")

	// Analysis config
	configs.Analysis.WindowDays = GetEnvAsInt("ANALYSIS_WINDOW_DAYS", 28)
	configs.Analysis.Mode = GetEnv("ANALYSIS_MODE", "modeled")
	configs.Analysis.OutlierMethod = GetEnv("OUTLIER_METHOD", "zscore")
	configs.Analysis.ZScoreLimit = GetEnvAsFloat("OUTLIER_ZSCORE_LIMIT", 3.0)
	configs.Analysis.IQRMultiplier = GetEnvAsFloat("OUTLIER_IQR_MULTIPLIER", 1.5)
	configs.Analysis.AmbiguousPolicy = GetEnv("GEOCODE_AMBIGUOUS_POLICY", "drop")
	configs.Analysis.RideshareMaxHours = GetEnvAsFloat("RIDESHARE_MAX_HOURS", 6.0)
	configs.Analysis.DeliveryMaxHours = GetEnvAsFloat("DELIVERY_MAX_HOURS", 2.0)
	configs.Analysis.MaxAreasPerJob = GetEnvAsInt("MAX_AREAS_PER_JOB", 2)
	configs.Analysis.ConfidenceLevel = GetEnvAsFloat("CONFIDENCE_LEVEL", 0.95)
	configs.Analysis.SuppressAboveDollars = GetEnvAsFloat("SUPPRESS_ABOVE_DOLLARS", 5.0)
	configs.Analysis.HuberC = GetEnvAsFloat("HUBER_C", 1.345)
	configs.Analysis.HuberIterations = GetEnvAsInt("HUBER_ITERATIONS", 25)
	configs.Analysis.GeohashPrecision = uint(GetEnvAsInt("GEOHASH_PRECISION", 5))
	configs.Analysis.ExportTTLHours = GetEnvAsInt("EXPORT_TTL_HOURS", 48)

	return configs
}

// Helper functions to get environment variables with different types
func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer value for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func GetEnvAsBool(key string, defaultValue bool) bool {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid boolean value for %s, using default: %v", key, defaultValue)
		return defaultValue
	}

	return value
}

func GetEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid float value for %s, using default: %v", key, defaultValue)
		return defaultValue
	}

	return value
}
