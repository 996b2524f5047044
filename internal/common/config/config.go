package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// ============================================================
// Configuration
// ============================================================

type Config struct {
	Port         string
	Environment  string
	ReadTimeout  int
	WriteTimeout int

	// Экспорт.
	OutputDir      string
	ManifestDBPath string
	DefaultUnits   string
	ProjectName    string
	Debug          bool
}

// Load загружает конфигурацию из .env и переменных окружения
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:           getEnv("PORT", "3000"),
		Environment:    getEnv("ENV", "development"),
		ReadTimeout:    getEnvAsInt("READ_TIMEOUT", 10),
		WriteTimeout:   getEnvAsInt("WRITE_TIMEOUT", 30),
		OutputDir:      getEnv("OUTPUT_DIR", "./output"),
		ManifestDBPath: getEnv("MANIFEST_DB", "./data/exports.db"),
		DefaultUnits:   getEnv("DEFAULT_UNITS", "metric"),
		ProjectName:    getEnv("PROJECT_NAME", "BubbleBIM"),
		Debug:          getEnvAsBool("DEBUG", false),
	}
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultVal
}
