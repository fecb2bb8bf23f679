package config

import (
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	ServerPort      int      `yaml:"serverPort"`
	DatabasePath    string   `yaml:"databasePath"`
	JWTSecret       string   `yaml:"jwtSecret"`
	CORSOrigins     []string `yaml:"corsOrigins"`
	AlertDigestCron string   `yaml:"alertDigestCron"`
	AdminEmail      string   `yaml:"adminEmail"`
	AdminPassword   string   `yaml:"adminPassword"`
}

// Load reads configuration from environment variables with defaults; when
// CONFIG_FILE points at a YAML file, its values override the environment.
func Load() (*Config, error) {
	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		ServerPort:      port,
		DatabasePath:    getEnv("DATABASE_PATH", "./splice.db"),
		JWTSecret:       getEnv("JWT_SECRET", "splice-dev-secret"),
		CORSOrigins:     strings.Split(getEnv("CORS_ORIGIN", "http://localhost:5173"), ","),
		AlertDigestCron: getEnv("ALERT_DIGEST_CRON", "0 7 * * *"),
		AdminEmail:      getEnv("ADMIN_EMAIL", ""),
		AdminPassword:   getEnv("ADMIN_PASSWORD", ""),
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
