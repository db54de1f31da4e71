package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDSN         string
	ServerPort    string
	SessionSecret string
	SessionName   string

	// дефолтный админ, создаётся при первом запуске
	AdminEmail    string
	AdminPassword string
	AdminName     string
	AdminCity     string

	LogLevel       string
	CORSOrigins    []string
	APIRequireAuth bool

	SentryDSN string
	AppEnv    string
}

func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		DBDSN:         os.Getenv("DB_DSN"),
		ServerPort:    getEnv("SERVER_PORT", "8080"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		SessionName:   getEnv("SESSION_NAME", "jt_session"),

		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@jobs.local"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "Admin123!"),
		AdminName:     getEnv("ADMIN_NAME", "Administrator"),
		AdminCity:     getEnv("ADMIN_CITY", "Moscow"),

		LogLevel:       getEnv("LOG_LEVEL", "info"),
		CORSOrigins:    splitList(getEnv("CORS_ORIGINS", "*")),
		APIRequireAuth: getBool("API_REQUIRE_AUTH", false),

		SentryDSN: os.Getenv("SENTRY_DSN"),
		AppEnv:    getEnv("APP_ENV", "development"),
	}

	if cfg.DBDSN == "" {
		log.Fatal("DB_DSN is not set")
	}
	if cfg.SessionSecret == "" {
		log.Fatal("SESSION_SECRET is not set")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		log.Printf("invalid %s=%q, using %v", key, val, fallback)
		return fallback
	}
	return b
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
