package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	StateBackend  string
	StateDir      string
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	ArchiveDriver    string
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string
	SQLitePath       string

	CountriesAPIURL          string
	CountriesRefreshInterval time.Duration

	HTTPPort            int
	HTTPRateLimitPerMin int
	CSVOutputPath       string
	PDFOutputPath       string
	ChromeBin           string
	MaxRetries          int
	LogDebug            bool
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		StateBackend:  getEnv("STATE_BACKEND", "file"),
		StateDir:      getEnv("STATE_DIR", "./data"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		ArchiveDriver:    getEnv("ARCHIVE_DRIVER", "sqlite"),
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "inquiries"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "inquiries123"),
		PostgresDB:       getEnv("POSTGRES_DB", "inquiry_db"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		SQLitePath:       getEnv("SQLITE_PATH", "./data/inquiries.db"),

		CountriesAPIURL:          getEnv("COUNTRIES_API_URL", "https://restcountries.com/v3.1"),
		CountriesRefreshInterval: time.Duration(getEnvInt("COUNTRIES_REFRESH_INTERVAL_MS", 60000)) * time.Millisecond,

		HTTPPort:            getEnvInt("HTTP_PORT", 8080),
		HTTPRateLimitPerMin: getEnvInt("HTTP_RATE_LIMIT_PER_MIN", 120),
		CSVOutputPath:       getEnv("CSV_OUTPUT_PATH", "./output/inquiries.csv"),
		PDFOutputPath:       getEnv("PDF_OUTPUT_PATH", "./output/insights.pdf"),
		ChromeBin:           getEnv("CHROME_BIN", ""),
		MaxRetries:          getEnvInt("MAX_RETRIES", 3),
		LogDebug:            getEnvBool("LOG_DEBUG", false),
	}
}

// DSN returns the connection string for the configured archive driver.
func (c *Config) DSN() string {
	if c.ArchiveDriver == "sqlite" {
		return c.SQLitePath
	}
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}
