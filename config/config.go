package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	ProductName    string
	ProductKeyword string
	SearchQuery    string
	SourceName     string
	BaseURL        string

	PriceThreshold float64
	MaxPages       int
	MaxItems       int
	MinVolumeOz    float64

	RequestDelayMs    int
	RequestJitterMs   int
	RequestTimeoutSec int
	UserAgent         string

	FetchMode       string
	ChromeBin       string
	BrowserSettleMs int

	HistoryBackend string
	HistoryPath    string
	SQLitePath     string
	ReportPath     string
	CSVOutputPath  string

	PostgresEnabled  bool
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	MetricsTextfile string
	LogDebug        bool
}

const defaultUserAgent = "Mozilla/5.0 (iPhone; CPU iPhone OS 16_0 like Mac OS X) " +
	"AppleWebKit/605.1.15 (KHTML, like Gecko) Version/16.0 Mobile/15E148 Safari/604.1"

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		ProductName:    getEnv("PRODUCT_NAME", "Monster Energy"),
		ProductKeyword: getEnv("PRODUCT_KEYWORD", "monster"),
		SearchQuery:    getEnv("SEARCH_QUERY", "monster energy drink 24 pack"),
		SourceName:     getEnv("SOURCE_NAME", "Amazon"),
		BaseURL:        strings.TrimRight(getEnv("BASE_URL", "https://www.amazon.com"), "/"),

		PriceThreshold: getEnvFloat("PRICE_THRESHOLD", 0.12),
		MaxPages:       getEnvInt("MAX_PAGES", 3),
		MaxItems:       getEnvInt("MAX_ITEMS", 20),
		MinVolumeOz:    getEnvFloat("MIN_VOLUME_OZ", 48),

		RequestDelayMs:    getEnvInt("REQUEST_DELAY_MS", 2000),
		RequestJitterMs:   getEnvInt("REQUEST_JITTER_MS", 1000),
		RequestTimeoutSec: getEnvInt("REQUEST_TIMEOUT_SEC", 15),
		UserAgent:         getEnv("USER_AGENT", defaultUserAgent),

		FetchMode:       strings.ToLower(getEnv("FETCH_MODE", "http")),
		ChromeBin:       getEnv("CHROME_BIN", ""),
		BrowserSettleMs: getEnvInt("BROWSER_SETTLE_MS", 3000),

		HistoryBackend: strings.ToLower(getEnv("HISTORY_BACKEND", "json")),
		HistoryPath:    getEnv("HISTORY_PATH", "price_history.json"),
		SQLitePath:     getEnv("SQLITE_PATH", "price_history.sqlite"),
		ReportPath:     getEnv("REPORT_PATH", "deal_report.md"),
		CSVOutputPath:  getEnv("CSV_OUTPUT_PATH", ""),

		PostgresEnabled:  getEnvBool("POSTGRES_ENABLED", false),
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "deals"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "deals123"),
		PostgresDB:       getEnv("POSTGRES_DB", "deals_db"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		MetricsTextfile: getEnv("METRICS_TEXTFILE", ""),
		LogDebug:        getEnvBool("LOG_DEBUG", false),
	}
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

// RequestDelay is the minimum pause between two outbound fetches.
func (c *Config) RequestDelay() time.Duration {
	return time.Duration(c.RequestDelayMs) * time.Millisecond
}

func (c *Config) RequestJitter() time.Duration {
	return time.Duration(c.RequestJitterMs) * time.Millisecond
}

func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSec) * time.Second
}

func (c *Config) BrowserSettle() time.Duration {
	return time.Duration(c.BrowserSettleMs) * time.Millisecond
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

func getEnvFloat(key string, fallback float64) float64 {
	if val := os.Getenv(key); val != "" {
		f, err := strconv.ParseFloat(val, 64)
		if err == nil {
			return f
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
