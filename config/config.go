package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"sjsage522/propertymonitor/internal/listing"
	"sjsage522/propertymonitor/pkg/errors"
)

// Supported dedup store backends
const (
	StorePostgres = "postgres"
	StoreRedis    = "redis"
)

// Supported notifier backends
const (
	NotifierLog     = "log"
	NotifierRedis   = "redis"
	NotifierWebhook = "webhook"
	NotifierEmail   = "email"
)

// Config represents the application configuration
type Config struct {
	// HTTP status surface
	Port int

	// Marketplace source
	SourceURL        string
	BaseURL          string
	UserAgent        string
	ListingLocation  string
	MaxListings      int
	FetchTimeout     time.Duration
	BlockTimeSeconds int

	// Scheduling
	CrawlInterval time.Duration

	// Search criteria
	CriteriaFile string
	Criteria     listing.Criteria

	// Dedup store
	StoreBackend   string
	PostgresDSN    string
	RedisAddr      string
	RedisDB        int
	RedisKeyPrefix string

	// Memcache configuration
	MemcacheAddr string

	// Notifications
	Notifiers            []string
	NotifyEmail          string
	RedisStream          string
	RedisStreamMaxLength int
	WebhookURL           string
	SMTPAddr             string
	SMTPFrom             string
	SMTPUsername         string
	SMTPPassword         string

	// Environment
	Environment string
}

// LoadConfig loads the configuration from environment variables with defaults
func LoadConfig() (*Config, error) {
	criteriaFile := getEnv("CRITERIA_FILE", "config/criteria.yaml")
	criteria, err := LoadCriteria(criteriaFile)
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:                 getEnvInt("PORT", 10000),
		SourceURL:            getEnv("SOURCE_URL", "https://www.idealista.it/affitto-case/torino-torino/"),
		BaseURL:              getEnv("BASE_URL", "https://www.idealista.it"),
		UserAgent:            getEnv("USER_AGENT", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"),
		ListingLocation:      getEnv("LISTING_LOCATION", "Torino"),
		MaxListings:          getEnvInt("MAX_LISTINGS", 10),
		FetchTimeout:         time.Duration(getEnvInt("FETCH_TIMEOUT_SECONDS", 10)) * time.Second,
		BlockTimeSeconds:     getEnvInt("BLOCK_TIME_SECONDS", 500),
		CrawlInterval:        time.Duration(getEnvInt("CRAWL_INTERVAL_SECONDS", 900)) * time.Second,
		CriteriaFile:         criteriaFile,
		Criteria:             criteria,
		StoreBackend:         strings.ToLower(getEnv("STORE_BACKEND", StorePostgres)),
		PostgresDSN:          getEnv("POSTGRES_DSN", "postgres://localhost:5432/propertymonitor?sslmode=disable"),
		RedisAddr:            getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:              getEnvInt("REDIS_DB", 0),
		RedisKeyPrefix:       getEnv("REDIS_KEY_PREFIX", "listing"),
		MemcacheAddr:         getEnv("MEMCACHE_ADDR", "localhost:11211"),
		Notifiers:            splitList(getEnv("NOTIFIER", NotifierLog)),
		NotifyEmail:          getEnv("USER_EMAIL", "user@example.com"),
		RedisStream:          getEnv("REDIS_STREAM", "new_listings"),
		RedisStreamMaxLength: getEnvInt("REDIS_STREAM_MAX_LENGTH", 1000),
		WebhookURL:           getEnv("WEBHOOK_URL", ""),
		SMTPAddr:             getEnv("SMTP_ADDR", ""),
		SMTPFrom:             getEnv("SMTP_FROM", "property-monitor@localhost"),
		SMTPUsername:         getEnv("SMTP_USERNAME", ""),
		SMTPPassword:         getEnv("SMTP_PASSWORD", ""),
		Environment:          getEnv("PROPERTY_ENVIRONMENT", "development"),
	}, nil
}

// Validate checks the configuration for values the monitor cannot run with
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return errors.NewConfiguration(fmt.Sprintf("invalid port %d", c.Port), nil)
	}
	if c.SourceURL == "" {
		return errors.NewConfiguration("SOURCE_URL must not be empty", nil)
	}
	if c.CrawlInterval <= 0 {
		return errors.NewConfiguration("CRAWL_INTERVAL_SECONDS must be positive", nil)
	}
	if c.FetchTimeout <= 0 {
		return errors.NewConfiguration("FETCH_TIMEOUT_SECONDS must be positive", nil)
	}
	if c.MaxListings <= 0 {
		return errors.NewConfiguration("MAX_LISTINGS must be positive", nil)
	}

	switch c.StoreBackend {
	case StorePostgres, StoreRedis:
	default:
		return errors.NewConfiguration(fmt.Sprintf("unknown store backend %q", c.StoreBackend), nil)
	}

	for _, n := range c.Notifiers {
		switch n {
		case NotifierLog, NotifierRedis:
		case NotifierWebhook:
			if c.WebhookURL == "" {
				return errors.NewConfiguration("webhook notifier requires WEBHOOK_URL", nil)
			}
		case NotifierEmail:
			if c.SMTPAddr == "" {
				return errors.NewConfiguration("email notifier requires SMTP_ADDR", nil)
			}
		default:
			return errors.NewConfiguration(fmt.Sprintf("unknown notifier %q", n), nil)
		}
	}

	if err := c.Criteria.Validate(); err != nil {
		return errors.NewConfiguration("invalid search criteria", err)
	}
	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		n, err := strconv.Atoi(value)
		if err == nil {
			return n
		}
	}
	return defaultValue
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		item = strings.ToLower(strings.TrimSpace(item))
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}
