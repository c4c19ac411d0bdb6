package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sjsage522/propertymonitor/internal/listing"
	"sjsage522/propertymonitor/pkg/errors"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("CRITERIA_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	// Test with default values
	config, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 10000, config.Port)
	assert.Equal(t, "user@example.com", config.NotifyEmail)
	assert.Equal(t, "https://www.idealista.it/affitto-case/torino-torino/", config.SourceURL)
	assert.Equal(t, 10, config.MaxListings)
	assert.Equal(t, 10*time.Second, config.FetchTimeout)
	assert.Equal(t, 900*time.Second, config.CrawlInterval)
	assert.Equal(t, StorePostgres, config.StoreBackend)
	assert.Equal(t, "localhost:11211", config.MemcacheAddr)
	assert.Equal(t, []string{NotifierLog}, config.Notifiers)
	assert.Equal(t, listing.DefaultCriteria(), config.Criteria)
	assert.NoError(t, config.Validate())

	// Test with environment variables
	t.Setenv("PORT", "8080")
	t.Setenv("USER_EMAIL", "someone@example.org")
	t.Setenv("CRAWL_INTERVAL_SECONDS", "60")
	t.Setenv("STORE_BACKEND", "Redis")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("NOTIFIER", "log, redis ,webhook")
	t.Setenv("WEBHOOK_URL", "https://hooks.example.com/x")

	config, err = LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 8080, config.Port)
	assert.Equal(t, "someone@example.org", config.NotifyEmail)
	assert.Equal(t, 60*time.Second, config.CrawlInterval)
	assert.Equal(t, StoreRedis, config.StoreBackend)
	assert.Equal(t, 2, config.RedisDB)
	assert.Equal(t, []string{NotifierLog, NotifierRedis, NotifierWebhook}, config.Notifiers)
	assert.NoError(t, config.Validate())
}

func TestLoadConfigInvalidNumberFallsBack(t *testing.T) {
	t.Setenv("CRITERIA_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("PORT", "not-a-number")

	config, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 10000, config.Port)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Port:          10000,
			SourceURL:     "https://example.com",
			CrawlInterval: time.Minute,
			FetchTimeout:  time.Second,
			MaxListings:   10,
			StoreBackend:  StorePostgres,
			Notifiers:     []string{NotifierLog},
			Criteria:      listing.DefaultCriteria(),
		}
	}

	testCases := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"zero port", func(c *Config) { c.Port = 0 }},
		{"empty source", func(c *Config) { c.SourceURL = "" }},
		{"zero interval", func(c *Config) { c.CrawlInterval = 0 }},
		{"zero timeout", func(c *Config) { c.FetchTimeout = 0 }},
		{"zero max listings", func(c *Config) { c.MaxListings = 0 }},
		{"unknown store", func(c *Config) { c.StoreBackend = "sqlite" }},
		{"unknown notifier", func(c *Config) { c.Notifiers = []string{"sms"} }},
		{"webhook without url", func(c *Config) { c.Notifiers = []string{NotifierWebhook} }},
		{"email without smtp", func(c *Config) { c.Notifiers = []string{NotifierEmail} }},
		{"inverted price range", func(c *Config) { c.Criteria.PriceRange = listing.PriceRange{Min: 900, Max: 100} }},
	}

	assert.NoError(t, valid().Validate())
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := valid()
			tc.mutate(c)
			err := c.Validate()
			assert.True(t, errors.IsType(err, errors.ErrorTypeConfiguration), "got %v", err)
		})
	}
}

func TestLoadCriteria(t *testing.T) {
	criteria, err := LoadCriteria("criteria.yaml")
	require.NoError(t, err)
	assert.Equal(t, listing.PriceRange{Min: 300, Max: 800}, criteria.PriceRange)
	assert.Equal(t, []string{"Centro", "Crocetta", "San Salvario"}, criteria.Locations)
	assert.Equal(t, []string{"apartment", "studio"}, criteria.PropertyTypes)

	path := filepath.Join(t.TempDir(), "criteria.yaml")
	require.NoError(t, os.WriteFile(path, []byte("search_criteria:\n  price_range: {min: 500, max: 1200}\n"), 0o644))
	criteria, err = LoadCriteria(path)
	require.NoError(t, err)
	assert.Equal(t, listing.PriceRange{Min: 500, Max: 1200}, criteria.PriceRange)
	assert.Empty(t, criteria.Locations)
}

func TestLoadCriteriaInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "criteria.yaml")
	require.NoError(t, os.WriteFile(path, []byte("search_criteria:\n  price_rnage: {min: 1}\n"), 0o644))

	_, err := LoadCriteria(path)
	assert.True(t, errors.IsType(err, errors.ErrorTypeConfiguration))
}
