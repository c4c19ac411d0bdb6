package crawler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"sjsage522/propertymonitor/helpers"
	"sjsage522/propertymonitor/logger"
	perrors "sjsage522/propertymonitor/pkg/errors"
	"sjsage522/propertymonitor/services/cache"
)

// HTTPFetcher fetches marketplace pages over HTTP. When the marketplace
// rate limits us, a cooldown marker is written to the cache and further
// fetches fail fast until it expires.
type HTTPFetcher struct {
	Source    string
	Client    *http.Client
	Headers   http.Header
	CacheKey  string
	CacheSvc  cache.CacheService
	BlockTime time.Duration
	log       *logger.Logger
}

// NewHTTPFetcher creates a fetcher for the configured source
func NewHTTPFetcher(config CrawlerConfig, cacheSvc cache.CacheService, timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{
		Source:    config.Source,
		Client:    helpers.NewClient(timeout),
		Headers:   config.Headers,
		CacheKey:  config.CacheKey,
		CacheSvc:  cacheSvc,
		BlockTime: time.Duration(config.BlockTime) * time.Second,
		log:       logger.ForCrawler(config.Source),
	}
}

// Fetch fetches sourceURL honouring the rate-limit cooldown
func (f *HTTPFetcher) Fetch(ctx context.Context, sourceURL string) (io.Reader, error) {
	// Check if the source is rate limited
	if f.cooldownEnabled() {
		if _, err := f.CacheSvc.Get(f.CacheKey); err == nil {
			return nil, perrors.NewRateLimit(f.Source, f.BlockTime)
		} else if !errors.Is(err, cache.ErrMiss) {
			f.log.Debug().Err(err).Msg("Cooldown lookup failed, fetching anyway")
		}
	}

	f.log.Info().Str("url", sourceURL).Msg("Fetching listings page")

	body, err := helpers.FetchWithHeaders(ctx, f.Client, sourceURL, f.Headers)
	if err != nil {
		if errors.Is(err, helpers.ErrRateLimited) && f.cooldownEnabled() {
			seconds := int(f.BlockTime / time.Second)
			if setErr := f.CacheSvc.Set(f.CacheKey, []byte(fmt.Sprintf("%d", seconds)), f.BlockTime); setErr != nil {
				f.log.Warn().Err(setErr).Msg("Failed to store rate limit cooldown")
			}
			return nil, perrors.NewRateLimit(f.Source, f.BlockTime)
		}
		return nil, perrors.NewFetch(f.Source, "failed to fetch listings page", err)
	}

	return body, nil
}

func (f *HTTPFetcher) cooldownEnabled() bool {
	return f.CacheSvc != nil && f.CacheKey != "" && f.BlockTime > 0
}
