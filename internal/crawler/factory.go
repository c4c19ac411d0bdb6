package crawler

import (
	"sjsage522/propertymonitor/config"
	"sjsage522/propertymonitor/helpers"
	"sjsage522/propertymonitor/logger"
	"sjsage522/propertymonitor/services/cache"
)

// IdealistaSelectors matches the rental search result page of idealista.it
var IdealistaSelectors = Selectors{
	ListingList: "article.item",
	Title:       "a.item-link",
	Link:        "a.item-link",
	Price:       "span.item-price",
	Description: "div.item-description",
}

// NewIdealistaConfig builds the crawler configuration from the application config
func NewIdealistaConfig(cfg *config.Config) CrawlerConfig {
	return CrawlerConfig{
		URL:         cfg.SourceURL,
		BaseURL:     cfg.BaseURL,
		Source:      "Idealista",
		Location:    cfg.ListingLocation,
		MaxListings: cfg.MaxListings,
		CacheKey:    "idealista_rate_limited",
		BlockTime:   cfg.BlockTimeSeconds,
		Headers:     helpers.DefaultHeaders(cfg.UserAgent),
		Selectors:   IdealistaSelectors,
	}
}

// CreateCrawler creates the fetcher and extractor for the configured marketplace
func CreateCrawler(cfg *config.Config, cacheSvc cache.CacheService) (*HTTPFetcher, *ConfigurableExtractor) {
	crawlerConfig := NewIdealistaConfig(cfg)

	logger.ForCrawler(crawlerConfig.Source).Info().
		Str("url", crawlerConfig.URL).
		Int("max_listings", crawlerConfig.MaxListings).
		Msg("Created crawler")

	return NewHTTPFetcher(crawlerConfig, cacheSvc, cfg.FetchTimeout), NewConfigurableExtractor(crawlerConfig)
}
