package crawler

import (
	"context"
	"io"
	"net/http"

	"sjsage522/propertymonitor/internal/listing"
)

// Fetcher retrieves the raw document for a source location
type Fetcher interface {
	// Fetch returns the UTF-8 body of sourceURL or a fetch-class MonitorError
	Fetch(ctx context.Context, sourceURL string) (io.Reader, error)
}

// Extractor turns a raw document into listing candidates
type Extractor interface {
	// Extract never fails for the batch as a whole; per-candidate
	// failures are reported in the returned Batch
	Extract(body io.Reader) Batch
}

// Result is the outcome of extracting a single candidate
type Result struct {
	Index   int
	Listing *listing.Listing
	Err     error
}

// Batch collects the per-candidate results of one extraction
type Batch struct {
	Results []Result
}

// Listings returns the successfully extracted candidates in document order
func (b Batch) Listings() []listing.Listing {
	listings := make([]listing.Listing, 0, len(b.Results))
	for _, r := range b.Results {
		if r.Err == nil && r.Listing != nil {
			listings = append(listings, *r.Listing)
		}
	}
	return listings
}

// Failures returns the errors of candidates that were dropped
func (b Batch) Failures() []error {
	var errs []error
	for _, r := range b.Results {
		if r.Err != nil {
			errs = append(errs, r.Err)
		}
	}
	return errs
}

// Selectors contains CSS selectors for various elements in the page
type Selectors struct {
	ListingList string
	Title       string
	Link        string
	Price       string
	Description string
}

// CrawlerConfig contains configuration for a marketplace source
type CrawlerConfig struct {
	URL         string
	BaseURL     string
	Source      string
	Location    string
	MaxListings int
	CacheKey    string
	BlockTime   int
	Headers     http.Header
	Selectors   Selectors
}
