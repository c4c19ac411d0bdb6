package crawler

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"sjsage522/propertymonitor/helpers"
	"sjsage522/propertymonitor/internal/listing"
	"sjsage522/propertymonitor/logger"
	perrors "sjsage522/propertymonitor/pkg/errors"
)

// ConfigurableExtractor extracts listings using a set of CSS selectors
type ConfigurableExtractor struct {
	BaseCrawler
	Selectors Selectors
}

// NewConfigurableExtractor creates a new selector-driven extractor
func NewConfigurableExtractor(config CrawlerConfig) *ConfigurableExtractor {
	return &ConfigurableExtractor{
		BaseCrawler: BaseCrawler{
			Source:      config.Source,
			BaseURL:     config.BaseURL,
			Location:    config.Location,
			MaxListings: config.MaxListings,
			log:         logger.ForCrawler(config.Source),
		},
		Selectors: config.Selectors,
	}
}

// WithLogger replaces the extractor's logger
func (c *ConfigurableExtractor) WithLogger(log *logger.Logger) *ConfigurableExtractor {
	c.log = log
	return c
}

// Extract parses body and returns the first MaxListings candidates
func (c *ConfigurableExtractor) Extract(body io.Reader) Batch {
	doc, err := c.createDocument(body)
	if err != nil {
		extractErr := perrors.NewExtraction(c.Source, "unparseable document", err)
		c.log.Error().Err(extractErr).Msg("Failed to parse listings page")
		return Batch{Results: []Result{{Index: -1, Err: extractErr}}}
	}

	selections := doc.Find(c.Selectors.ListingList)
	if selections.Length() == 0 {
		c.log.Warn().Str("selector", c.Selectors.ListingList).Msg("No listing containers found")
	}

	return c.processListings(selections, c.processListing)
}

// titleOf reads the title attribute of sel, falling back to its text
func titleOf(sel *goquery.Selection) string {
	if titleAttr, exists := sel.Attr("title"); exists && strings.TrimSpace(titleAttr) != "" {
		return strings.TrimSpace(titleAttr)
	}
	return strings.TrimSpace(sel.Text())
}

// processListing processes a single listing container
func (c *ConfigurableExtractor) processListing(s *goquery.Selection) (*listing.Listing, error) {
	titleSel := s.Find(c.Selectors.Title).First()
	if titleSel.Length() == 0 {
		return nil, perrors.NewExtraction(c.Source, "missing title element", nil)
	}

	priceSel := s.Find(c.Selectors.Price).First()
	if priceSel.Length() == 0 {
		return nil, perrors.NewExtraction(c.Source, "missing price element", nil)
	}

	linkSel := titleSel
	if c.Selectors.Link != "" && c.Selectors.Link != c.Selectors.Title {
		linkSel = s.Find(c.Selectors.Link).First()
	}
	href, _ := linkSel.Attr("href")
	link := helpers.ResolveURL(c.BaseURL, href)
	if link == "" {
		return nil, perrors.NewExtraction(c.Source, "missing listing link", nil)
	}

	price, err := ParsePrice(priceSel.Text())
	if err != nil {
		return nil, perrors.NewExtraction(c.Source, "invalid price "+strings.TrimSpace(priceSel.Text()), err)
	}

	var description string
	if c.Selectors.Description != "" {
		description = strings.TrimSpace(s.Find(c.Selectors.Description).First().Text())
	}

	l := listing.New(titleOf(titleSel), price, c.Location, description, link, c.clock())
	return &l, nil
}
