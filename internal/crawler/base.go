package crawler

import (
	"fmt"
	"io"
	"time"

	"github.com/PuerkitoBio/goquery"

	"sjsage522/propertymonitor/internal/listing"
	"sjsage522/propertymonitor/logger"
	perrors "sjsage522/propertymonitor/pkg/errors"
)

// BaseCrawler provides the document handling shared by extractors
type BaseCrawler struct {
	Source      string
	BaseURL     string
	Location    string
	MaxListings int
	now         func() time.Time
	log         *logger.Logger
}

// createDocument creates a goquery document from a reader
func (c *BaseCrawler) createDocument(reader io.Reader) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(reader)
	if err != nil {
		return nil, fmt.Errorf("HTML parsing error: %w", err)
	}
	return doc, nil
}

// processListings runs processor over the first MaxListings selections in
// document order. A failing or panicking candidate is recorded in the batch
// and never stops the remaining ones.
func (c *BaseCrawler) processListings(selections *goquery.Selection, processor func(*goquery.Selection) (*listing.Listing, error)) Batch {
	limit := selections.Length()
	if c.MaxListings > 0 && limit > c.MaxListings {
		limit = c.MaxListings
	}

	batch := Batch{Results: make([]Result, 0, limit)}
	for i := 0; i < limit; i++ {
		result := c.processOne(i, selections.Eq(i), processor)
		if result.Err != nil {
			c.log.Debug().
				Int("candidate", i).
				Err(result.Err).
				Msg("Skipping listing candidate")
		}
		batch.Results = append(batch.Results, result)
	}

	return batch
}

func (c *BaseCrawler) processOne(index int, s *goquery.Selection, processor func(*goquery.Selection) (*listing.Listing, error)) (result Result) {
	result.Index = index
	defer func() {
		if r := recover(); r != nil {
			result.Listing = nil
			result.Err = perrors.NewExtraction(c.Source, fmt.Sprintf("candidate %d panicked", index), fmt.Errorf("%v", r))
		}
	}()

	l, err := processor(s)
	if err != nil {
		result.Err = err
		return result
	}
	result.Listing = l
	return result
}

// GetName returns the source name used in logs
func (c *BaseCrawler) GetName() string {
	return c.Source
}

func (c *BaseCrawler) clock() time.Time {
	if c.now != nil {
		return c.now()
	}
	return time.Now()
}
