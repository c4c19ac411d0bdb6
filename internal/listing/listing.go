package listing

import "time"

// Listing represents one rental ad as seen in a single scrape
type Listing struct {
	Fingerprint  string    `json:"fingerprint"`
	Title        string    `json:"title"`
	Price        int       `json:"price"`
	Location     string    `json:"location"`
	Description  string    `json:"description"`
	URL          string    `json:"url"`
	DiscoveredAt time.Time `json:"discovered_at"`
	IsNew        bool      `json:"is_new"`
}

// New builds a candidate listing, deriving its fingerprint from url
func New(title string, price int, location, description, url string, discoveredAt time.Time) Listing {
	return Listing{
		Fingerprint:  Fingerprint(url),
		Title:        title,
		Price:        price,
		Location:     location,
		Description:  description,
		URL:          url,
		DiscoveredAt: discoveredAt,
	}
}
