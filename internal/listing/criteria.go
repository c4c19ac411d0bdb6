package listing

import (
	"fmt"

	"sjsage522/propertymonitor/pkg/errors"
)

// PriceRange is an inclusive price interval
type PriceRange struct {
	Min int `yaml:"min" json:"min"`
	Max int `yaml:"max" json:"max"`
}

// Contains reports whether price lies within the range, both ends included
func (r PriceRange) Contains(price int) bool {
	return r.Min <= price && price <= r.Max
}

// Criteria describes what counts as a match.
// Locations and PropertyTypes are carried for reporting only; the filter
// does not evaluate them.
type Criteria struct {
	PriceRange    PriceRange `yaml:"price_range" json:"price_range"`
	Locations     []string   `yaml:"locations" json:"locations"`
	PropertyTypes []string   `yaml:"property_types" json:"property_types"`
}

// DefaultCriteria returns the built-in search criteria
func DefaultCriteria() Criteria {
	return Criteria{
		PriceRange:    PriceRange{Min: 300, Max: 800},
		Locations:     []string{"Centro", "Crocetta", "San Salvario"},
		PropertyTypes: []string{"apartment", "studio"},
	}
}

// Validate checks the price range is usable
func (c Criteria) Validate() error {
	if c.PriceRange.Min < 0 {
		return errors.NewValidation("criteria", fmt.Sprintf("negative minimum price %d", c.PriceRange.Min))
	}
	if c.PriceRange.Min > c.PriceRange.Max {
		return errors.NewValidation("criteria",
			fmt.Sprintf("minimum price %d greater than maximum %d", c.PriceRange.Min, c.PriceRange.Max))
	}
	return nil
}
