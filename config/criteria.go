package config

import (
	"os"

	"gopkg.in/yaml.v2"

	"sjsage522/propertymonitor/internal/listing"
	"sjsage522/propertymonitor/pkg/errors"
)

type criteriaFile struct {
	SearchCriteria listing.Criteria `yaml:"search_criteria"`
}

// LoadCriteria reads search criteria from a YAML file.
// A missing file yields the built-in defaults.
func LoadCriteria(path string) (listing.Criteria, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return listing.DefaultCriteria(), nil
	}
	if err != nil {
		return listing.Criteria{}, errors.NewConfiguration("failed to read criteria file "+path, err)
	}

	var file criteriaFile
	if err := yaml.UnmarshalStrict(data, &file); err != nil {
		return listing.Criteria{}, errors.NewConfiguration("failed to parse criteria file "+path, err)
	}
	return file.SearchCriteria, nil
}
