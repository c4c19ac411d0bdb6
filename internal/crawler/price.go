package crawler

import (
	"regexp"
	"strconv"

	"sjsage522/propertymonitor/helpers"
)

var digitsRegex = regexp.MustCompile(`[0-9]+`)

// ParsePrice extracts the monthly rent from text such as "1.200 €/mese".
// Grouping separators are removed before reading the first run of digits;
// text without digits yields 0.
func ParsePrice(text string) (int, error) {
	digits := digitsRegex.FindString(helpers.StripSeparators(text))
	if digits == "" {
		return 0, nil
	}
	return strconv.Atoi(digits)
}
