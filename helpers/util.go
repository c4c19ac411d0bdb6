package helpers

import (
	"net/url"
	"strings"
)

// ResolveURL turns href into an absolute URL against baseURL.
// Absolute hrefs are returned unchanged; an empty href yields "".
func ResolveURL(baseURL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}

	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if ref.IsAbs() {
		return href
	}

	base, err := url.Parse(baseURL)
	if err != nil || baseURL == "" {
		return href
	}
	return base.ResolveReference(ref).String()
}

// StripSeparators removes thousands separators ("." and ",") from s
func StripSeparators(s string) string {
	return strings.NewReplacer(".", "", ",", "").Replace(s)
}
