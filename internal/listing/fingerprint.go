package listing

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint returns a stable identifier for the listing at rawURL.
// The value only depends on the canonical form of the URL, so it is the
// same across process restarts.
func Fingerprint(rawURL string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(Canonicalize(rawURL)))
}

// Canonicalize normalizes a listing URL: lowercase scheme and host, no
// fragment, no trailing slash on the path.
func Canonicalize(rawURL string) string {
	trimmed := strings.TrimSpace(rawURL)
	u, err := url.Parse(trimmed)
	if err != nil || u.Host == "" {
		return strings.TrimRight(trimmed, "/")
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawPath = ""
	return u.String()
}
