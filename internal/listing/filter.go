package listing

// Matches reports whether l satisfies c. Only the price range is evaluated.
func Matches(l Listing, c Criteria) bool {
	return c.PriceRange.Contains(l.Price)
}

// Filter keeps the candidates matching c, preserving order
func Filter(candidates []Listing, c Criteria) []Listing {
	matched := make([]Listing, 0, len(candidates))
	for _, l := range candidates {
		if Matches(l, c) {
			matched = append(matched, l)
		}
	}
	return matched
}
