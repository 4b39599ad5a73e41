package listings

import "strings"

// DefaultMaxPrice is the upper bound of the browse price slider.
const DefaultMaxPrice = 50000

// Filter is the browse predicate. Query matches title or description
// case-insensitively; an empty or "all" category matches every category; the
// price range is inclusive. A MaxPrice of zero or less leaves the range open
// above, so the zero Filter matches every listing.
type Filter struct {
	Query    string
	Category string
	MinPrice float64
	MaxPrice float64
}

// DefaultFilter returns the filter the browse page starts with.
func DefaultFilter() Filter {
	return Filter{MinPrice: 0, MaxPrice: DefaultMaxPrice}
}

// Match reports whether l passes every filter clause.
func (f Filter) Match(l Listing) bool {
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		if !strings.Contains(strings.ToLower(l.Title), q) &&
			!strings.Contains(strings.ToLower(l.Description), q) {
			return false
		}
	}
	if c := strings.TrimSpace(f.Category); c != "" && c != "all" && l.Category != c {
		return false
	}
	if l.Pricing.Amount < f.MinPrice {
		return false
	}
	return f.MaxPrice <= 0 || l.Pricing.Amount <= f.MaxPrice
}

// Search returns the listings that match f, preserving input order.
func Search(all []Listing, f Filter) []Listing {
	out := make([]Listing, 0, len(all))
	for _, l := range all {
		if f.Match(l) {
			out = append(out, l)
		}
	}
	return out
}
