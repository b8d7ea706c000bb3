package model

import (
	"net/url"
	"strconv"
)

// SearchCriteria filters a catalog fetch. Every field is optional; the
// zero value means "no filter" and must yield the same result set as the
// unfiltered list endpoint.
type SearchCriteria struct {
	Name     string
	Category string
	MinPrice *float64
	MaxPrice *float64
}

// IsEmpty reports whether no criterion is set. Empty criteria route to
// the plain list endpoint instead of the search endpoint.
func (c SearchCriteria) IsEmpty() bool {
	return c.Name == "" && c.Category == "" && c.MinPrice == nil && c.MaxPrice == nil
}

// Values serializes the criteria as query parameters, omitting any
// criterion that is absent or empty.
func (c SearchCriteria) Values() url.Values {
	v := url.Values{}
	if c.Name != "" {
		v.Set("name", c.Name)
	}
	if c.Category != "" {
		v.Set("category", c.Category)
	}
	if c.MinPrice != nil {
		v.Set("minPrice", strconv.FormatFloat(*c.MinPrice, 'f', -1, 64))
	}
	if c.MaxPrice != nil {
		v.Set("maxPrice", strconv.FormatFloat(*c.MaxPrice, 'f', -1, 64))
	}
	return v
}
