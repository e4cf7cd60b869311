package domain

import (
	"net/url"
	"strconv"
)

// Query is exactly what one listing request sends
type Query struct {
	Filter Filter
	Page   int
}

// Values encodes the query for GET /jobs. Empty filter fields are left out
// entirely so that they mean "no constraint" rather than "match empty".
func (q Query) Values() url.Values {
	v := url.Values{}
	page := q.Page
	if page < 1 {
		page = 1
	}
	v.Set("page", strconv.Itoa(page))
	for _, field := range Fields {
		if value := q.Filter.Get(field); value != "" {
			v.Set(field.String(), value)
		}
	}
	return v
}
