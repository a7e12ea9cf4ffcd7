package api

import (
	"net/url"
	"strconv"
	"strings"
)

// queryValues serializes the server-side filter fields. Unset fields are
// omitted entirely; the Active flag is applied client-side because the
// search endpoint does not accept it.
func (f UserFilters) queryValues() url.Values {
	v := url.Values{}
	if f.Name != nil {
		v.Set("name", *f.Name)
	}
	if f.MinAge != nil {
		v.Set("minAge", strconv.Itoa(*f.MinAge))
	}
	if f.MaxAge != nil {
		v.Set("maxAge", strconv.Itoa(*f.MaxAge))
	}
	return v
}

// String returns a canonical textual form of the filters, stable across
// equal values. Used for cache keys and logging.
func (f UserFilters) String() string {
	var parts []string
	if f.Name != nil {
		parts = append(parts, "name="+*f.Name)
	}
	if f.MinAge != nil {
		parts = append(parts, "minAge="+strconv.Itoa(*f.MinAge))
	}
	if f.MaxAge != nil {
		parts = append(parts, "maxAge="+strconv.Itoa(*f.MaxAge))
	}
	if f.Active != nil {
		parts = append(parts, "active="+strconv.FormatBool(*f.Active))
	}
	if len(parts) == 0 {
		return "all"
	}
	return strings.Join(parts, "&")
}
