package helpers

import (
	"fmt"
	"net/http"
	"strconv"

	"eventmanagement/internal/domain"
)

// ParseOffsetPagination reads skip and limit from the query string. Missing values take
// defaults; malformed or out-of-range values are errors, never clamped.
func ParseOffsetPagination(r *http.Request) (domain.OffsetParams, error) {
	params := domain.DefaultOffsetParams()
	q := r.URL.Query()

	if s := q.Get("skip"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 0 {
			return params, fmt.Errorf("skip must be a non-negative integer")
		}
		params.Skip = v
	}
	if s := q.Get("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 || v > domain.MaxLimit {
			return params, fmt.Errorf("limit must be an integer between 1 and %d", domain.MaxLimit)
		}
		params.Limit = v
	}
	return params, nil
}

// ParseOptionalOffsetPagination is ParseOffsetPagination for listings that are unbounded
// unless the caller asks for a page.
func ParseOptionalOffsetPagination(r *http.Request) (domain.OffsetParams, error) {
	if r.URL.Query().Get("limit") == "" {
		params, err := ParseOffsetPagination(r)
		params.Limit = 0
		return params, err
	}
	return ParseOffsetPagination(r)
}

// ParseIDPathValue parses the {name} path segment as a positive int64 id.
func ParseIDPathValue(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("%s must be a positive integer", name)
	}
	return id, nil
}
