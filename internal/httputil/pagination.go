package httputil

import (
	"errors"
	"net/http"
	"strconv"
)

const (
	DefaultLimit  = 50
	MinLimit      = 1
	MaxLimit      = 200
	DefaultOffset = 0
)

var (
	ErrLimitRange     = errors.New("limit must be between 1 and 200")
	ErrNegativeOffset = errors.New("offset must be non-negative")
)

// Pagination parses limit/offset query parameters. Out-of-range values are
// rejected, not clamped.
func Pagination(r *http.Request) (limit, offset int, err error) {
	limit, offset = DefaultLimit, DefaultOffset

	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < MinLimit || limit > MaxLimit {
			return 0, 0, ErrLimitRange
		}
	}
	if raw := r.URL.Query().Get("offset"); raw != "" {
		offset, err = strconv.Atoi(raw)
		if err != nil || offset < 0 {
			return 0, 0, ErrNegativeOffset
		}
	}
	return limit, offset, nil
}
