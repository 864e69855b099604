package validators

import (
	"net/http"
	"strconv"
	"strings"

	pkgerrors "github.com/zxclownhd/fishing-app/pkg/errors"
	"github.com/zxclownhd/fishing-app/pkg/pagination"
)

// ParseQueryInt reads an optional integer query parameter. Non-numeric input
// is rejected; range enforcement is left to the caller.
func ParseQueryInt(r *http.Request, key string, defaultVal int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return defaultVal, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be numeric").WithDetails(map[string]any{"field": key})
	}
	return value, nil
}

// ParsePage reads page and limit. Missing values stay zero so each endpoint
// applies its own defaults and caps.
func ParsePage(r *http.Request) (pagination.Params, error) {
	page, err := ParseQueryInt(r, "page", 0)
	if err != nil {
		return pagination.Params{}, err
	}
	limit, err := ParseQueryInt(r, "limit", 0)
	if err != nil {
		return pagination.Params{}, err
	}
	return pagination.Params{Page: page, Limit: limit}, nil
}

// ParseCSV collects every value of the given keys, splitting comma-separated
// entries and dropping blanks. Both ?fish=a&fish=b and ?fish=a,b are accepted.
func ParseCSV(r *http.Request, keys ...string) []string {
	query := r.URL.Query()
	var out []string
	for _, key := range keys {
		for _, raw := range query[key] {
			for _, part := range strings.Split(raw, ",") {
				if value := strings.TrimSpace(part); value != "" {
					out = append(out, value)
				}
			}
		}
	}
	return out
}

// QueryString returns a trimmed query value capped at maxLen characters.
func QueryString(r *http.Request, key string, maxLen int) string {
	return TrimRunes(r.URL.Query().Get(key), maxLen)
}
