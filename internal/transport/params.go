package transport

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/ganot/playbook/internal/browse"
	"github.com/go-chi/chi/v5"
)

// browseQuery reads the shared calendar filters. include_hidden is only
// honored for an admin session.
func browseQuery(r *http.Request) (browse.Query, error) {
	values := r.URL.Query()

	year, err := intParam(values.Get("year"), "year")
	if err != nil {
		return browse.Query{}, err
	}
	month, err := intParam(values.Get("month"), "month")
	if err != nil {
		return browse.Query{}, err
	}
	ages, err := agesParam(values.Get("ages"))
	if err != nil {
		return browse.Query{}, err
	}
	includeHidden, err := boolParam(values.Get("include_hidden"), "include_hidden")
	if err != nil {
		return browse.Query{}, err
	}
	if _, ok := AdminFromContext(r.Context()); !ok {
		includeHidden = false
	}

	return browse.Query{
		Sport:         strings.TrimSpace(values.Get("sport")),
		Year:          year,
		Month:         month,
		Ages:          ages,
		ProfileID:     strings.TrimSpace(values.Get("profile")),
		IncludeHidden: includeHidden,
	}, nil
}

func intParam(raw, name string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", ErrBadRequest, name)
	}
	return n, nil
}

func boolParam(raw, name string) (bool, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%w: %s must be a boolean", ErrBadRequest, name)
	}
	return b, nil
}

// agesParam parses a comma-separated age list such as "7,10".
func agesParam(raw string) ([]int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	ages := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("%w: ages must be comma-separated integers", ErrBadRequest)
		}
		ages = append(ages, n)
	}
	return ages, nil
}

func idParam(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid %s", ErrBadRequest, name)
	}
	return id, nil
}

func optionalID(raw, name string) (*int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, fmt.Errorf("%w: invalid %s", ErrBadRequest, name)
	}
	return &id, nil
}
