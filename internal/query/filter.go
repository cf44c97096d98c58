// Package query filters store snapshots by location and date range.
package query

import (
	"net/url"
	"strings"
	"time"

	"ReviewAnalyzer/internal/domain"
)

// DateLayout is the calendar date format accepted for date bounds.
const DateLayout = "2006-01-02"

// Query string parameter names.
const (
	ParamLocation  = "location"
	ParamStartDate = "start_date"
	ParamEndDate   = "end_date"
)

// Params selects reviews. A zero Params matches everything.
type Params struct {
	// Locations is a membership set; a review matches when its location is any of them.
	Locations []string
	// Start and End are inclusive bounds at 00:00:00 of their date.
	Start *time.Time
	End   *time.Time
}

// ParseParams reads location, start_date and end_date from values.
// Dates are interpreted at midnight in loc. A repeated date keeps its last value,
// and a blank date counts as not supplied.
func ParseParams(values url.Values, loc *time.Location) (Params, error) {
	if loc == nil {
		loc = time.UTC
	}

	var p Params
	for _, v := range values[ParamLocation] {
		if v != "" {
			p.Locations = append(p.Locations, v)
		}
	}

	var err error
	if p.Start, err = parseDate(values, ParamStartDate, loc); err != nil {
		return Params{}, err
	}
	if p.End, err = parseDate(values, ParamEndDate, loc); err != nil {
		return Params{}, err
	}
	return p, nil
}

func parseDate(values url.Values, name string, loc *time.Location) (*time.Time, error) {
	vs := values[name]
	if len(vs) == 0 {
		return nil, nil
	}
	raw := strings.TrimSpace(vs[len(vs)-1])
	if raw == "" {
		return nil, nil
	}
	day, err := time.ParseInLocation(DateLayout, raw, loc)
	if err != nil {
		return nil, &domain.QueryParameterError{Param: name, Value: raw, Err: err}
	}
	return &day, nil
}

// Apply filters reviews by location, then lower bound, then upper bound.
// The relative order of reviews is preserved and the input is not modified.
func Apply(reviews []domain.Review, p Params) []domain.Review {
	out := reviews
	if len(p.Locations) > 0 {
		set := make(map[string]struct{}, len(p.Locations))
		for _, loc := range p.Locations {
			set[loc] = struct{}{}
		}
		out = keep(out, func(r domain.Review) bool {
			_, ok := set[r.Location]
			return ok
		})
	}
	if p.Start != nil {
		start := *p.Start
		out = keep(out, func(r domain.Review) bool {
			return !r.Timestamp.Before(start)
		})
	}
	if p.End != nil {
		end := *p.End
		out = keep(out, func(r domain.Review) bool {
			return !r.Timestamp.After(end)
		})
	}
	return out
}

func keep(reviews []domain.Review, pred func(domain.Review) bool) []domain.Review {
	out := make([]domain.Review, 0, len(reviews))
	for _, r := range reviews {
		if pred(r) {
			out = append(out, r)
		}
	}
	return out
}
