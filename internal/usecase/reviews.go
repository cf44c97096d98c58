package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"ReviewAnalyzer/internal/domain"
	"ReviewAnalyzer/internal/ports"
	"ReviewAnalyzer/internal/query"
)

// Submission field names.
const (
	FieldLocation   = "Location"
	FieldReviewBody = "ReviewBody"
)

// ReviewServiceDeps wires the driven adapters into the review service.
type ReviewServiceDeps struct {
	Store    ports.ReviewStore
	Scorer   ports.Scorer
	Clock    clockwork.Clock
	Location *time.Location
	Logger   *slog.Logger
}

// ReviewService validates submissions, scores them and answers queries.
type ReviewService struct {
	store    ports.ReviewStore
	scorer   ports.Scorer
	clock    clockwork.Clock
	location *time.Location
	logger   *slog.Logger
	newID    func() string
}

// NewReviewService constructs the service; Clock defaults to the wall clock and Location to UTC.
func NewReviewService(deps ReviewServiceDeps) *ReviewService {
	clock := deps.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	loc := deps.Location
	if loc == nil {
		loc = time.UTC
	}
	return &ReviewService{
		store:    deps.Store,
		scorer:   deps.Scorer,
		clock:    clock,
		location: loc,
		logger:   deps.Logger,
		newID:    uuid.NewString,
	}
}

// Submit validates fields, constructs a review and inserts it scored. The body is stored as received.
// The returned review is the record as constructed, before its sentiment was attached.
func (s *ReviewService) Submit(ctx context.Context, fields map[string][]string) (domain.Review, error) {
	if err := ctx.Err(); err != nil {
		return domain.Review{}, err
	}

	review, err := s.newReview(fields)
	if err != nil {
		return domain.Review{}, err
	}

	sentiment := s.scorer.Score(review.Body)
	scored := review
	scored.Sentiment = &sentiment
	if err := s.store.Insert(scored); err != nil {
		return domain.Review{}, fmt.Errorf("insert review %s: %w", review.ID, err)
	}

	s.debug("review submitted", "id", review.ID, "location", review.Location, "compound", sentiment.Compound)
	return review, nil
}

// Query filters the current snapshot by the given query values.
func (s *ReviewService) Query(ctx context.Context, values url.Values) ([]domain.Review, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	params, err := query.ParseParams(values, s.location)
	if err != nil {
		return nil, err
	}

	result := query.Apply(s.store.Snapshot(), params)
	s.debug("reviews queried", "locations", len(params.Locations), "results", len(result))
	return result, nil
}

// Locations lists the locations submissions may use.
func (s *ReviewService) Locations() []string {
	return s.store.KnownLocations()
}

// Count returns the number of stored reviews.
func (s *ReviewService) Count() int {
	return s.store.Len()
}

func (s *ReviewService) newReview(fields map[string][]string) (domain.Review, error) {
	location, ok := last(fields, FieldLocation)
	location = strings.TrimSpace(location)
	if !ok || location == "" {
		return domain.Review{}, &domain.ValidationError{Field: FieldLocation, Reason: "parameter is not optional"}
	}
	if !s.store.IsKnownLocation(location) {
		return domain.Review{}, &domain.ValidationError{Field: FieldLocation, Reason: fmt.Sprintf("unknown location %q", location)}
	}

	body, ok := last(fields, FieldReviewBody)
	if !ok {
		return domain.Review{}, &domain.ValidationError{Field: FieldReviewBody, Reason: "parameter is not optional"}
	}

	return domain.Review{
		ID:        s.newID(),
		Location:  location,
		Body:      body,
		Timestamp: s.clock.Now().In(s.location).Truncate(time.Second),
	}, nil
}

func last(fields map[string][]string, name string) (string, bool) {
	vs, ok := fields[name]
	if !ok || len(vs) == 0 {
		return "", false
	}
	return vs[len(vs)-1], true
}

func (s *ReviewService) debug(msg string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}
