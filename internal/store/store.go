// Package store holds the sentiment-ordered review collection.
package store

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"ReviewAnalyzer/internal/domain"
	"ReviewAnalyzer/internal/ports"
)

// Store owns the reviews and the frozen set of known locations.
// Reviews are kept sorted by compound score descending; equal scores keep insertion order.
type Store struct {
	mu        sync.RWMutex
	reviews   []domain.Review
	locations map[string]struct{}

	scorer   ports.Scorer
	observer ports.StoreObserver
	logger   *slog.Logger
}

var _ ports.ReviewStore = (*Store)(nil)

// Option customizes a Store.
type Option func(*Store)

// WithObserver reports store mutations to o.
func WithObserver(o ports.StoreObserver) Option {
	return func(s *Store) {
		s.observer = o
	}
}

// WithLogger attaches a logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		s.logger = l
	}
}

// New builds an empty store that scores seed rows with scorer.
func New(scorer ports.Scorer, opts ...Option) *Store {
	s := &Store{
		scorer:    scorer,
		locations: map[string]struct{}{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize scores and loads the seed rows, sorts once and freezes the known locations.
// Nothing is loaded when any row is malformed.
func (s *Store) Initialize(seed []domain.RawReview) error {
	if s.scorer == nil {
		return errors.New("store: scorer is not configured")
	}

	reviews := make([]domain.Review, 0, len(seed))
	locations := make(map[string]struct{})
	for i, raw := range seed {
		if strings.TrimSpace(raw.Location) == "" {
			return &domain.DataLoadError{Row: i, Field: "Location", Err: errors.New("missing value")}
		}
		if !raw.HasBody {
			return &domain.DataLoadError{Row: i, Field: "ReviewBody", Err: errors.New("missing field")}
		}

		id := raw.ID
		if id == "" {
			id = uuid.NewString()
		}
		sentiment := s.scorer.Score(raw.Body)
		reviews = append(reviews, domain.Review{
			ID:        id,
			Location:  raw.Location,
			Body:      raw.Body,
			Timestamp: raw.Timestamp,
			Sentiment: &sentiment,
		})
		locations[raw.Location] = struct{}{}
	}
	sortByCompound(reviews)

	s.mu.Lock()
	s.reviews = reviews
	s.locations = locations
	s.mu.Unlock()

	s.debug("seed loaded", "reviews", len(reviews), "locations", len(locations))
	if s.observer != nil {
		s.observer.ReviewsLoaded(len(reviews))
	}
	return nil
}

// Insert adds a scored review and restores the sort order.
// Duplicate ids are accepted; the store does not deduplicate.
func (s *Store) Insert(review domain.Review) error {
	if !review.Scored() {
		return fmt.Errorf("insert review %s: %w", review.ID, domain.ErrUnscoredReview)
	}
	review = review.Clone()

	s.mu.Lock()
	s.reviews = append(s.reviews, review)
	sortByCompound(s.reviews)
	size := len(s.reviews)
	s.mu.Unlock()

	s.debug("review inserted", "id", review.ID, "compound", review.Sentiment.Compound, "size", size)
	if s.observer != nil {
		s.observer.ReviewInserted(size)
	}
	return nil
}

// Snapshot returns a deep copy of the ordered collection.
func (s *Store) Snapshot() []domain.Review {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Review, len(s.reviews))
	for i, r := range s.reviews {
		out[i] = r.Clone()
	}
	return out
}

// IsKnownLocation reports whether location appeared in the seed dataset.
func (s *Store) IsKnownLocation(location string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.locations[location]
	return ok
}

// KnownLocations returns the known locations in lexical order.
func (s *Store) KnownLocations() []string {
	s.mu.RLock()
	out := make([]string, 0, len(s.locations))
	for loc := range s.locations {
		out = append(out, loc)
	}
	s.mu.RUnlock()

	sort.Strings(out)
	return out
}

// Len returns the number of stored reviews.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.reviews)
}

func sortByCompound(reviews []domain.Review) {
	slices.SortStableFunc(reviews, func(a, b domain.Review) int {
		if a.Sentiment == nil || b.Sentiment == nil {
			panic("store: unscored review reached sort")
		}
		switch {
		case a.Sentiment.Compound > b.Sentiment.Compound:
			return -1
		case a.Sentiment.Compound < b.Sentiment.Compound:
			return 1
		default:
			return 0
		}
	})
}

func (s *Store) debug(msg string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}
