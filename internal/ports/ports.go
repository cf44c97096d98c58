package ports

import (
	"context"

	"ReviewAnalyzer/internal/domain"
)

// Scorer turns review text into polarity scores.
type Scorer interface {
	Score(text string) domain.Sentiment
}

// SeedSource delivers the initial batch of raw reviews.
type SeedSource interface {
	LoadSeed(ctx context.Context) ([]domain.RawReview, error)
}

// ReviewStore holds the sentiment-ordered collection.
type ReviewStore interface {
	Insert(review domain.Review) error
	Snapshot() []domain.Review
	IsKnownLocation(location string) bool
	KnownLocations() []string
	Len() int
}

// TextCleaner normalizes free text before it becomes a review body.
type TextCleaner interface {
	Clean(text string) string
}

// StoreObserver receives store mutations for instrumentation.
type StoreObserver interface {
	ReviewsLoaded(count int)
	ReviewInserted(size int)
}
