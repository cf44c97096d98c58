package domain

import "time"

// TimestampLayout is the wire and seed format of review timestamps.
const TimestampLayout = "2006-01-02 15:04:05"

// Sentiment holds polarity proportions and the normalized compound score.
type Sentiment struct {
	Negative float64 `json:"neg"`
	Neutral  float64 `json:"neu"`
	Positive float64 `json:"pos"`
	Compound float64 `json:"compound"`
}

// Review is a customer review as held by the store.
type Review struct {
	ID        string
	Location  string
	Body      string
	Timestamp time.Time
	Sentiment *Sentiment
}

// Scored reports whether the sentiment annotation is attached.
func (r Review) Scored() bool {
	return r.Sentiment != nil
}

// Clone returns a copy that shares no memory with r.
func (r Review) Clone() Review {
	if r.Sentiment != nil {
		s := *r.Sentiment
		r.Sentiment = &s
	}
	return r
}

// RawReview is an unscored seed row delivered by a seed loader.
type RawReview struct {
	ID        string
	Location  string
	Body      string
	Timestamp time.Time
	// HasBody is false when the source row carries no review text field at all.
	HasBody bool
}
