// Package sentiment scores free text with the VADER lexicon and rules.
package sentiment

import (
	"strings"

	"github.com/jonreiter/govader"

	"ReviewAnalyzer/internal/domain"
	"ReviewAnalyzer/internal/ports"
)

// Analyzer adapts govader to the review scorer port.
type Analyzer struct {
	vader *govader.SentimentIntensityAnalyzer
}

var _ ports.Scorer = (*Analyzer)(nil)

// NewAnalyzer loads the bundled VADER lexicon.
func NewAnalyzer() *Analyzer {
	return &Analyzer{vader: govader.NewSentimentIntensityAnalyzer()}
}

// Neutral is the result for text that carries no sentiment at all.
func Neutral() domain.Sentiment {
	return domain.Sentiment{Neutral: 1}
}

// Score returns the polarity of text. Empty text, or text without scorable tokens, is neutral.
func (a *Analyzer) Score(text string) domain.Sentiment {
	if strings.TrimSpace(text) == "" {
		return Neutral()
	}

	s := a.vader.PolarityScores(text)
	if s.Negative == 0 && s.Neutral == 0 && s.Positive == 0 {
		return Neutral()
	}
	return domain.Sentiment{
		Negative: s.Negative,
		Neutral:  s.Neutral,
		Positive: s.Positive,
		Compound: s.Compound,
	}
}
