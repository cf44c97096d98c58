package sentiment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreDeterministic(t *testing.T) {
	t.Parallel()

	a := NewAnalyzer()
	texts := []string{
		"The room was clean and the staff were friendly.",
		"Terrible service, never again!!",
		"It was okay, but the breakfast was awful.",
	}
	for _, text := range texts {
		assert.Equal(t, a.Score(text), a.Score(text), text)
	}
}

func TestScorePolarity(t *testing.T) {
	t.Parallel()

	a := NewAnalyzer()

	pos := a.Score("Absolutely wonderful stay!")
	assert.Greater(t, pos.Compound, 0.0)
	assert.Greater(t, pos.Positive, pos.Negative)

	neg := a.Score("The bathroom was dirty and the staff were rude.")
	assert.Less(t, neg.Compound, 0.0)
	assert.Greater(t, neg.Negative, neg.Positive)
}

func TestScoreEmptyIsNeutral(t *testing.T) {
	t.Parallel()

	a := NewAnalyzer()
	for _, text := range []string{"", "   ", "?!."} {
		s := a.Score(text)
		assert.Equal(t, Neutral(), s, "text %q", text)
	}

	s := a.Score("The hotel is on the corner.")
	assert.InDelta(t, 0.0, s.Compound, 1e-9)
	assert.InDelta(t, 1.0, s.Neutral, 1e-9)
}

func TestScoreMatchesReferenceValues(t *testing.T) {
	t.Parallel()

	a := NewAnalyzer()
	tests := []struct {
		text     string
		compound float64
	}{
		{text: "Absolutely wonderful stay!", compound: 0.6468},
		{text: "Room was filthy and the receptionist was rude", compound: -0.4588},
		{text: "Spotless, cozy and comfortable", compound: 0.5106},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.text, func(t *testing.T) {
			t.Parallel()

			s := a.Score(tt.text)
			assert.InDelta(t, tt.compound, s.Compound, 1e-4)
			assert.InDelta(t, 1.0, s.Negative+s.Neutral+s.Positive, 1e-2)
		})
	}
}

func TestScoreNegationFlips(t *testing.T) {
	t.Parallel()

	a := NewAnalyzer()
	good := a.Score("the food was good")
	notGood := a.Score("the food was not good")
	didnt := a.Score("I didn't enjoy the food")

	assert.Greater(t, good.Compound, 0.0)
	assert.Less(t, notGood.Compound, 0.0)
	assert.Less(t, didnt.Compound, 0.0)
}

func TestScoreBoostersAndEmphasis(t *testing.T) {
	t.Parallel()

	a := NewAnalyzer()
	plain := a.Score("the view was nice")
	boosted := a.Score("the view was very nice")
	slightly := a.Score("the view was slightly nice")
	shouted := a.Score("the view was NICE")
	excited := a.Score("the view was nice!!!")

	assert.Greater(t, boosted.Compound, plain.Compound)
	assert.Less(t, slightly.Compound, plain.Compound)
	assert.Greater(t, shouted.Compound, plain.Compound)
	assert.Greater(t, excited.Compound, plain.Compound)
}

func TestScoreButShiftsWeight(t *testing.T) {
	t.Parallel()

	a := NewAnalyzer()
	s := a.Score("The location is great but the room was terrible")
	assert.Less(t, s.Compound, 0.0)
}

func TestScoreBounds(t *testing.T) {
	t.Parallel()

	a := NewAnalyzer()
	texts := []string{
		"great great great great great great great great amazing wonderful love!!!!",
		"awful horrible worst disgusting terrible filthy nasty!!!!",
	}
	for _, text := range texts {
		s := a.Score(text)
		assert.GreaterOrEqual(t, s.Compound, -1.0)
		assert.LessOrEqual(t, s.Compound, 1.0)
		for _, v := range []float64{s.Negative, s.Neutral, s.Positive} {
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 1.0)
		}
	}
}
