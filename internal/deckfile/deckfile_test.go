package deckfile

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/flashdeck/internal/card"
)

func TestLoad_Capitals(t *testing.T) {
	f, err := Load("testdata/capitals.json")
	require.NoError(t, err)

	assert.Equal(t, "Capitals", f.Name)
	assert.Equal(t, "European capitals", f.Description)
	require.Len(t, f.Cards, 4)
	assert.Equal(t, card.FrontBack{Front: "Capital of France?", Back: "Paris"}, f.Cards[0])
	assert.Equal(t, card.MultipleChoice{Question: "Capital of Italy?", CorrectAnswer: "Rome", Distractors: []string{"Milan", "Naples"}}, f.Cards[1])
	assert.Equal(t, card.TypeAnswer{Prompt: "Capital of Spain?", AcceptableAnswers: []string{"Madrid"}}, f.Cards[2])
	assert.Equal(t, card.Cloze{TextWithCloze: "[[Berlin]] is the capital of Germany."}, f.Cards[3])
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("testdata/nope.json")
	require.Error(t, err)
	var ie *InvalidError
	assert.False(t, errors.As(err, &ie))
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `{`},
		{"missing name", `{"cards": []}`},
		{"empty name", `{"name": "", "cards": []}`},
		{"unknown top-level key", `{"name": "x", "cards": [], "extra": 1}`},
		{"unknown type", `{"name": "x", "cards": [{"type": "DRAWING"}]}`},
		{"front back without back", `{"name": "x", "cards": [{"front": "Q"}]}`},
		{"front back without front or image", `{"name": "x", "cards": [{"back": "A"}]}`},
		{"mc without distractors", `{"name": "x", "cards": [{"type": "MULTIPLE_CHOICE", "question": "Q", "correctAnswer": "a", "distractors": []}]}`},
		{"mc blank distractor", `{"name": "x", "cards": [{"type": "MULTIPLE_CHOICE", "question": "Q", "correctAnswer": "a", "distractors": [""]}]}`},
		{"type answer without answers", `{"name": "x", "cards": [{"type": "TYPE_ANSWER", "prompt": "Q"}]}`},
		{"cloze without span", `{"name": "x", "cards": [{"type": "CLOZE", "textWithCloze": "no spans"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			require.Error(t, err)
			var ie *InvalidError
			assert.True(t, errors.As(err, &ie), "want *InvalidError, got %T: %v", err, err)
		})
	}
}

func TestParse_EmptyDeck(t *testing.T) {
	f, err := Parse([]byte(`{"name": "Empty", "cards": []}`))
	require.NoError(t, err)
	assert.Equal(t, "Empty", f.Name)
	assert.Empty(t, f.Cards)
}

func TestNewCards(t *testing.T) {
	f, err := Load("testdata/capitals.json")
	require.NoError(t, err)

	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	cards := f.NewCards(now)
	require.Len(t, cards, 4)
	for _, c := range cards {
		assert.Equal(t, 0, c.SRSLevel)
		assert.True(t, c.IsDue(now))
		assert.Empty(t, c.ID)
	}
}
