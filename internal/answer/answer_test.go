package answer

import (
	"math/rand/v2"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/abhisek/flashdeck/internal/card"
)

func mk(p card.Payload) *card.Card {
	return card.New(p, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
}

func TestEvaluate_FrontBack(t *testing.T) {
	c := mk(card.FrontBack{Front: "Capital of France?", Back: "Paris"})

	tests := []struct {
		input string
		want  bool
	}{
		{"Paris", true},
		{" Paris ", true},
		{"paris", true},
		{"PARIS\n", true},
		{"Lyon", false},
		{"", false},
	}
	for _, tc := range tests {
		got := Evaluate(c, tc.input)
		if got.Correct != tc.want {
			t.Errorf("Evaluate(%q) = %v, want %v", tc.input, got.Correct, tc.want)
		}
	}

	assert.Equal(t, "Answer: Paris", Evaluate(c, "Lyon").Feedback)
	assert.Empty(t, Evaluate(c, "paris").Feedback)
}

func TestEvaluate_TrimAndCaseInsensitive(t *testing.T) {
	cards := []*card.Card{
		mk(card.FrontBack{Front: "Q", Back: "Paris"}),
		mk(card.TypeAnswer{Prompt: "Q", AcceptableAnswers: []string{"Paris"}}),
		mk(card.Cloze{TextWithCloze: "[[Paris]] is in France."}),
	}
	for _, c := range cards {
		assert.Equal(t, Evaluate(c, "paris"), Evaluate(c, " Paris "), "variant %s", c.Variant())
	}
}

func TestEvaluate_MultipleChoiceExact(t *testing.T) {
	c := mk(card.MultipleChoice{Question: "Capital of France?", CorrectAnswer: "Paris", Distractors: []string{"paris", "Lyon"}})

	assert.True(t, Evaluate(c, "Paris").Correct)
	assert.False(t, Evaluate(c, "paris").Correct)
	assert.False(t, Evaluate(c, " Paris").Correct)
	assert.False(t, Evaluate(c, "Lyon").Correct)
	assert.Empty(t, Evaluate(c, "Lyon").Feedback)
}

func TestEvaluate_TypeAnswer(t *testing.T) {
	c := mk(card.TypeAnswer{Prompt: "2+2", AcceptableAnswers: []string{"4", "four"}})

	tests := []struct {
		input string
		want  bool
	}{
		{"4", true},
		{"Four", true},
		{"  FOUR ", true},
		{"5", false},
		{"for", false},
	}
	for _, tc := range tests {
		got := Evaluate(c, tc.input)
		if got.Correct != tc.want {
			t.Errorf("Evaluate(%q) = %v, want %v", tc.input, got.Correct, tc.want)
		}
	}
	assert.Equal(t, "Correct answer: 4", Evaluate(c, "5").Feedback)
}

func TestEvaluate_Cloze(t *testing.T) {
	c := mk(card.Cloze{TextWithCloze: "The [[sun]] is the star at the centre of the [[Solar System]]."})

	assert.True(t, Evaluate(c, "Sun").Correct)
	assert.True(t, Evaluate(c, "solar system").Correct)
	assert.False(t, Evaluate(c, "moon").Correct)
	assert.Equal(t, "The sun is the star at the centre of the Solar System.", Evaluate(c, "moon").Feedback)
}

func TestOptions_ContainsAllOnce(t *testing.T) {
	mc := card.MultipleChoice{Question: "Q", CorrectAnswer: "a", Distractors: []string{"b", "c", "d"}}
	rng := rand.New(rand.NewPCG(1, 2))

	for i := 0; i < 20; i++ {
		got := Options(mc, rng)
		sort.Strings(got)
		assert.Equal(t, []string{"a", "b", "c", "d"}, got)
	}
	// The underlying distractor list is not reordered.
	assert.Equal(t, []string{"b", "c", "d"}, mc.Distractors)
}

func TestOptions_Randomized(t *testing.T) {
	mc := card.MultipleChoice{Question: "Q", CorrectAnswer: "a", Distractors: []string{"b", "c", "d", "e"}}
	rng := rand.New(rand.NewPCG(7, 7))

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		opts := Options(mc, rng)
		seen[opts[0]] = true
	}
	if len(seen) < 2 {
		t.Errorf("first option never varied across 50 shuffles: %v", seen)
	}
}

func TestReveal(t *testing.T) {
	assert.Equal(t, "Paris", Reveal(mk(card.FrontBack{Front: "Q", Back: "Paris"})))
	assert.Equal(t, "4, four", Reveal(mk(card.TypeAnswer{Prompt: "2+2", AcceptableAnswers: []string{"4", "four"}})))
	assert.Equal(t, "The sun.", Reveal(mk(card.Cloze{TextWithCloze: "The [[sun]]."})))
}
