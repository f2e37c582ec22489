// Package answer judges learner input against a card.
package answer

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/abhisek/flashdeck/internal/card"
)

// Verdict is the outcome of checking one answer.
type Verdict struct {
	Correct bool

	// Feedback is shown after an incorrect answer. Empty when correct, and
	// always empty for multiple choice.
	Feedback string
}

// Evaluate compares the learner's input against the card.
//
// Matching rules:
// - Front/back, type-answer and cloze: whitespace is trimmed and comparison is case-insensitive
// - Type-answer: any acceptable answer matches
// - Cloze: any [[span]] matches
// - Multiple choice: the chosen option must equal the correct answer exactly
func Evaluate(c *card.Card, input string) Verdict {
	switch p := c.Payload.(type) {
	case card.FrontBack:
		if matches(input, p.Back) {
			return Verdict{Correct: true}
		}
		return Verdict{Feedback: "Answer: " + p.Back}

	case card.MultipleChoice:
		return Verdict{Correct: input == p.CorrectAnswer}

	case card.TypeAnswer:
		if matchesAny(input, p.AcceptableAnswers) {
			return Verdict{Correct: true}
		}
		var want string
		if len(p.AcceptableAnswers) > 0 {
			want = p.AcceptableAnswers[0]
		}
		return Verdict{Feedback: "Correct answer: " + want}

	case card.Cloze:
		if matchesAny(input, card.ClozeAnswers(p.TextWithCloze)) {
			return Verdict{Correct: true}
		}
		return Verdict{Feedback: card.RevealCloze(p.TextWithCloze)}
	}
	panic(fmt.Sprintf("answer: unreachable payload %T", c.Payload))
}

func matches(input, want string) bool {
	return strings.EqualFold(strings.TrimSpace(input), strings.TrimSpace(want))
}

func matchesAny(input string, wants []string) bool {
	for _, w := range wants {
		if matches(input, w) {
			return true
		}
	}
	return false
}

// Options returns the correct answer and the distractors in random order.
func Options(mc card.MultipleChoice, rng *rand.Rand) []string {
	opts := make([]string, 0, len(mc.Distractors)+1)
	opts = append(opts, mc.Distractors...)
	opts = append(opts, mc.CorrectAnswer)
	shuffle := rand.Shuffle
	if rng != nil {
		shuffle = rng.Shuffle
	}
	shuffle(len(opts), func(i, j int) {
		opts[i], opts[j] = opts[j], opts[i]
	})
	return opts
}

// Reveal returns the full answer text for display after checking.
func Reveal(c *card.Card) string {
	switch p := c.Payload.(type) {
	case card.FrontBack:
		return p.Back
	case card.MultipleChoice:
		return p.CorrectAnswer
	case card.TypeAnswer:
		return strings.Join(p.AcceptableAnswers, ", ")
	case card.Cloze:
		return card.RevealCloze(p.TextWithCloze)
	}
	panic(fmt.Sprintf("answer: unreachable payload %T", c.Payload))
}
