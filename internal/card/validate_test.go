package card

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		payload Payload
		wantErr string
	}{
		{"front back ok", FrontBack{Front: "Q", Back: "A"}, ""},
		{"front back image only", FrontBack{FrontImageRef: "img.png", Back: "A"}, ""},
		{"front back missing front", FrontBack{Back: "A"}, "Front is required when there is no FrontImageRef"},
		{"front back missing back", FrontBack{Front: "Q"}, "Back is required"},
		{"mc ok", MultipleChoice{Question: "Q", CorrectAnswer: "a", Distractors: []string{"b"}}, ""},
		{"mc no distractors", MultipleChoice{Question: "Q", CorrectAnswer: "a"}, "Distractors needs at least 1 entry"},
		{"mc blank distractor", MultipleChoice{Question: "Q", CorrectAnswer: "a", Distractors: []string{""}}, "is required"},
		{"mc missing answer", MultipleChoice{Question: "Q", Distractors: []string{"b"}}, "CorrectAnswer is required"},
		{"type answer ok", TypeAnswer{Prompt: "2+2", AcceptableAnswers: []string{"4"}}, ""},
		{"type answer none", TypeAnswer{Prompt: "2+2"}, "AcceptableAnswers needs at least 1 entry"},
		{"cloze ok", Cloze{TextWithCloze: "The [[sun]]"}, ""},
		{"cloze no span", Cloze{TextWithCloze: "The sun"}, "must contain at least one [[...]] span"},
		{"cloze empty", Cloze{}, "TextWithCloze is required"},
		{"cloze multiline span", Cloze{TextWithCloze: "The [[rising\nsun]]"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.payload)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSplitAnswers(t *testing.T) {
	assert.Equal(t, []string{"4", "four", "IV"}, SplitAnswers(" 4, four ,,IV ,"))
	assert.Nil(t, SplitAnswers(" , "))
}

func TestTrimDistractors(t *testing.T) {
	assert.Equal(t, []string{"Mars", "Venus"}, TrimDistractors([]string{" Mars", "", "  ", "Venus "}))
}

func TestValidate_ClozeRuleRegistered(t *testing.T) {
	err := Validate(Cloze{TextWithCloze: "no span"})
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "undefined validation")
	assert.Contains(t, err.Error(), "[[...]]")
}
