package card

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClozeAnswers(t *testing.T) {
	tests := []struct {
		text string
		want []string
	}{
		{"The [[sun]] is the star at the centre of the [[Solar System]].", []string{"sun", "Solar System"}},
		{"[[a]][[b]]", []string{"a", "b"}},
		{"no spans here", []string{}},
		{"empty [[]] span", []string{""}},
		{"unclosed [[span", []string{}},
		{"line [[a\nb]] span", []string{"a\nb"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClozeAnswers(tt.text), "ClozeAnswers(%q)", tt.text)
	}
}

func TestMaskAndReveal(t *testing.T) {
	text := "The [[sun]] is the star at the centre of the [[Solar System]]."
	assert.Equal(t, "The [...] is the star at the centre of the [...].", MaskCloze(text))
	assert.Equal(t, "The sun is the star at the centre of the Solar System.", RevealCloze(text))
}

func TestRevealCloze_DollarSignsKept(t *testing.T) {
	assert.Equal(t, "costs $5", RevealCloze("costs [[$5]]"))
}

func TestRestoreCloze_InvertsMask(t *testing.T) {
	texts := []string{
		"",
		"plain sentence",
		"[[only]]",
		"The [[sun]] is a [[star]].",
		"[[a]][[b]][[c]]",
		"edge [[]] case",
		"brackets [single] stay [[put]]",
		"Use [...] for ellipsis; the [[sun]] rises.",
		"[...][[a]][...]",
		"spans [[cross\nlines]] too",
	}
	for _, text := range texts {
		masked, offsets := MaskClozeOffsets(text)
		got := RestoreCloze(masked, offsets, ClozeAnswers(text))
		assert.Equal(t, text, got, "round trip of %q", text)
	}
}

func TestHasCloze(t *testing.T) {
	assert.True(t, HasCloze("a [[b]] c"))
	assert.False(t, HasCloze("a [[b c"))
	assert.False(t, HasCloze("a [b] c"))
}

func TestMaskClozeOffsets(t *testing.T) {
	masked, offsets := MaskClozeOffsets("Use [...] for the [[sun]].")
	assert.Equal(t, "Use [...] for the [...].", masked)
	assert.Equal(t, []int{18}, offsets)

	masked, offsets = MaskClozeOffsets("plain")
	assert.Equal(t, "plain", masked)
	assert.Empty(t, offsets)
}
