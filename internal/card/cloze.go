package card

import (
	"regexp"
	"strings"
)

// ClozePlaceholder replaces every hidden span in the question text.
const ClozePlaceholder = "[...]"

// clozeSpan matches a single [[answer]] span, non-greedy so that several
// spans are matched separately. Spans may cross line breaks.
var clozeSpan = regexp.MustCompile(`(?s)\[\[(.*?)]]`)

// ClozeAnswers returns the inner text of every [[...]] span in left-to-right order.
func ClozeAnswers(text string) []string {
	matches := clozeSpan.FindAllStringSubmatch(text, -1)
	answers := make([]string, 0, len(matches))
	for _, m := range matches {
		answers = append(answers, m[1])
	}
	return answers
}

// HasCloze reports whether text contains at least one [[...]] span.
func HasCloze(text string) bool {
	return clozeSpan.MatchString(text)
}

// MaskCloze replaces every span with ClozePlaceholder.
func MaskCloze(text string) string {
	masked, _ := MaskClozeOffsets(text)
	return masked
}

// MaskClozeOffsets masks text like MaskCloze and also returns the byte
// offset in the masked text where each placeholder starts. Placeholder-shaped
// text outside a span is not reported.
func MaskClozeOffsets(text string) (string, []int) {
	spans := clozeSpan.FindAllStringIndex(text, -1)
	offsets := make([]int, 0, len(spans))

	var b strings.Builder
	last := 0
	for _, sp := range spans {
		b.WriteString(text[last:sp[0]])
		offsets = append(offsets, b.Len())
		b.WriteString(ClozePlaceholder)
		last = sp[1]
	}
	b.WriteString(text[last:])
	return b.String(), offsets
}

// RevealCloze replaces every span with its inner text.
func RevealCloze(text string) string {
	return clozeSpan.ReplaceAllString(text, "$1")
}

// RestoreCloze puts answers back as [[...]] spans at the placeholder offsets
// reported by MaskClozeOffsets, in order.
func RestoreCloze(masked string, offsets []int, answers []string) string {
	var b strings.Builder
	last := 0
	for i, at := range offsets {
		if i >= len(answers) || at < last || at+len(ClozePlaceholder) > len(masked) {
			break
		}
		b.WriteString(masked[last:at])
		b.WriteString("[[")
		b.WriteString(answers[i])
		b.WriteString("]]")
		last = at + len(ClozePlaceholder)
	}
	b.WriteString(masked[last:])
	return b.String()
}
