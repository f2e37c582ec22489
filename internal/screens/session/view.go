package session

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/flashdeck/internal/card"
	"github.com/abhisek/flashdeck/internal/ui/components"
	"github.com/abhisek/flashdeck/internal/ui/theme"
)

func centered(width int) lipgloss.Style {
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
}

// renderHeaderLine renders the deck name with progress and the running score.
func (s *SessionScreen) renderHeaderLine(width int) string {
	p := s.ctrl.Progress()
	correct, incorrect := s.ctrl.Counts()

	deck := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render("  " + s.ctrl.Summary().DeckName)

	score := lipgloss.NewStyle().Foreground(theme.Success).Render(fmt.Sprintf("✓ %d", correct)) +
		"  " +
		lipgloss.NewStyle().Foreground(theme.Error).Render(fmt.Sprintf("✗ %d", incorrect))

	line := deck
	if pad := width - lipgloss.Width(deck) - lipgloss.Width(score) - 4; pad > 0 {
		line += strings.Repeat(" ", pad) + score
	}

	bar := components.NewProgressBar(p.Current, p.Total, min(width-8, 60))

	var b strings.Builder
	b.WriteString(line)
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")
	return b.String()
}

// renderPrompt renders the card face.
func (s *SessionScreen) renderPrompt(width int) string {
	c := s.ctrl.Current()
	if c == nil {
		return ""
	}

	text := c.Prompt()
	if cz, ok := c.Payload.(card.Cloze); ok {
		text = highlightBlanks(card.MaskClozeOffsets(cz.TextWithCloze))
	}
	if fb, ok := c.Payload.(card.FrontBack); ok && fb.FrontImageRef != "" {
		img := lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render("[image: " + fb.FrontImageRef + "]")
		if text == "" {
			text = img
		} else {
			text += "\n" + img
		}
	}

	kind := lipgloss.NewStyle().Foreground(theme.TextDim).Render(c.Variant().DisplayName())
	face := theme.Prompt.Width(min(width-8, 70)).Align(lipgloss.Center).Render(text)

	return centered(width).Render(kind) + "\n" +
		lipgloss.PlaceHorizontal(width, lipgloss.Center, face) + "\n\n"
}

// highlightBlanks styles only the placeholders at offsets, leaving any
// literal "[...]" in the sentence alone.
func highlightBlanks(masked string, offsets []int) string {
	var b strings.Builder
	last := 0
	for _, at := range offsets {
		b.WriteString(masked[last:at])
		b.WriteString(theme.ClozeBlank.Render(card.ClozePlaceholder))
		last = at + len(card.ClozePlaceholder)
	}
	b.WriteString(masked[last:])
	return b.String()
}

// renderAnswerArea renders either the option list or the text input.
func (s *SessionScreen) renderAnswerArea(width int) string {
	if s.mcActive {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, s.mc.View())
	}
	return centered(width).Render("Answer: " + s.input.View())
}

// renderQuestionView renders the card awaiting an answer.
func (s *SessionScreen) renderQuestionView(width int) string {
	var b strings.Builder
	b.WriteString(s.renderHeaderLine(width))
	b.WriteString(s.renderPrompt(width))
	b.WriteString(s.renderAnswerArea(width))
	if s.mcActive {
		b.WriteString("\n")
		b.WriteString(centered(width).Foreground(theme.TextDim).
			Render(fmt.Sprintf("Select (1-%d) or use arrows + Enter", len(s.mc.Options))))
	}
	return b.String()
}

// renderFeedback renders the answered card with the verdict.
func (s *SessionScreen) renderFeedback(width int) string {
	v := s.ctrl.Verdict()

	var b strings.Builder
	b.WriteString(s.renderHeaderLine(width))
	b.WriteString(s.renderPrompt(width))
	b.WriteString(s.renderAnswerArea(width))
	b.WriteString("\n\n")

	if v.Correct {
		b.WriteString(centered(width).Foreground(theme.Success).Bold(true).Render("Correct!"))
	} else {
		b.WriteString(centered(width).Foreground(theme.Error).Bold(true).Render("Not quite"))
		if v.Feedback != "" {
			b.WriteString("\n")
			b.WriteString(centered(width).Foreground(theme.TextDim).Render(v.Feedback))
		}
	}

	b.WriteString("\n\n")
	b.WriteString(centered(width).Foreground(theme.TextDim).Render("Press any key to continue..."))
	return b.String()
}

// renderQuitConfirm renders the quit confirmation dialog.
func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(centered(width).Foreground(theme.Text).Bold(true).Render("End session early?"))
	b.WriteString("\n")
	b.WriteString(centered(width).Foreground(theme.TextDim).Render("Cards you already answered keep their new schedule."))
	b.WriteString("\n\n")
	b.WriteString(centered(width).Foreground(theme.Success).Render("[Y] Yes, end session"))
	b.WriteString("\n")
	b.WriteString(centered(width).Foreground(theme.Primary).Render("[N] No, keep going"))
	return b.String()
}

func renderLoading(width int) string {
	return centered(width).Foreground(theme.TextDim).Render("\n\n\n  Loading due cards...")
}

func renderNothingDue(width int) string {
	return centered(width).Foreground(theme.TextDim).Italic(true).
		Render("\n\n\n  Nothing due in this deck right now.\n\n  Press any key to go back.")
}

func renderError(width int, err error) string {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	return centered(width).Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  Error: %s\n\n  Press any key to go back.", msg))
}
