package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/flashdeck/internal/router"
	"github.com/abhisek/flashdeck/internal/screen"
	"github.com/abhisek/flashdeck/internal/session"
	"github.com/abhisek/flashdeck/internal/ui/components"
	"github.com/abhisek/flashdeck/internal/ui/layout"
	"github.com/abhisek/flashdeck/internal/ui/theme"
)

// SummaryScreen displays the session summary.
type SummaryScreen struct {
	summary session.Summary
	done    components.Button
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(summary session.Summary) *SummaryScreen {
	return &SummaryScreen{
		summary: summary,
		done: components.NewButton("Back to decks", true, func() tea.Cmd {
			return func() tea.Msg { return router.PopScreenMsg{} }
		}),
	}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Session Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.done, cmd = s.done.Update(msg)
	return s, cmd
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	center := func() lipgloss.Style {
		return lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	}

	var b strings.Builder

	b.WriteString(center().Foreground(theme.Primary).Bold(true).Render("Session complete!"))
	b.WriteString("\n\n")

	sub := sum.DeckName
	if sum.LocationName != "" {
		sub += " @ " + sum.LocationName
	}
	b.WriteString(center().Foreground(theme.TextDim).Render(sub))
	b.WriteString("\n\n")

	stats := fmt.Sprintf("%s   %s   %s",
		theme.Correct.Render(fmt.Sprintf("Correct: %d", sum.Correct)),
		theme.Incorrect.Render(fmt.Sprintf("Incorrect: %d", sum.Incorrect)),
		lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).
			Render(fmt.Sprintf("Score: %s%%", sum.FormattedPercentage())),
	)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, stats))
	b.WriteString("\n")

	if sum.Skipped > 0 {
		b.WriteString("\n")
		b.WriteString(center().Foreground(theme.TextDim).Italic(true).
			Render(fmt.Sprintf("%d card(s) could not be read and were skipped", sum.Skipped)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.done.View()))

	return b.String()
}
