package stats

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/flashdeck/internal/router"
	"github.com/abhisek/flashdeck/internal/screen"
	"github.com/abhisek/flashdeck/internal/session"
	"github.com/abhisek/flashdeck/internal/stats"
	"github.com/abhisek/flashdeck/internal/ui/layout"
	"github.com/abhisek/flashdeck/internal/ui/theme"
)

const recentLimit = 10

// SessionLister returns a user's completed sessions, most recent first.
type SessionLister interface {
	List(ctx context.Context, userID string) ([]session.Record, error)
}

type sessionsLoadedMsg struct {
	Sessions []session.Record
	Err      error
}

// StatsScreen shows overall accuracy, a per-location breakdown and the most
// recent sessions. Left and right cycle a location filter.
type StatsScreen struct {
	repo     SessionLister
	userID   string
	sessions []session.Record
	labels   []string // "" (all) followed by location labels
	filter   int
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*StatsScreen)(nil)
var _ screen.KeyHintProvider = (*StatsScreen)(nil)

// New creates a new StatsScreen.
func New(repo SessionLister, userID string) *StatsScreen {
	return &StatsScreen{repo: repo, userID: userID}
}

func (s *StatsScreen) Init() tea.Cmd {
	repo, userID := s.repo, s.userID
	return func() tea.Msg {
		recs, err := repo.List(context.Background(), userID)
		return sessionsLoadedMsg{Sessions: recs, Err: err}
	}
}

func (s *StatsScreen) Title() string {
	return "Stats"
}

func (s *StatsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "←→", Description: "Location"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *StatsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionsLoadedMsg:
		s.loaded = true
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.sessions = msg.Sessions
		s.labels = []string{""}
		for _, t := range stats.ByLocation(session.Results(msg.Sessions)) {
			s.labels = append(s.labels, t.Label)
		}
		s.filter = 0
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "left", "h":
			if len(s.labels) > 0 {
				s.filter = (s.filter + len(s.labels) - 1) % len(s.labels)
			}
		case "right", "l":
			if len(s.labels) > 0 {
				s.filter = (s.filter + 1) % len(s.labels)
			}
		}
	}
	return s, nil
}

// Filter returns the active location label, empty for all locations.
func (s *StatsScreen) Filter() string {
	if s.filter >= len(s.labels) {
		return ""
	}
	return s.labels[s.filter]
}

func (s *StatsScreen) filtered() []session.Record {
	label := s.Filter()
	if label == "" {
		return s.sessions
	}
	var out []session.Record
	for _, r := range s.sessions {
		if stats.LocationLabel(r.LocationName) == label {
			out = append(out, r)
		}
	}
	return out
}

func (s *StatsScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	if s.errMsg != "" {
		return center.Foreground(theme.Error).Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return center.Foreground(theme.TextDim).Render("\n\n  Loading stats...")
	}
	if len(s.sessions) == 0 {
		return center.Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No sessions yet. Study a deck to see your stats.")
	}

	recs := s.filtered()
	results := session.Results(recs)
	overall := stats.Aggregate(results)

	var b strings.Builder
	b.WriteString("\n")

	label := "All locations"
	if f := s.Filter(); f != "" {
		label = f
	}
	b.WriteString(center.Foreground(theme.Secondary).Bold(true).Render("◂ " + label + " ▸"))
	b.WriteString("\n\n")

	b.WriteString(center.Foreground(theme.Text).Render(fmt.Sprintf(
		"%d sessions   %d correct   %d incorrect   %s%%",
		overall.Sessions, overall.Correct, overall.Incorrect, stats.FormatPercent(overall.Percentage))))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", min(width-8, 60)))

	b.WriteString(center.Foreground(theme.TextDim).Render("By location"))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n")
	for _, t := range stats.ByLocation(results) {
		line := fmt.Sprintf("%-20s %3d sessions  %6s%%", t.Label, t.Sessions, stats.FormatPercent(t.Percentage))
		b.WriteString(center.Foreground(theme.Text).Render(line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.TextDim).Render("Recent sessions"))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n")
	for i, r := range recs {
		if i == recentLimit {
			break
		}
		pct := stats.FormatPercent(stats.Percentage(r.CorrectCount, r.IncorrectCount))
		line := fmt.Sprintf("%s  %-16s %-12s %d/%d  %s%%",
			r.CompletedAt.Local().Format("Jan 02 15:04"),
			r.DeckName,
			stats.LocationLabel(r.LocationName),
			r.CorrectCount, r.CorrectCount+r.IncorrectCount, pct)
		b.WriteString(center.Foreground(theme.Text).Render(line))
		b.WriteString("\n")
	}

	return b.String()
}
