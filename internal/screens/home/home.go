package home

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/flashdeck/internal/card"
	"github.com/abhisek/flashdeck/internal/router"
	"github.com/abhisek/flashdeck/internal/screen"
	"github.com/abhisek/flashdeck/internal/ui/components"
	"github.com/abhisek/flashdeck/internal/ui/layout"
	"github.com/abhisek/flashdeck/internal/ui/theme"
)

// DeckLister returns a user's decks with their due counts.
type DeckLister interface {
	List(ctx context.Context, userID string, now time.Time) ([]card.Deck, error)
}

// Deps wires the home screen to storage and to the screens it opens.
type Deps struct {
	Decks  DeckLister
	UserID string

	// Study builds the study screen for a deck.
	Study func(d card.Deck) screen.Screen

	// Stats builds the stats screen. Optional.
	Stats func() screen.Screen

	Now func() time.Time
}

type decksLoadedMsg struct {
	Decks []card.Deck
	Err   error
}

// HomeScreen lists the user's decks with how many cards are due in each.
type HomeScreen struct {
	deps   Deps
	decks  []card.Deck
	menu   components.Menu
	loaded bool
	errMsg string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)
var _ screen.Refresher = (*HomeScreen)(nil)

// New creates a new HomeScreen. Decks are loaded by Init.
func New(deps Deps) *HomeScreen {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	h := &HomeScreen{deps: deps}
	h.menu = components.NewMenu(h.menuItems())
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	deps := h.deps
	return func() tea.Msg {
		decks, err := deps.Decks.List(context.Background(), deps.UserID, deps.Now())
		return decksLoadedMsg{Decks: decks, Err: err}
	}
}

// Refresh reloads the decks so due counts reflect the session just finished.
func (h *HomeScreen) Refresh() tea.Cmd {
	return h.Init()
}

func (h *HomeScreen) Title() string {
	return "Decks"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Study"},
		{Key: "r", Description: "Reload"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case decksLoadedMsg:
		h.loaded = true
		if msg.Err != nil {
			h.errMsg = msg.Err.Error()
			return h, nil
		}
		h.errMsg = ""
		h.decks = msg.Decks
		selected := h.menu.Selected
		h.menu = components.NewMenu(h.menuItems())
		if selected < len(h.menu.Items) {
			h.menu.Selected = selected
		}
		return h, nil

	case tea.KeyMsg:
		if msg.String() == "r" {
			return h, h.Init()
		}
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) menuItems() []components.MenuItem {
	items := make([]components.MenuItem, 0, len(h.decks)+2)
	for _, d := range h.decks {
		item := components.MenuItem{Label: d.Name}
		if d.DueCardsCount > 0 {
			item.Badge = fmt.Sprintf("%d due", d.DueCardsCount)
		}
		if h.deps.Study != nil {
			item.Action = func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: h.deps.Study(d)}
				}
			}
		}
		items = append(items, item)
	}
	if h.deps.Stats != nil {
		items = append(items, components.MenuItem{Label: "Stats", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: h.deps.Stats()}
			}
		}})
	}
	items = append(items, components.MenuItem{Label: "Quit", Action: func() tea.Cmd {
		return tea.Quit
	}})
	return items
}

// DueTotal returns the number of due cards across all decks.
func (h *HomeScreen) DueTotal() int {
	n := 0
	for _, d := range h.decks {
		n += d.DueCardsCount
	}
	return n
}

func (h *HomeScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.Primary).Bold(true).Render("F L A S H D E C K"))
	b.WriteString("\n\n")

	switch {
	case h.errMsg != "":
		b.WriteString(center.Foreground(theme.Error).Render("Error: " + h.errMsg))
		b.WriteString("\n\n")
	case !h.loaded:
		b.WriteString(center.Foreground(theme.TextDim).Render("Loading decks..."))
		b.WriteString("\n\n")
	case len(h.decks) == 0:
		b.WriteString(center.Foreground(theme.TextDim).Italic(true).
			Render("No decks yet. Create one with: flashdeck deck add <name>"))
		b.WriteString("\n\n")
	default:
		summary := fmt.Sprintf("%d decks · %d cards due", len(h.decks), h.DueTotal())
		b.WriteString(center.Foreground(theme.Secondary).Bold(true).Render(summary))
		b.WriteString("\n\n")
	}

	menu := theme.Panel.Width(min(width-8, 50)).Render(strings.TrimRight(h.menu.View(), "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, menu))
	return b.String()
}
