package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/flashdeck/internal/card"
	"github.com/abhisek/flashdeck/internal/router"
	"github.com/abhisek/flashdeck/internal/screen"
	"github.com/abhisek/flashdeck/internal/screens/home"
	sessionscreen "github.com/abhisek/flashdeck/internal/screens/session"
	statsscreen "github.com/abhisek/flashdeck/internal/screens/stats"
	"github.com/abhisek/flashdeck/internal/session"
	"github.com/abhisek/flashdeck/internal/store"
	"github.com/abhisek/flashdeck/internal/ui/layout"
)

// Options configures the terminal UI.
type Options struct {
	Store     *store.Store
	Persister *session.Persister
	UserID    string

	// LocationName tags every session started from this UI.
	LocationName string

	// StartDeck, when set, opens a study session for the deck on launch.
	// Leaving it returns to the deck list.
	StartDeck *card.Deck

	Logger *zap.Logger
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	start  screen.Screen
	status string
	width  int
	height int
}

// newAppModel creates a new AppModel with the deck list as its home screen.
func newAppModel(opts Options) AppModel {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	repo := opts.Store.SessionRepository()

	study := func(d card.Deck) screen.Screen {
		ctrl := session.New(repo, opts.Persister, session.Options{
			DeckID:       d.ID,
			DeckName:     d.Name,
			UserID:       opts.UserID,
			LocationName: opts.LocationName,
			Logger:       opts.Logger,
		})
		return sessionscreen.New(ctrl)
	}

	homeScreen := home.New(home.Deps{
		Decks:  opts.Store.Decks(),
		UserID: opts.UserID,
		Study:  study,
		Stats: func() screen.Screen {
			return statsscreen.New(opts.Store.Sessions(), opts.UserID)
		},
	})

	status := opts.UserID
	if opts.LocationName != "" {
		status += " @ " + opts.LocationName
	}
	m := AppModel{
		router: router.New(homeScreen),
		status: status,
	}
	if opts.StartDeck != nil {
		m.start = study(*opts.StartDeck)
	}
	return m
}

func (m AppModel) Init() tea.Cmd {
	initHome := m.router.Active().Init()
	if m.start == nil {
		return initHome
	}
	start := m.start
	return tea.Batch(initHome, func() tea.Msg {
		return router.PushScreenMsg{Screen: start}
	})
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if ec, ok := m.router.Active().(screen.EscCapturer); ok && ec.CapturesEsc() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

// render composes the header, active screen and footer for the current size.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.status, m.width)

	var footerHints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = hp.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	} else {
		footerHints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
