package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/flashdeck/internal/ui/layout"
)

// Screen is one page of the study UI: the deck list, a study session, its
// summary, or the stats view. The app draws the header and footer around it.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the content area only.
	View(width, height int) string

	// Title is shown in the header.
	Title() string
}

// KeyHintProvider replaces the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Refresher reloads data when the screen is shown again, such as due counts
// after a study session ends.
type Refresher interface {
	Refresh() tea.Cmd
}

// EscCapturer reports whether the screen wants Esc for itself. An
// in-progress session uses it to ask before ending early.
type EscCapturer interface {
	CapturesEsc() bool
}
