package session

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/flashdeck/internal/answer"
	"github.com/abhisek/flashdeck/internal/card"
	"github.com/abhisek/flashdeck/internal/router"
	"github.com/abhisek/flashdeck/internal/screen"
	"github.com/abhisek/flashdeck/internal/screens/summary"
	sess "github.com/abhisek/flashdeck/internal/session"
	"github.com/abhisek/flashdeck/internal/ui/components"
	"github.com/abhisek/flashdeck/internal/ui/layout"
)

const answerCharLimit = 200

// SessionScreen renders a study session and forwards the learner's input
// to the controller.
type SessionScreen struct {
	ctrl *sess.Controller

	input    components.TextInput
	mc       components.MultiChoice
	mcActive bool

	showingQuitConfirm bool
}

var _ screen.Screen = (*SessionScreen)(nil)
var _ screen.KeyHintProvider = (*SessionScreen)(nil)
var _ screen.EscCapturer = (*SessionScreen)(nil)

// New creates a SessionScreen for a controller that has not been loaded yet.
func New(ctrl *sess.Controller) *SessionScreen {
	return &SessionScreen{
		ctrl:  ctrl,
		input: components.NewTextInput("Type your answer...", answerCharLimit),
	}
}

func (s *SessionScreen) Init() tea.Cmd {
	ctrl := s.ctrl
	return func() tea.Msg {
		return sessionLoadedMsg{Err: ctrl.Load(context.Background())}
	}
}

func (s *SessionScreen) Title() string {
	return "Study"
}

// CapturesEsc keeps the app from popping the screen while cards remain, so
// Esc can ask for confirmation first.
func (s *SessionScreen) CapturesEsc() bool {
	switch s.ctrl.Phase() {
	case sess.PhasePresenting, sess.PhaseFeedback:
		return true
	}
	return false
}

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	if s.showingQuitConfirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "End session"},
			{Key: "N", Description: "Keep going"},
		}
	}
	switch s.ctrl.Phase() {
	case sess.PhasePresenting:
		if s.mcActive {
			return []layout.KeyHint{
				{Key: "1-9", Description: "Choose"},
				{Key: "↑↓", Description: "Navigate"},
				{Key: "Enter", Description: "Submit"},
				{Key: "Esc", Description: "Quit"},
			}
		}
		return []layout.KeyHint{
			{Key: "Enter", Description: "Submit"},
			{Key: "Esc", Description: "Quit"},
		}
	case sess.PhaseFeedback:
		return []layout.KeyHint{
			{Key: "any key", Description: "Continue"},
		}
	case sess.PhaseLoading:
		return nil
	}
	return []layout.KeyHint{
		{Key: "any key", Description: "Back"},
	}
}

func (s *SessionScreen) View(width, height int) string {
	if s.showingQuitConfirm {
		return renderQuitConfirm(width)
	}
	switch s.ctrl.Phase() {
	case sess.PhaseLoading:
		return renderLoading(width)
	case sess.PhaseFailed:
		return renderError(width, s.ctrl.Err())
	case sess.PhaseNothingDue:
		return renderNothingDue(width)
	case sess.PhaseFeedback:
		return s.renderFeedback(width)
	}
	return s.renderQuestionView(width)
}

func (s *SessionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionLoadedMsg:
		return s.handleLoaded(msg)
	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.ctrl.Phase() == sess.PhasePresenting && !s.mcActive {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *SessionScreen) handleLoaded(msg sessionLoadedMsg) (screen.Screen, tea.Cmd) {
	// Failure and the empty deck are rendered from the controller's phase.
	if msg.Err != nil || s.ctrl.Phase() != sess.PhasePresenting {
		return s, nil
	}
	return s, s.setupCard()
}

// setupCard prepares the input widget for the card now being presented.
func (s *SessionScreen) setupCard() tea.Cmd {
	c := s.ctrl.Current()
	if c == nil {
		return nil
	}
	if c.Variant() == card.VariantMultipleChoice {
		s.mcActive = true
		s.mc = components.NewMultiChoice(s.ctrl.Options())
		return nil
	}
	s.mcActive = false
	s.input = components.NewTextInput(placeholderFor(c.Variant()), answerCharLimit)
	return s.input.Init()
}

func placeholderFor(v card.Variant) string {
	switch v {
	case card.VariantCloze:
		return "Fill in the blank..."
	case card.VariantFrontBack:
		return "Recall the back..."
	}
	return "Type your answer..."
}

func (s *SessionScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.showingQuitConfirm {
		switch key {
		case "y", "Y":
			s.showingQuitConfirm = false
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "n", "N", "esc":
			s.showingQuitConfirm = false
		}
		return s, nil
	}

	switch s.ctrl.Phase() {
	case sess.PhaseLoading:
		return s, nil

	case sess.PhaseFailed, sess.PhaseNothingDue, sess.PhaseCompleted:
		return s, func() tea.Msg { return router.PopScreenMsg{} }

	case sess.PhaseFeedback:
		if key == "esc" {
			s.showingQuitConfirm = true
			return s, nil
		}
		return s.advance()

	case sess.PhasePresenting:
		if key == "esc" {
			s.showingQuitConfirm = true
			return s, nil
		}
		if s.mcActive {
			s.mc, _ = s.mc.Update(msg)
			if s.mc.Submitted {
				return s.submit(s.mc.Chosen())
			}
			return s, nil
		}
		if key == "enter" {
			if s.input.Blank() {
				return s, nil
			}
			return s.submit(s.input.Value())
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}

	return s, nil
}

func (s *SessionScreen) submit(input string) (screen.Screen, tea.Cmd) {
	c := s.ctrl.Current()
	v, err := s.ctrl.Submit(input)
	if err != nil {
		return s, nil
	}
	if s.mcActive {
		s.mc.Reveal(answer.Reveal(c))
	} else {
		s.input.Submit(v.Correct)
	}
	return s, nil
}

func (s *SessionScreen) advance() (screen.Screen, tea.Cmd) {
	if err := s.ctrl.Advance(); err != nil {
		return s, nil
	}
	if s.ctrl.Phase() == sess.PhaseCompleted {
		sum := s.ctrl.Summary()
		return s, func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: summary.New(sum)}
		}
	}
	return s, s.setupCard()
}
