package app

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/flashdeck/internal/card"
	"github.com/abhisek/flashdeck/internal/router"
	"github.com/abhisek/flashdeck/internal/session"
	"github.com/abhisek/flashdeck/internal/store"
)

func testModel(t *testing.T) (AppModel, *store.Store) {
	t.Helper()
	s, err := store.Open("file:" + t.Name() + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	p := session.NewPersister(s.SessionRepository(), zap.NewNop(), 4)
	t.Cleanup(p.Close)

	m := newAppModel(Options{Store: s, Persister: p, UserID: "u1", LocationName: "Library"})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return next.(AppModel), s
}

func TestAppModel_HomeShowsDecks(t *testing.T) {
	m, s := testModel(t)
	ctx := context.Background()

	d := &card.Deck{UserID: "u1", Name: "Capitals"}
	if err := s.Decks().Create(ctx, d); err != nil {
		t.Fatalf("Create deck: %v", err)
	}
	c := card.New(card.FrontBack{Front: "France", Back: "Paris"}, time.Now().Add(-time.Minute))
	if err := s.Cards().Create(ctx, d.ID, c); err != nil {
		t.Fatalf("Create card: %v", err)
	}

	next, _ := m.Update(m.Init()())
	m = next.(AppModel)

	view := m.render()
	for _, want := range []string{"Flashdeck", "u1 @ Library", "Capitals", "1 due"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestAppModel_EscAtRootIsNoop(t *testing.T) {
	m, _ := testModel(t)
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd != nil {
		t.Error("expected no command for Esc on the home screen")
	}
}

func TestAppModel_TooSmall(t *testing.T) {
	m, _ := testModel(t)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	if !strings.Contains(next.(AppModel).render(), "Terminal too small") {
		t.Error("expected min size message")
	}
}

func TestAppModel_PushThenEscPops(t *testing.T) {
	m, _ := testModel(t)
	next, _ := m.Update(router.PushScreenMsg{Screen: m.router.Active()})
	m = next.(AppModel)
	if m.router.Depth() != 2 {
		t.Fatalf("Depth = %d, want 2", m.router.Depth())
	}
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}
