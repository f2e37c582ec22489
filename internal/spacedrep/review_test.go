package spacedrep

import (
	"testing"
	"time"

	"github.com/abhisek/flashdeck/internal/card"
)

func newCard(level int, due time.Time) *card.Card {
	return &card.Card{
		ID:           "c1",
		SRSLevel:     level,
		NextReviewAt: due,
		Payload:      card.FrontBack{Front: "Q", Back: "A"},
	}
}

func TestApply_CorrectUsesSessionClock(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	// Card was due a week ago; the next due time is measured from now.
	c := newCard(0, now.Add(-7*24*time.Hour))
	Apply(c, true, now)
	if c.SRSLevel != 1 {
		t.Errorf("SRSLevel = %d, want 1", c.SRSLevel)
	}
	if want := now.Add(5 * time.Minute); !c.NextReviewAt.Equal(want) {
		t.Errorf("NextReviewAt = %v, want %v", c.NextReviewAt, want)
	}
}

func TestApply_IncorrectResets(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	c := newCard(3, now)
	Apply(c, false, now)
	if c.SRSLevel != 0 {
		t.Errorf("SRSLevel = %d, want 0", c.SRSLevel)
	}
	if want := now.Add(time.Minute); !c.NextReviewAt.Equal(want) {
		t.Errorf("NextReviewAt = %v, want %v", c.NextReviewAt, want)
	}
}

func TestStatus(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		card *card.Card
		want ReviewStatus
	}{
		{"new", newCard(0, now), ReviewNew},
		{"due", newCard(2, now.Add(-time.Minute)), ReviewDue},
		{"not due", newCard(2, now.Add(time.Minute)), ReviewNotDue},
	}
	for _, tt := range tests {
		if got := Status(tt.card, now); got != tt.want {
			t.Errorf("%s: Status() = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestDueIn(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		offset time.Duration
		want   string
	}{
		{-time.Hour, "now"},
		{0, "now"},
		{20 * time.Second, "<1m"},
		{4 * time.Minute, "4m"},
		{3 * time.Hour, "3h"},
		{2*time.Hour + 30*time.Minute, "2h30m"},
		{time.Hour + 5*time.Minute, "1h05m"},
	}
	for _, tt := range tests {
		if got := DueIn(newCard(1, now.Add(tt.offset)), now); got != tt.want {
			t.Errorf("DueIn(+%v) = %q, want %q", tt.offset, got, tt.want)
		}
	}
}
