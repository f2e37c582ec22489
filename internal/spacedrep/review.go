package spacedrep

import (
	"fmt"
	"time"

	"github.com/abhisek/flashdeck/internal/card"
)

// Apply reschedules c in place from the answer outcome. now is the session
// clock, not the card's previous due time.
func Apply(c *card.Card, correct bool, now time.Time) {
	level, interval := NextState(c.SRSLevel, correct)
	c.SRSLevel = level
	c.NextReviewAt = now.Add(interval)
}

// ReviewStatus describes a card's review status for display.
type ReviewStatus string

const (
	ReviewNew    ReviewStatus = "new"
	ReviewDue    ReviewStatus = "due"
	ReviewNotDue ReviewStatus = "not_due"
)

// Status returns the review status for UI display.
func Status(c *card.Card, now time.Time) ReviewStatus {
	if !c.IsDue(now) {
		return ReviewNotDue
	}
	if c.SRSLevel == 0 {
		return ReviewNew
	}
	return ReviewDue
}

// DueIn formats the time until c is due, e.g. "now", "4m", "2h30m".
func DueIn(c *card.Card, now time.Time) string {
	if c.IsDue(now) {
		return "now"
	}
	d := c.NextReviewAt.Sub(now).Round(time.Minute)
	if d < time.Minute {
		return "<1m"
	}
	h := int(d / time.Hour)
	m := int((d % time.Hour) / time.Minute)
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh%02dm", h, m)
	}
}
