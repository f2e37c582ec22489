package session

import (
	"context"
	"time"

	"github.com/abhisek/flashdeck/internal/card"
)

// Repository is the storage collaborator a session reads due cards from and
// writes results to.
type Repository interface {
	// FetchDueCards returns the raw records of every card in the deck whose
	// next review is at or before asOf.
	FetchDueCards(ctx context.Context, deckID string, asOf time.Time) ([]card.Record, error)

	// PersistCard stores a card's updated scheduling state.
	PersistCard(ctx context.Context, deckID string, rec card.Record) error

	// PersistSession stores a completed session record. The store assigns
	// CompletedAt.
	PersistSession(ctx context.Context, rec Record) error
}

// Record is the write-once outcome of a completed session.
type Record struct {
	ID             string
	UserID         string
	DeckID         string
	DeckName       string
	LocationName   string
	CorrectCount   int
	IncorrectCount int
	CompletedAt    time.Time
}

// Phase represents the current phase of the session.
type Phase int

const (
	PhaseLoading        Phase = iota // Waiting for due cards
	PhasePresenting                  // Showing the card at the cursor
	PhaseAwaitingAnswer              // Answer submitted, being checked
	PhaseFeedback                    // Showing the verdict
	PhaseCompleted                   // Every card answered, record written
	PhaseNothingDue                  // No card was due; no record written
	PhaseFailed                      // Due cards could not be fetched
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhasePresenting:
		return "presenting"
	case PhaseAwaitingAnswer:
		return "awaiting_answer"
	case PhaseFeedback:
		return "feedback"
	case PhaseCompleted:
		return "completed"
	case PhaseNothingDue:
		return "nothing_due"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further action is possible in this phase.
func (p Phase) Terminal() bool {
	return p == PhaseCompleted || p == PhaseNothingDue || p == PhaseFailed
}
