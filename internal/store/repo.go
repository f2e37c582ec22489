package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/abhisek/flashdeck/internal/card"
	"github.com/abhisek/flashdeck/internal/session"
)

// DeckRepo manages decks.
type DeckRepo interface {
	// Create stores a new deck and assigns its ID.
	Create(ctx context.Context, d *card.Deck) error

	Get(ctx context.Context, id string) (*card.Deck, error)
	GetByName(ctx context.Context, userID, name string) (*card.Deck, error)

	// List returns the user's decks ordered by name, each with the number of
	// cards due at now.
	List(ctx context.Context, userID string, now time.Time) ([]card.Deck, error)

	// Delete removes the deck and all of its cards.
	Delete(ctx context.Context, id string) error
}

// CardRepo manages cards. Cards are read back as raw records so callers
// decide how to treat variants they do not recognize.
type CardRepo interface {
	// Create stores a new card in the deck and assigns its ID.
	Create(ctx context.Context, deckID string, c *card.Card) error

	Get(ctx context.Context, id string) (card.Record, error)
	List(ctx context.Context, deckID string) ([]card.Record, error)

	// Due returns the deck's cards whose next review is at or before asOf.
	Due(ctx context.Context, deckID string, asOf time.Time) ([]card.Record, error)

	// UpdateSchedule writes the level and next review time of an existing card.
	UpdateSchedule(ctx context.Context, deckID string, rec card.Record) error

	Delete(ctx context.Context, id string) error
}

// StudySessionRepo stores completed session records.
type StudySessionRepo interface {
	// Create stores the record, setting CompletedAt to the store's clock.
	Create(ctx context.Context, rec *session.Record) error

	// List returns the user's sessions, most recent first.
	List(ctx context.Context, userID string) ([]session.Record, error)
}

// Location is a named place a user studies at.
type Location struct {
	ID        string
	UserID    string
	Name      string
	Latitude  *float64
	Longitude *float64
	CreatedAt time.Time
}

// LocationRepo manages study locations.
type LocationRepo interface {
	Create(ctx context.Context, l *Location) error
	List(ctx context.Context, userID string) ([]Location, error)
	Delete(ctx context.Context, userID, name string) error
}

// querier is satisfied by every ent SQL builder.
type querier interface {
	Query() (string, []any)
}

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *Store) exec(ctx context.Context, ex execer, b querier) (sql.Result, error) {
	q, args := b.Query()
	return ex.ExecContext(ctx, q, args...)
}

func (s *Store) query(ctx context.Context, b querier) (*sql.Rows, error) {
	q, args := b.Query()
	return s.db.QueryContext(ctx, q, args...)
}

func (s *Store) queryRow(ctx context.Context, b querier) *sql.Row {
	q, args := b.Query()
	return s.db.QueryRowContext(ctx, q, args...)
}

// affectedOne maps a zero-row update or delete to ErrNotFound.
func affectedOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
