package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/flashdeck/internal/card"
	"github.com/abhisek/flashdeck/internal/session"
)

type studySessionRepo struct {
	s *Store
}

func (r *studySessionRepo) Create(ctx context.Context, rec *session.Record) error {
	rec.CompletedAt = r.s.now().UTC()
	_, err := r.s.exec(ctx, r.s.db, builder().Insert("study_sessions").
		Columns("id", "user_id", "deck_id", "deck_name", "location_name", "correct_count", "incorrect_count", "completed_at").
		Values(rec.ID, rec.UserID, rec.DeckID, rec.DeckName, rec.LocationName, rec.CorrectCount, rec.IncorrectCount, toMillis(rec.CompletedAt)))
	if err != nil {
		return fmt.Errorf("save study session: %w", err)
	}
	return nil
}

func (r *studySessionRepo) List(ctx context.Context, userID string) ([]session.Record, error) {
	rows, err := r.s.query(ctx, builder().
		Select("id", "user_id", "deck_id", "deck_name", "location_name", "correct_count", "incorrect_count", "completed_at").
		From(entsql.Table("study_sessions")).
		Where(entsql.EQ("user_id", userID)).
		OrderBy(entsql.Desc("completed_at"), "id"))
	if err != nil {
		return nil, fmt.Errorf("query study sessions: %w", err)
	}
	defer rows.Close()

	var out []session.Record
	for rows.Next() {
		var (
			rec       session.Record
			completed int64
		)
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.DeckID, &rec.DeckName, &rec.LocationName,
			&rec.CorrectCount, &rec.IncorrectCount, &completed); err != nil {
			return nil, fmt.Errorf("scan study session: %w", err)
		}
		rec.CompletedAt = fromMillis(completed)
		out = append(out, rec)
	}
	return out, rows.Err()
}

// SessionRepository adapts the store to the collaborator a study session
// reads due cards from and writes results to.
func (s *Store) SessionRepository() session.Repository {
	return &sessionRepository{cards: s.Cards(), sessions: s.Sessions()}
}

type sessionRepository struct {
	cards    CardRepo
	sessions StudySessionRepo
}

func (r *sessionRepository) FetchDueCards(ctx context.Context, deckID string, asOf time.Time) ([]card.Record, error) {
	return r.cards.Due(ctx, deckID, asOf)
}

func (r *sessionRepository) PersistCard(ctx context.Context, deckID string, rec card.Record) error {
	return r.cards.UpdateSchedule(ctx, deckID, rec)
}

func (r *sessionRepository) PersistSession(ctx context.Context, rec session.Record) error {
	return r.sessions.Create(ctx, &rec)
}
