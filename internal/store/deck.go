package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"

	"github.com/abhisek/flashdeck/internal/card"
)

var deckColumns = []string{"id", "user_id", "name", "description"}

type deckRepo struct {
	s *Store
}

func (r *deckRepo) Create(ctx context.Context, d *card.Deck) error {
	if _, err := r.GetByName(ctx, d.UserID, d.Name); err == nil {
		return fmt.Errorf("deck %q: %w", d.Name, ErrAlreadyExists)
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}

	d.ID = uuid.New().String()
	_, err := r.s.exec(ctx, r.s.db, builder().Insert("decks").
		Columns("id", "user_id", "name", "description", "created_at").
		Values(d.ID, d.UserID, d.Name, d.Description, toMillis(r.s.now())))
	if err != nil {
		return fmt.Errorf("save deck: %w", err)
	}
	return nil
}

func (r *deckRepo) Get(ctx context.Context, id string) (*card.Deck, error) {
	return r.one(ctx, entsql.EQ("id", id))
}

func (r *deckRepo) GetByName(ctx context.Context, userID, name string) (*card.Deck, error) {
	return r.one(ctx, entsql.And(entsql.EQ("user_id", userID), entsql.EQ("name", name)))
}

func (r *deckRepo) one(ctx context.Context, p *entsql.Predicate) (*card.Deck, error) {
	var d card.Deck
	err := r.s.queryRow(ctx, builder().Select(deckColumns...).
		From(entsql.Table("decks")).
		Where(p).
		Limit(1)).Scan(&d.ID, &d.UserID, &d.Name, &d.Description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query deck: %w", err)
	}
	return &d, nil
}

func (r *deckRepo) List(ctx context.Context, userID string, now time.Time) ([]card.Deck, error) {
	decks, err := r.list(ctx, userID)
	if err != nil {
		return nil, err
	}
	due, err := r.dueCounts(ctx, now)
	if err != nil {
		return nil, err
	}
	for i := range decks {
		decks[i].DueCardsCount = due[decks[i].ID]
	}
	return decks, nil
}

func (r *deckRepo) list(ctx context.Context, userID string) ([]card.Deck, error) {
	rows, err := r.s.query(ctx, builder().Select(deckColumns...).
		From(entsql.Table("decks")).
		Where(entsql.EQ("user_id", userID)).
		OrderBy("name"))
	if err != nil {
		return nil, fmt.Errorf("query decks: %w", err)
	}
	defer rows.Close()

	var decks []card.Deck
	for rows.Next() {
		var d card.Deck
		if err := rows.Scan(&d.ID, &d.UserID, &d.Name, &d.Description); err != nil {
			return nil, fmt.Errorf("scan deck: %w", err)
		}
		decks = append(decks, d)
	}
	return decks, rows.Err()
}

// dueCounts returns the number of due cards per deck ID.
func (r *deckRepo) dueCounts(ctx context.Context, now time.Time) (map[string]int, error) {
	rows, err := r.s.query(ctx, builder().Select("deck_id", entsql.Count("*")).
		From(entsql.Table("cards")).
		Where(entsql.LTE("next_review_at", toMillis(now))).
		GroupBy("deck_id"))
	if err != nil {
		return nil, fmt.Errorf("count due cards: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			deckID string
			n      int
		)
		if err := rows.Scan(&deckID, &n); err != nil {
			return nil, fmt.Errorf("scan due count: %w", err)
		}
		counts[deckID] = n
	}
	return counts, rows.Err()
}

func (r *deckRepo) Delete(ctx context.Context, id string) error {
	tx, err := r.s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := r.s.exec(ctx, tx, builder().Delete("cards").Where(entsql.EQ("deck_id", id))); err != nil {
		return fmt.Errorf("delete deck cards: %w", err)
	}
	res, err := r.s.exec(ctx, tx, builder().Delete("decks").Where(entsql.EQ("id", id)))
	if err != nil {
		return fmt.Errorf("delete deck: %w", err)
	}
	if err := affectedOne(res); err != nil {
		return err
	}
	return tx.Commit()
}
