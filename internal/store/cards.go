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

var cardColumns = []string{"id", "variant", "srs_level", "next_review_at", "fields"}

type cardRepo struct {
	s *Store
}

func (r *cardRepo) Create(ctx context.Context, deckID string, c *card.Card) error {
	if _, err := r.s.Decks().Get(ctx, deckID); err != nil {
		return fmt.Errorf("deck %q: %w", deckID, err)
	}

	rec, err := card.Encode(c)
	if err != nil {
		return err
	}
	rec.ID = uuid.New().String()

	_, err = r.s.exec(ctx, r.s.db, builder().Insert("cards").
		Columns("id", "deck_id", "variant", "srs_level", "next_review_at", "fields", "created_at").
		Values(rec.ID, deckID, rec.Variant, rec.SRSLevel, toMillis(rec.NextReviewAt), string(rec.Fields), toMillis(r.s.now())))
	if err != nil {
		return fmt.Errorf("save card: %w", err)
	}
	c.ID = rec.ID
	return nil
}

func (r *cardRepo) Get(ctx context.Context, id string) (card.Record, error) {
	row := r.s.queryRow(ctx, builder().Select(cardColumns...).
		From(entsql.Table("cards")).
		Where(entsql.EQ("id", id)).
		Limit(1))
	rec, err := scanCard(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return card.Record{}, ErrNotFound
		}
		return card.Record{}, fmt.Errorf("query card: %w", err)
	}
	return rec, nil
}

func (r *cardRepo) List(ctx context.Context, deckID string) ([]card.Record, error) {
	return r.list(ctx, entsql.EQ("deck_id", deckID))
}

func (r *cardRepo) Due(ctx context.Context, deckID string, asOf time.Time) ([]card.Record, error) {
	return r.list(ctx, entsql.And(
		entsql.EQ("deck_id", deckID),
		entsql.LTE("next_review_at", toMillis(asOf)),
	))
}

func (r *cardRepo) list(ctx context.Context, p *entsql.Predicate) ([]card.Record, error) {
	rows, err := r.s.query(ctx, builder().Select(cardColumns...).
		From(entsql.Table("cards")).
		Where(p).
		OrderBy("created_at", "id"))
	if err != nil {
		return nil, fmt.Errorf("query cards: %w", err)
	}
	defer rows.Close()

	var recs []card.Record
	for rows.Next() {
		rec, err := scanCard(rows)
		if err != nil {
			return nil, fmt.Errorf("scan card: %w", err)
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCard(sc scanner) (card.Record, error) {
	var (
		rec    card.Record
		due    int64
		fields []byte
	)
	if err := sc.Scan(&rec.ID, &rec.Variant, &rec.SRSLevel, &due, &fields); err != nil {
		return card.Record{}, err
	}
	rec.NextReviewAt = fromMillis(due)
	rec.Fields = append([]byte(nil), fields...)
	return rec, nil
}

func (r *cardRepo) UpdateSchedule(ctx context.Context, deckID string, rec card.Record) error {
	res, err := r.s.exec(ctx, r.s.db, builder().Update("cards").
		Set("srs_level", rec.SRSLevel).
		Set("next_review_at", toMillis(rec.NextReviewAt)).
		Where(entsql.And(entsql.EQ("id", rec.ID), entsql.EQ("deck_id", deckID))))
	if err != nil {
		return fmt.Errorf("update card %q: %w", rec.ID, err)
	}
	if err := affectedOne(res); err != nil {
		return fmt.Errorf("update card %q: %w", rec.ID, err)
	}
	return nil
}

func (r *cardRepo) Delete(ctx context.Context, id string) error {
	res, err := r.s.exec(ctx, r.s.db, builder().Delete("cards").Where(entsql.EQ("id", id)))
	if err != nil {
		return fmt.Errorf("delete card: %w", err)
	}
	return affectedOne(res)
}
