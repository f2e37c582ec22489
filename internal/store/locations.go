package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
)

type locationRepo struct {
	s *Store
}

func (r *locationRepo) Create(ctx context.Context, l *Location) error {
	l.Name = strings.TrimSpace(l.Name)
	if l.Name == "" {
		return fmt.Errorf("location name is required")
	}

	var n int
	err := r.s.queryRow(ctx, builder().Select(entsql.Count("*")).
		From(entsql.Table("locations")).
		Where(entsql.And(entsql.EQ("user_id", l.UserID), entsql.EQ("name", l.Name)))).Scan(&n)
	if err != nil {
		return fmt.Errorf("check location: %w", err)
	}
	if n > 0 {
		return fmt.Errorf("location %q: %w", l.Name, ErrAlreadyExists)
	}

	l.ID = uuid.New().String()
	l.CreatedAt = r.s.now().UTC()
	_, err = r.s.exec(ctx, r.s.db, builder().Insert("locations").
		Columns("id", "user_id", "name", "latitude", "longitude", "created_at").
		Values(l.ID, l.UserID, l.Name, nullFloat(l.Latitude), nullFloat(l.Longitude), toMillis(l.CreatedAt)))
	if err != nil {
		return fmt.Errorf("save location: %w", err)
	}
	return nil
}

func (r *locationRepo) List(ctx context.Context, userID string) ([]Location, error) {
	rows, err := r.s.query(ctx, builder().
		Select("id", "user_id", "name", "latitude", "longitude", "created_at").
		From(entsql.Table("locations")).
		Where(entsql.EQ("user_id", userID)).
		OrderBy("name"))
	if err != nil {
		return nil, fmt.Errorf("query locations: %w", err)
	}
	defer rows.Close()

	var out []Location
	for rows.Next() {
		var (
			l        Location
			lat, lng sql.NullFloat64
			created  int64
		)
		if err := rows.Scan(&l.ID, &l.UserID, &l.Name, &lat, &lng, &created); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		if lat.Valid {
			l.Latitude = &lat.Float64
		}
		if lng.Valid {
			l.Longitude = &lng.Float64
		}
		l.CreatedAt = fromMillis(created)
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *locationRepo) Delete(ctx context.Context, userID, name string) error {
	res, err := r.s.exec(ctx, r.s.db, builder().Delete("locations").
		Where(entsql.And(entsql.EQ("user_id", userID), entsql.EQ("name", name))))
	if err != nil {
		return fmt.Errorf("delete location: %w", err)
	}
	return affectedOne(res)
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}
