package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Timestamps are stored as unix milliseconds so due-time comparisons are
// plain integer comparisons.

var (
	decksColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString, Unique: true},
		{Name: "user_id", Type: field.TypeString},
		{Name: "name", Type: field.TypeString},
		{Name: "description", Type: field.TypeString, Default: ""},
		{Name: "created_at", Type: field.TypeInt64},
	}
	decksTable = &schema.Table{
		Name:       "decks",
		Columns:    decksColumns,
		PrimaryKey: []*schema.Column{decksColumns[0]},
		Indexes: []*schema.Index{
			{Name: "deck_user_id_name", Unique: true, Columns: []*schema.Column{decksColumns[1], decksColumns[2]}},
		},
	}

	cardsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString, Unique: true},
		{Name: "deck_id", Type: field.TypeString},
		{Name: "variant", Type: field.TypeString},
		{Name: "srs_level", Type: field.TypeInt, Default: 0},
		{Name: "next_review_at", Type: field.TypeInt64},
		{Name: "fields", Type: field.TypeJSON},
		{Name: "created_at", Type: field.TypeInt64},
	}
	cardsTable = &schema.Table{
		Name:       "cards",
		Columns:    cardsColumns,
		PrimaryKey: []*schema.Column{cardsColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "cards_decks_cards",
				Columns:    []*schema.Column{cardsColumns[1]},
				RefColumns: []*schema.Column{decksColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
		Indexes: []*schema.Index{
			{Name: "card_deck_id_next_review_at", Columns: []*schema.Column{cardsColumns[1], cardsColumns[4]}},
		},
	}

	// study_sessions keeps deck_id without a foreign key: history outlives
	// the deck it was recorded against.
	studySessionsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString, Unique: true},
		{Name: "user_id", Type: field.TypeString},
		{Name: "deck_id", Type: field.TypeString},
		{Name: "deck_name", Type: field.TypeString},
		{Name: "location_name", Type: field.TypeString, Default: ""},
		{Name: "correct_count", Type: field.TypeInt},
		{Name: "incorrect_count", Type: field.TypeInt},
		{Name: "completed_at", Type: field.TypeInt64},
	}
	studySessionsTable = &schema.Table{
		Name:       "study_sessions",
		Columns:    studySessionsColumns,
		PrimaryKey: []*schema.Column{studySessionsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "studysession_user_id_completed_at", Columns: []*schema.Column{studySessionsColumns[1], studySessionsColumns[7]}},
		},
	}

	locationsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString, Unique: true},
		{Name: "user_id", Type: field.TypeString},
		{Name: "name", Type: field.TypeString},
		{Name: "latitude", Type: field.TypeFloat64, Nullable: true},
		{Name: "longitude", Type: field.TypeFloat64, Nullable: true},
		{Name: "created_at", Type: field.TypeInt64},
	}
	locationsTable = &schema.Table{
		Name:       "locations",
		Columns:    locationsColumns,
		PrimaryKey: []*schema.Column{locationsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "location_user_id_name", Unique: true, Columns: []*schema.Column{locationsColumns[1], locationsColumns[2]}},
		},
	}

	// Tables holds every table the store migrates.
	Tables = []*schema.Table{
		decksTable,
		cardsTable,
		studySessionsTable,
		locationsTable,
	}
)

func init() {
	cardsTable.ForeignKeys[0].RefTable = decksTable
}
