package card

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrUnknownVariant is wrapped by DecodeError when a record's tag is not recognized.
var ErrUnknownVariant = errors.New("unknown card variant")

// DecodeError reports a raw record that could not be turned into a Card.
type DecodeError struct {
	RecordID string
	Tag      string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode card %q (variant %q): %v", e.RecordID, e.Tag, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Record is the raw, storage-shaped form of a card: a variant tag, the common
// scheduling fields, and the variant-specific fields as a JSON document.
type Record struct {
	ID           string
	Variant      string
	SRSLevel     int
	NextReviewAt time.Time
	Fields       json.RawMessage
}

// Decode turns a raw record into a Card by dispatching on its variant tag.
// Unknown tags yield a *DecodeError and no card.
func Decode(rec Record) (*Card, error) {
	v, ok := ParseVariant(rec.Variant)
	if !ok {
		return nil, &DecodeError{RecordID: rec.ID, Tag: rec.Variant, Err: ErrUnknownVariant}
	}

	p, err := decodePayload(v, rec.Fields)
	if err != nil {
		return nil, &DecodeError{RecordID: rec.ID, Tag: rec.Variant, Err: err}
	}

	level := rec.SRSLevel
	if level < 0 {
		level = 0
	}

	return &Card{
		ID:           rec.ID,
		SRSLevel:     level,
		NextReviewAt: rec.NextReviewAt,
		Payload:      p,
	}, nil
}

func decodePayload(v Variant, fields json.RawMessage) (Payload, error) {
	if len(fields) == 0 {
		fields = json.RawMessage("{}")
	}
	switch v {
	case VariantFrontBack:
		var p FrontBack
		err := json.Unmarshal(fields, &p)
		return p, err
	case VariantMultipleChoice:
		var p MultipleChoice
		err := json.Unmarshal(fields, &p)
		return p, err
	case VariantTypeAnswer:
		var p TypeAnswer
		err := json.Unmarshal(fields, &p)
		return p, err
	case VariantCloze:
		var p Cloze
		err := json.Unmarshal(fields, &p)
		return p, err
	}
	return nil, ErrUnknownVariant
}

// Encode converts a card back into its raw record form.
func Encode(c *Card) (Record, error) {
	fields, err := json.Marshal(c.Payload)
	if err != nil {
		return Record{}, fmt.Errorf("marshal %s fields: %w", c.Variant(), err)
	}
	return Record{
		ID:           c.ID,
		Variant:      string(c.Variant()),
		SRSLevel:     c.SRSLevel,
		NextReviewAt: c.NextReviewAt,
		Fields:       fields,
	}, nil
}

// DecodeAll decodes every record, returning the cards that decoded and the
// errors for those that did not. Order of surviving cards is preserved.
func DecodeAll(recs []Record) ([]*Card, []error) {
	cards := make([]*Card, 0, len(recs))
	var errs []error
	for _, rec := range recs {
		c, err := Decode(rec)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		cards = append(cards, c)
	}
	return cards, errs
}
