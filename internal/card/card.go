package card

import "time"

// Variant is the discriminant identifying which of the four card shapes a card is.
// The string values are the tags stored on raw records.
type Variant string

const (
	VariantFrontBack      Variant = "FRONT_BACK"
	VariantMultipleChoice Variant = "MULTIPLE_CHOICE"
	VariantTypeAnswer     Variant = "TYPE_ANSWER"
	VariantCloze          Variant = "CLOZE"
)

// Variants lists every known variant in display order.
var Variants = []Variant{
	VariantFrontBack,
	VariantMultipleChoice,
	VariantTypeAnswer,
	VariantCloze,
}

// ParseVariant returns the Variant for a record tag.
// An empty tag is treated as FrontBack, matching how older records were written.
func ParseVariant(tag string) (Variant, bool) {
	if tag == "" {
		return VariantFrontBack, true
	}
	for _, v := range Variants {
		if string(v) == tag {
			return v, true
		}
	}
	return "", false
}

// DisplayName returns a human-readable variant name.
func (v Variant) DisplayName() string {
	switch v {
	case VariantFrontBack:
		return "Front/Back"
	case VariantMultipleChoice:
		return "Multiple Choice"
	case VariantTypeAnswer:
		return "Type Answer"
	case VariantCloze:
		return "Cloze"
	default:
		return string(v)
	}
}

// Payload is the variant-specific part of a card. The set of implementations
// is closed: only the four payload types in this package satisfy it.
type Payload interface {
	Variant() Variant
	sealed()
}

// FrontBack is a classic two-sided card. Front may be empty when an image is present.
type FrontBack struct {
	Front         string `json:"front,omitempty" validate:"required_without=FrontImageRef"`
	Back          string `json:"back" validate:"required"`
	FrontImageRef string `json:"frontImageRef,omitempty"`
}

// MultipleChoice asks the learner to pick the correct answer among distractors.
type MultipleChoice struct {
	Question      string   `json:"question" validate:"required"`
	CorrectAnswer string   `json:"correctAnswer" validate:"required"`
	Distractors   []string `json:"distractors" validate:"min=1,dive,required"`
}

// TypeAnswer accepts any of AcceptableAnswers as free text.
type TypeAnswer struct {
	Prompt            string   `json:"prompt" validate:"required"`
	AcceptableAnswers []string `json:"acceptableAnswers" validate:"min=1,dive,required"`
}

// Cloze hides every [[span]] of TextWithCloze.
type Cloze struct {
	TextWithCloze string `json:"textWithCloze" validate:"required,cloze"`
}

func (FrontBack) Variant() Variant      { return VariantFrontBack }
func (MultipleChoice) Variant() Variant { return VariantMultipleChoice }
func (TypeAnswer) Variant() Variant     { return VariantTypeAnswer }
func (Cloze) Variant() Variant          { return VariantCloze }

func (FrontBack) sealed()      {}
func (MultipleChoice) sealed() {}
func (TypeAnswer) sealed()     {}
func (Cloze) sealed()          {}

// Card is a single reviewable item in a deck.
type Card struct {
	// ID is assigned by the store on creation; empty before that.
	ID string

	// SRSLevel is the current scheduling level (0 = new or just failed).
	SRSLevel int

	// NextReviewAt is when the card becomes due again.
	NextReviewAt time.Time

	Payload Payload
}

// New creates a card that is due immediately.
func New(p Payload, now time.Time) *Card {
	return &Card{
		Payload:      p,
		NextReviewAt: now,
	}
}

// Variant returns the card's discriminant.
func (c *Card) Variant() Variant {
	return c.Payload.Variant()
}

// IsDue reports whether the card is eligible for review at now.
func (c *Card) IsDue(now time.Time) bool {
	return !now.Before(c.NextReviewAt)
}

// Prompt returns the text shown to the learner before answering.
// Cloze cards show the masked sentence.
func (c *Card) Prompt() string {
	switch p := c.Payload.(type) {
	case FrontBack:
		return p.Front
	case MultipleChoice:
		return p.Question
	case TypeAnswer:
		return p.Prompt
	case Cloze:
		return MaskCloze(p.TextWithCloze)
	}
	return ""
}

// Deck groups cards owned by a single user.
type Deck struct {
	ID          string
	UserID      string
	Name        string
	Description string

	// DueCardsCount is computed on read and never persisted.
	DueCardsCount int
}
