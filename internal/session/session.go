package session

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/flashdeck/internal/answer"
	"github.com/abhisek/flashdeck/internal/card"
	"github.com/abhisek/flashdeck/internal/spacedrep"
	"github.com/abhisek/flashdeck/internal/stats"
)

// Options configures a Controller.
type Options struct {
	DeckID       string
	DeckName     string
	UserID       string
	LocationName string

	// Now is the session clock. Defaults to time.Now.
	Now func() time.Time

	// Rand drives the session order and option shuffles. Defaults to the
	// global source.
	Rand *rand.Rand

	Logger *zap.Logger
}

// Controller runs a single study session over the due cards of one deck.
// A Controller is used once; a new session needs a new Controller.
type Controller struct {
	mu sync.Mutex

	repo      Repository
	persister *Persister
	opts      Options
	log       *zap.Logger
	id        string

	phase     Phase
	cards     []*card.Card
	cursor    int
	options   []string
	verdict   answer.Verdict
	correct   int
	incorrect int
	skipped   int
	err       error
}

// New creates a controller in PhaseLoading. Writes go through p.
func New(repo Repository, p *Persister, opts Options) *Controller {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	id := uuid.New().String()
	return &Controller{
		repo:      repo,
		persister: p,
		opts:      opts,
		id:        id,
		log: opts.Logger.Named("session").With(
			zap.String("session_id", id),
			zap.String("deck_id", opts.DeckID),
		),
		phase: PhaseLoading,
	}
}

// ID returns the identifier the session record will be written with.
func (c *Controller) ID() string {
	return c.id
}

// Load fetches the due cards and moves to PhasePresenting, PhaseNothingDue,
// or PhaseFailed. A fetch failure is returned as a *FetchError.
func (c *Controller) Load(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase != PhaseLoading {
		return invalidTransition("load", c.phase)
	}

	now := c.opts.Now()
	recs, err := c.repo.FetchDueCards(ctx, c.opts.DeckID, now)
	if err != nil {
		c.err = &FetchError{DeckID: c.opts.DeckID, Err: err}
		c.phase = PhaseFailed
		c.log.Error("load due cards", zap.Error(c.err))
		return c.err
	}

	cards, decodeErrs := card.DecodeAll(recs)
	for _, derr := range decodeErrs {
		var de *card.DecodeError
		if errors.As(derr, &de) {
			c.log.Warn("dropping undecodable card",
				zap.String("record_id", de.RecordID),
				zap.String("variant", de.Tag),
				zap.Error(derr))
		} else {
			c.log.Warn("dropping undecodable card", zap.Error(derr))
		}
	}
	c.skipped = len(decodeErrs)

	due := cards[:0]
	for _, cd := range cards {
		if cd.IsDue(now) {
			due = append(due, cd)
		}
	}

	if len(due) == 0 {
		c.phase = PhaseNothingDue
		c.log.Info("nothing due", zap.Int("skipped", c.skipped))
		return nil
	}

	c.shuffle(len(due), func(i, j int) { due[i], due[j] = due[j], due[i] })
	c.cards = due
	c.cursor = 0
	c.present()
	c.log.Info("session started", zap.Int("cards", len(due)), zap.Int("skipped", c.skipped))
	return nil
}

func (c *Controller) shuffle(n int, swap func(i, j int)) {
	if c.opts.Rand != nil {
		c.opts.Rand.Shuffle(n, swap)
		return
	}
	rand.Shuffle(n, swap)
}

// present enters PhasePresenting for the card at the cursor.
func (c *Controller) present() {
	c.phase = PhasePresenting
	c.verdict = answer.Verdict{}
	c.options = nil
	if mc, ok := c.cards[c.cursor].Payload.(card.MultipleChoice); ok {
		c.options = answer.Options(mc, c.opts.Rand)
	}
}

// Submit checks input against the current card, reschedules it, queues the
// write, and moves to PhaseFeedback. For multiple choice, input is the
// selected option text.
func (c *Controller) Submit(input string) (answer.Verdict, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase != PhasePresenting {
		return answer.Verdict{}, invalidTransition("submit", c.phase)
	}
	c.phase = PhaseAwaitingAnswer

	cd := c.cards[c.cursor]
	v := answer.Evaluate(cd, input)
	spacedrep.Apply(cd, v.Correct, c.opts.Now())
	if v.Correct {
		c.correct++
	} else {
		c.incorrect++
	}

	rec, err := card.Encode(cd)
	if err != nil {
		c.log.Warn("encode card for persist", zap.String("card_id", cd.ID), zap.Error(err))
	} else {
		c.persister.PersistCard(c.opts.DeckID, rec)
	}

	c.verdict = v
	c.phase = PhaseFeedback
	return v, nil
}

// Advance moves past the feedback to the next card, or completes the session
// and queues its record when the last card has been answered.
func (c *Controller) Advance() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase != PhaseFeedback {
		return invalidTransition("advance", c.phase)
	}

	c.cursor++
	if c.cursor < len(c.cards) {
		c.present()
		return nil
	}

	c.persister.PersistSession(Record{
		ID:             c.id,
		UserID:         c.opts.UserID,
		DeckID:         c.opts.DeckID,
		DeckName:       c.opts.DeckName,
		LocationName:   c.opts.LocationName,
		CorrectCount:   c.correct,
		IncorrectCount: c.incorrect,
	})
	c.phase = PhaseCompleted
	c.log.Info("session completed",
		zap.Int("correct", c.correct),
		zap.Int("incorrect", c.incorrect))
	return nil
}

// Phase returns the current phase.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Current returns the card being studied, or nil outside an active card.
func (c *Controller) Current() *card.Card {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.active() {
		return nil
	}
	return c.cards[c.cursor]
}

func (c *Controller) active() bool {
	switch c.phase {
	case PhasePresenting, PhaseAwaitingAnswer, PhaseFeedback:
		return true
	}
	return false
}

// Options returns the shuffled choices for a multiple-choice card. The order
// is fixed for the card's presentation. Nil for other variants.
func (c *Controller) Options() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.active() || c.options == nil {
		return nil
	}
	out := make([]string, len(c.options))
	copy(out, c.options)
	return out
}

// Verdict returns the result of the last submitted answer while in
// PhaseFeedback.
func (c *Controller) Verdict() answer.Verdict {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.verdict
}

// Progress returns the 1-based position of the current card.
func (c *Controller) Progress() Progress {
	c.mu.Lock()
	defer c.mu.Unlock()
	cur := c.cursor + 1
	if cur > len(c.cards) {
		cur = len(c.cards)
	}
	return Progress{Current: cur, Total: len(c.cards)}
}

// Counts returns the running correct and incorrect totals.
func (c *Controller) Counts() (correct, incorrect int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.correct, c.incorrect
}

// Summary returns the session totals.
func (c *Controller) Summary() Summary {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Summary{
		SessionID:    c.id,
		DeckName:     c.opts.DeckName,
		LocationName: c.opts.LocationName,
		Correct:      c.correct,
		Incorrect:    c.incorrect,
		Percentage:   stats.Percentage(c.correct, c.incorrect),
		Skipped:      c.skipped,
	}
}

// Err returns the fetch failure when the phase is PhaseFailed.
func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}
