package session

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand/v2"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/abhisek/flashdeck/internal/card"
)

var testNow = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

// fakeRepo is an in-memory Repository.
type fakeRepo struct {
	mu         sync.Mutex
	records    []card.Record
	fetchErr   error
	persistErr error
	cards      map[string]card.Record
	sessions   []Record
	block      chan struct{}
}

func newFakeRepo(recs ...card.Record) *fakeRepo {
	return &fakeRepo{records: recs, cards: make(map[string]card.Record)}
}

func (r *fakeRepo) FetchDueCards(_ context.Context, _ string, _ time.Time) ([]card.Record, error) {
	if r.fetchErr != nil {
		return nil, r.fetchErr
	}
	out := make([]card.Record, len(r.records))
	copy(out, r.records)
	return out, nil
}

func (r *fakeRepo) PersistCard(_ context.Context, _ string, rec card.Record) error {
	if r.block != nil {
		<-r.block
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.persistErr != nil {
		return r.persistErr
	}
	r.cards[rec.ID] = rec
	return nil
}

func (r *fakeRepo) PersistSession(_ context.Context, rec Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.persistErr != nil {
		return r.persistErr
	}
	r.sessions = append(r.sessions, rec)
	return nil
}

func rawRecord(t *testing.T, id string, p card.Payload) card.Record {
	t.Helper()
	c := card.New(p, testNow.Add(-time.Hour))
	c.ID = id
	rec, err := card.Encode(c)
	require.NoError(t, err)
	return rec
}

func newController(repo *fakeRepo, log *zap.Logger) (*Controller, *Persister) {
	p := NewPersister(repo, log, 8)
	c := New(repo, p, Options{
		DeckID:   "deck-1",
		DeckName: "Arithmetic",
		UserID:   "u1",
		Now:      func() time.Time { return testNow },
		Rand:     rand.New(rand.NewPCG(1, 2)),
		Logger:   log,
	})
	return c, p
}

func TestEndToEnd_TypeAnswer(t *testing.T) {
	repo := newFakeRepo(rawRecord(t, "c1", card.TypeAnswer{Prompt: "2+2", AcceptableAnswers: []string{"4", "four"}}))
	c, p := newController(repo, nil)

	require.NoError(t, c.Load(context.Background()))
	assert.Equal(t, PhasePresenting, c.Phase())
	assert.Equal(t, "1 / 1", c.Progress().String())

	v, err := c.Submit("Four")
	require.NoError(t, err)
	assert.True(t, v.Correct)
	assert.Equal(t, PhaseFeedback, c.Phase())

	cur := c.Current()
	require.NotNil(t, cur)
	assert.Equal(t, 1, cur.SRSLevel)
	assert.True(t, cur.NextReviewAt.Equal(testNow.Add(5*time.Minute)))

	require.NoError(t, c.Advance())
	assert.Equal(t, PhaseCompleted, c.Phase())
	assert.Nil(t, c.Current())

	correct, incorrect := c.Counts()
	assert.Equal(t, 1, correct)
	assert.Equal(t, 0, incorrect)
	assert.Equal(t, 100.0, c.Summary().Percentage)
	assert.Equal(t, "100", c.Summary().FormattedPercentage())

	p.Close()
	require.Len(t, repo.sessions, 1)
	got := repo.sessions[0]
	assert.Equal(t, c.ID(), got.ID)
	assert.Equal(t, "u1", got.UserID)
	assert.Equal(t, "deck-1", got.DeckID)
	assert.Equal(t, "Arithmetic", got.DeckName)
	assert.Equal(t, 1, got.CorrectCount)
	assert.Equal(t, 0, got.IncorrectCount)

	persisted := repo.cards["c1"]
	assert.Equal(t, 1, persisted.SRSLevel)
	assert.True(t, persisted.NextReviewAt.Equal(testNow.Add(5*time.Minute)))
}

func TestLoad_NothingDue(t *testing.T) {
	notDue := rawRecord(t, "later", card.FrontBack{Front: "Q", Back: "A"})
	notDue.NextReviewAt = testNow.Add(time.Minute)
	repo := newFakeRepo(notDue)
	c, p := newController(repo, nil)

	require.NoError(t, c.Load(context.Background()))
	assert.Equal(t, PhaseNothingDue, c.Phase())
	assert.True(t, c.Phase().Terminal())
	assert.Nil(t, c.Current())

	_, err := c.Submit("A")
	assert.ErrorIs(t, err, ErrInvalidTransition)

	p.Close()
	assert.Empty(t, repo.sessions)
	assert.Empty(t, repo.cards)
}

func TestLoad_Empty(t *testing.T) {
	repo := newFakeRepo()
	c, p := newController(repo, nil)
	defer p.Close()

	require.NoError(t, c.Load(context.Background()))
	assert.Equal(t, PhaseNothingDue, c.Phase())
}

func TestLoad_FetchError(t *testing.T) {
	repo := newFakeRepo()
	repo.fetchErr = errors.New("connection refused")
	c, p := newController(repo, nil)
	defer p.Close()

	err := c.Load(context.Background())
	require.Error(t, err)

	var ferr *FetchError
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, "deck-1", ferr.DeckID)
	assert.ErrorIs(t, err, repo.fetchErr)

	assert.Equal(t, PhaseFailed, c.Phase())
	assert.Equal(t, err, c.Err())
	assert.Nil(t, c.Current())

	// No automatic retry.
	assert.ErrorIs(t, c.Load(context.Background()), ErrInvalidTransition)
}

func TestSession_PresentsEachCardOnce(t *testing.T) {
	repo := newFakeRepo(
		rawRecord(t, "A", card.FrontBack{Front: "a?", Back: "a"}),
		rawRecord(t, "B", card.FrontBack{Front: "b?", Back: "b"}),
		rawRecord(t, "C", card.FrontBack{Front: "c?", Back: "c"}),
	)
	c, p := newController(repo, nil)
	defer p.Close()

	require.NoError(t, c.Load(context.Background()))

	var seen []string
	for i := 0; i < 3; i++ {
		assert.Equal(t, PhasePresenting, c.Phase())
		assert.Equal(t, Progress{Current: i + 1, Total: 3}, c.Progress())
		seen = append(seen, c.Current().ID)
		_, err := c.Submit("wrong")
		require.NoError(t, err)
		require.NoError(t, c.Advance())
	}

	assert.Equal(t, PhaseCompleted, c.Phase())
	sort.Strings(seen)
	assert.Equal(t, []string{"A", "B", "C"}, seen)

	correct, incorrect := c.Counts()
	assert.Equal(t, 0, correct)
	assert.Equal(t, 3, incorrect)
}

func TestSession_NoActionsAfterCompleted(t *testing.T) {
	repo := newFakeRepo(rawRecord(t, "A", card.FrontBack{Front: "a?", Back: "a"}))
	c, p := newController(repo, nil)
	defer p.Close()

	require.NoError(t, c.Load(context.Background()))
	_, err := c.Submit("a")
	require.NoError(t, err)
	require.NoError(t, c.Advance())

	assert.ErrorIs(t, c.Advance(), ErrInvalidTransition)
	_, err = c.Submit("a")
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.ErrorIs(t, c.Load(context.Background()), ErrInvalidTransition)
}

func TestSession_InvalidTransitions(t *testing.T) {
	repo := newFakeRepo(rawRecord(t, "A", card.FrontBack{Front: "a?", Back: "a"}))
	c, p := newController(repo, nil)
	defer p.Close()

	_, err := c.Submit("a")
	assert.ErrorIs(t, err, ErrInvalidTransition, "submit before load")
	assert.ErrorIs(t, c.Advance(), ErrInvalidTransition, "advance before load")

	require.NoError(t, c.Load(context.Background()))
	assert.ErrorIs(t, c.Advance(), ErrInvalidTransition, "advance before answering")

	_, err = c.Submit("a")
	require.NoError(t, err)
	_, err = c.Submit("a")
	assert.ErrorIs(t, err, ErrInvalidTransition, "submit twice")
}

func TestLoad_DropsUnknownVariant(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	log := zap.New(core)

	repo := newFakeRepo(
		rawRecord(t, "ok", card.FrontBack{Front: "Q", Back: "A"}),
		card.Record{ID: "bad", Variant: "HOLOGRAM", NextReviewAt: testNow, Fields: json.RawMessage(`{}`)},
	)
	c, p := newController(repo, log)
	defer p.Close()

	require.NoError(t, c.Load(context.Background()))
	assert.Equal(t, Progress{Current: 1, Total: 1}, c.Progress())
	assert.Equal(t, "ok", c.Current().ID)
	assert.Equal(t, 1, c.Summary().Skipped)

	dropped := logs.FilterMessage("dropping undecodable card").All()
	require.Len(t, dropped, 1)
	fields := dropped[0].ContextMap()
	assert.Equal(t, "bad", fields["record_id"])
	assert.Equal(t, "HOLOGRAM", fields["variant"])
}

func TestLoad_AllUndecodableIsNothingDue(t *testing.T) {
	repo := newFakeRepo(card.Record{ID: "bad", Variant: "HOLOGRAM", NextReviewAt: testNow})
	c, p := newController(repo, nil)
	defer p.Close()

	require.NoError(t, c.Load(context.Background()))
	assert.Equal(t, PhaseNothingDue, c.Phase())
}

func TestSession_PersistFailureIsLoggedOnly(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	log := zap.New(core)

	repo := newFakeRepo(rawRecord(t, "A", card.FrontBack{Front: "a?", Back: "a"}))
	repo.persistErr = errors.New("disk full")
	c, p := newController(repo, log)

	require.NoError(t, c.Load(context.Background()))
	v, err := c.Submit("a")
	require.NoError(t, err)
	assert.True(t, v.Correct)
	require.NoError(t, c.Advance())
	assert.Equal(t, PhaseCompleted, c.Phase())

	// In-memory state is updated even though the write failed.
	correct, _ := c.Counts()
	assert.Equal(t, 1, correct)

	p.Close()

	failed := logs.FilterMessage("persist failed").All()
	require.Len(t, failed, 2)

	byKind := map[string]zapcore.Level{}
	for _, e := range failed {
		byKind[e.ContextMap()["kind"].(string)] = e.Level
	}
	assert.Equal(t, zapcore.WarnLevel, byKind["card"])
	assert.Equal(t, zapcore.ErrorLevel, byKind["session"])
}

func TestSession_MultipleChoiceOptions(t *testing.T) {
	repo := newFakeRepo(rawRecord(t, "mc", card.MultipleChoice{
		Question:      "Capital of France?",
		CorrectAnswer: "Paris",
		Distractors:   []string{"paris", "Lyon", "Nice"},
	}))
	c, p := newController(repo, nil)
	defer p.Close()

	require.NoError(t, c.Load(context.Background()))

	opts := c.Options()
	assert.ElementsMatch(t, []string{"Paris", "paris", "Lyon", "Nice"}, opts)
	assert.Equal(t, opts, c.Options(), "options are stable while the card is shown")

	v, err := c.Submit("paris")
	require.NoError(t, err)
	assert.False(t, v.Correct)
	assert.Equal(t, 0, c.Current().SRSLevel)
	assert.True(t, c.Current().NextReviewAt.Equal(testNow.Add(time.Minute)))
	assert.Equal(t, v, c.Verdict())
}

func TestSession_OptionsNilForFreeText(t *testing.T) {
	repo := newFakeRepo(rawRecord(t, "fb", card.FrontBack{Front: "Q", Back: "A"}))
	c, p := newController(repo, nil)
	defer p.Close()

	require.NoError(t, c.Load(context.Background()))
	assert.Nil(t, c.Options())
}

func TestSession_LocationOnRecord(t *testing.T) {
	repo := newFakeRepo(rawRecord(t, "fb", card.FrontBack{Front: "Q", Back: "A"}))
	p := NewPersister(repo, nil, 4)
	c := New(repo, p, Options{
		DeckID:       "d",
		DeckName:     "Deck",
		UserID:       "u",
		LocationName: "Library",
		Now:          func() time.Time { return testNow },
	})

	require.NoError(t, c.Load(context.Background()))
	_, err := c.Submit("A")
	require.NoError(t, err)
	require.NoError(t, c.Advance())
	p.Close()

	require.Len(t, repo.sessions, 1)
	assert.Equal(t, "Library", repo.sessions[0].LocationName)
	assert.Equal(t, "Library", c.Summary().LocationName)
}
