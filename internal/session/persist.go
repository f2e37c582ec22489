package session

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/abhisek/flashdeck/internal/card"
)

// DefaultQueueSize is the persist queue capacity used when none is configured.
const DefaultQueueSize = 64

// Persister writes card and session results in the background. Submitting
// never blocks and outcomes are only logged.
type Persister struct {
	repo Repository
	log  *zap.Logger

	mu      sync.RWMutex
	closed  bool
	pending chan persistJob
	wg      sync.WaitGroup
}

type persistJob struct {
	kind  string
	id    string
	level zapcore.Level
	run   func(ctx context.Context) error
}

// NewPersister starts a persister with a single worker draining a queue of
// the given size. A nil logger discards output.
func NewPersister(repo Repository, log *zap.Logger, queueSize int) *Persister {
	if log == nil {
		log = zap.NewNop()
	}
	if queueSize < 1 {
		queueSize = DefaultQueueSize
	}
	p := &Persister{
		repo:    repo,
		log:     log.Named("persist"),
		pending: make(chan persistJob, queueSize),
	}
	p.wg.Add(1)
	go p.processLoop()
	return p
}

// PersistCard queues a write of the card's scheduling state.
func (p *Persister) PersistCard(deckID string, rec card.Record) {
	p.submit(persistJob{
		kind:  "card",
		id:    rec.ID,
		level: zapcore.WarnLevel,
		run: func(ctx context.Context) error {
			return p.repo.PersistCard(ctx, deckID, rec)
		},
	})
}

// PersistSession queues a write of a completed session record.
func (p *Persister) PersistSession(rec Record) {
	p.submit(persistJob{
		kind:  "session",
		id:    rec.ID,
		level: zapcore.ErrorLevel,
		run: func(ctx context.Context) error {
			return p.repo.PersistSession(ctx, rec)
		},
	})
}

func (p *Persister) submit(job persistJob) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		p.log.Error("persister closed, write dropped",
			zap.String("kind", job.kind), zap.String("id", job.id))
		return
	}

	select {
	case p.pending <- job:
	default:
		// Queue full: run on its own goroutine rather than block the caller.
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			p.run(job)
		}()
	}
}

func (p *Persister) processLoop() {
	defer p.wg.Done()
	for job := range p.pending {
		p.run(job)
	}
}

func (p *Persister) run(job persistJob) {
	err := job.run(context.Background())
	if err == nil {
		p.log.Debug("persisted", zap.String("kind", job.kind), zap.String("id", job.id))
		return
	}
	perr := &PersistError{Kind: job.kind, ID: job.id, Err: err}
	if ce := p.log.Check(job.level, "persist failed"); ce != nil {
		ce.Write(zap.String("kind", job.kind), zap.String("id", job.id), zap.Error(perr))
	}
}

// Close stops accepting writes and waits for queued and in-flight writes to
// finish. It is safe to call more than once.
func (p *Persister) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.pending)
	p.mu.Unlock()

	p.wg.Wait()
}
