// Package ledger implements the budgeting engine.
//
// Income is allocated into per-category budgets, expenses are authorized
// against the remaining budget of their category and period, overspending
// is covered by subsidies from other categories and the remaining budget
// is settled into the next period at period close.
//
// For a category and period, the remaining budget is
//
//	totalBudget + subsidies received - expenses - subsidies given
//
// and 0 when the category has no budget for the period.
package ledger

import (
	"context"
	"sync"
	"time"

	"github.com/envelope-zero/ledger/pkg/store"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Ledger is the budgeting engine. It is safe for concurrent use.
type Ledger struct {
	store store.Store
	now   func() time.Time
	log   zerolog.Logger

	// gate is held shared by all regular operations and exclusively by
	// backup export and import.
	gate sync.RWMutex
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithClock sets the clock used for record timestamps and export dates.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) {
		l.now = now
	}
}

// WithLogger sets the logger. The default is the global zerolog logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(l *Ledger) {
		l.log = logger
	}
}

// New returns a Ledger working on the store.
func New(s store.Store, opts ...Option) *Ledger {
	l := &Ledger{
		store: s,
		now:   time.Now,
		log:   log.Logger,
	}

	for _, opt := range opts {
		opt(l)
	}

	l.log = l.log.With().Str("component", "ledger").Logger()
	return l
}

// shared acquires the gate for a regular operation and returns the
// function that releases it.
func (l *Ledger) shared() func() {
	l.gate.RLock()
	return l.gate.RUnlock
}

// exclusive acquires the gate for a stop-the-world operation.
func (l *Ledger) exclusive() func() {
	l.gate.Lock()
	return l.gate.Unlock
}

// read runs a query made of several statements as one unit, so that it
// sees a single committed state of the store.
func (l *Ledger) read(ctx context.Context, fn func(store.Store) error) error {
	return l.store.Atomic(ctx, fn)
}

func (l *Ledger) timestamp() time.Time {
	return l.now().In(time.UTC)
}

// Ping verifies that the store is reachable.
func (l *Ledger) Ping(ctx context.Context) error {
	return l.store.Ping(ctx)
}
