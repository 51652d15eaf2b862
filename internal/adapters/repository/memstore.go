package repository

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/mergington/internal/domain/activity"
	"github.com/okian/mergington/pkg/logger"
	"github.com/okian/mergington/pkg/metrics"
)

const nanosecondsPerMillisecond = 1e6

// entry guards one activity. Mutations of different activities never contend.
type entry struct {
	mu  sync.RWMutex
	act activity.Activity
}

// MemoryStore is an in-memory Store. The name index is built once and never
// written again, so lookups need no lock; each activity carries its own lock
// held across the check-then-act of a mutation.
type MemoryStore struct {
	order  []string
	byName map[string]*entry
	closed atomic.Bool

	logger  logger.Logger
	metrics bool
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore builds a store from seed. Names must be unique and every
// record must pass activity.Validate.
func NewMemoryStore(_ context.Context, seed activity.Catalog, opts ...Option) (*MemoryStore, error) {
	s := &MemoryStore{
		order:   make([]string, 0, len(seed)),
		byName:  make(map[string]*entry, len(seed)),
		logger:  logger.Nop(),
		metrics: true,
	}
	for _, opt := range opts {
		opt(s)
	}

	for _, a := range seed {
		if err := a.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidSeed, err)
		}
		if _, dup := s.byName[a.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate activity %q", ErrInvalidSeed, a.Name)
		}
		s.byName[a.Name] = &entry{act: a.Clone()}
		s.order = append(s.order, a.Name)
	}

	if s.metrics {
		metrics.UpdateActivityCount(len(s.order))
		for _, name := range s.order {
			metrics.UpdateParticipants(name, len(s.byName[name].act.Participants))
		}
	}
	return s, nil
}

func (s *MemoryStore) lookup(ctx context.Context, name string) (*entry, error) {
	if s.closed.Load() {
		return nil, ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	e, ok := s.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return e, nil
}

// List returns a snapshot of every activity in seed order. Each activity is
// copied under its own read lock; the snapshot is not atomic across activities.
func (s *MemoryStore) List(ctx context.Context) (activity.Catalog, error) {
	if s.closed.Load() {
		return nil, ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	defer s.observe("list", time.Now())

	out := make(activity.Catalog, 0, len(s.order))
	for _, name := range s.order {
		e := s.byName[name]
		e.mu.RLock()
		out = append(out, e.act.Clone())
		e.mu.RUnlock()
	}
	return out, nil
}

// Get returns one activity.
func (s *MemoryStore) Get(ctx context.Context, name string) (activity.Activity, error) {
	e, err := s.lookup(ctx, name)
	if err != nil {
		return activity.Activity{}, err
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.act.Clone(), nil
}

// AddParticipant implements Store.
func (s *MemoryStore) AddParticipant(ctx context.Context, name, email string) (activity.Activity, error) {
	e, err := s.lookup(ctx, name)
	if err != nil {
		return activity.Activity{}, err
	}
	defer s.observe("signup", time.Now())

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.act.HasParticipant(email) {
		return activity.Activity{}, fmt.Errorf("%w: %s in %s", ErrAlreadySignedUp, email, name)
	}
	e.act.Participants = append(e.act.Participants, email)
	s.publish(ctx, "participant added", e.act, email)
	return e.act.Clone(), nil
}

// RemoveParticipant implements Store.
func (s *MemoryStore) RemoveParticipant(ctx context.Context, name, email string) (activity.Activity, error) {
	e, err := s.lookup(ctx, name)
	if err != nil {
		return activity.Activity{}, err
	}
	defer s.observe("unregister", time.Now())

	e.mu.Lock()
	defer e.mu.Unlock()

	idx := slices.Index(e.act.Participants, email)
	if idx < 0 {
		return activity.Activity{}, fmt.Errorf("%w: %s in %s", ErrNotSignedUp, email, name)
	}
	e.act.Participants = slices.Delete(e.act.Participants, idx, idx+1)
	s.publish(ctx, "participant removed", e.act, email)
	return e.act.Clone(), nil
}

// Count returns the number of activities.
func (s *MemoryStore) Count(_ context.Context) int {
	return len(s.order)
}

// Close marks the store closed. It is safe to call more than once.
func (s *MemoryStore) Close() error {
	s.closed.Store(true)
	return nil
}

// publish must be called with the entry lock held.
func (s *MemoryStore) publish(ctx context.Context, msg string, a activity.Activity, email string) {
	if s.metrics {
		metrics.UpdateParticipants(a.Name, len(a.Participants))
	}
	s.logger.Debug(ctx, msg,
		logger.String("activity", a.Name),
		logger.String("email", email),
		logger.Int("participants", len(a.Participants)),
	)
}

func (s *MemoryStore) observe(op string, start time.Time) {
	if s.metrics {
		metrics.RecordOperationLatency(op, float64(time.Since(start).Nanoseconds())/nanosecondsPerMillisecond)
	}
}
