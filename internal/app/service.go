// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	repository "github.com/okian/mergington/internal/adapters/repository"
	"github.com/okian/mergington/internal/domain/activity"
	"github.com/okian/mergington/pkg/logger"
	"github.com/okian/mergington/pkg/metrics"
)

// ErrNotStarted is returned by operations invoked outside Start/Stop.
var ErrNotStarted = errors.New("service not started")

// Operation names used in logs and metrics.
const (
	opList       = "list"
	opSignup     = "signup"
	opUnregister = "unregister"
)

// Service owns the activity registry for the lifetime of the process.
type Service struct {
	mu sync.RWMutex

	store repository.Store
	// injected is true when the store came from WithStore; Stop leaves it open.
	injected bool
	seed     activity.Catalog

	started   bool
	startedAt time.Time

	signups         atomic.Int64
	unregistrations atomic.Int64
	rejections      atomic.Int64

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSeed replaces the built-in catalog the registry starts from.
func WithSeed(seed activity.Catalog) Option {
	return func(s *Service) {
		if len(seed) > 0 {
			s.seed = seed
		}
	}
}

// WithStore supplies a ready-made store; the seed is then ignored.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
			s.injected = true
		}
	}
}

// New constructs a Service. The registry is built by Start.
func New(opts ...Option) *Service {
	s := &Service{
		seed: activity.Seed(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start builds the registry from the seed. Calling Start twice is a no-op.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting activities service...")

	if !s.injected {
		store, err := repository.NewMemoryStore(ctx, s.seed,
			repository.WithLogger(s.logger.Named("registry")),
		)
		if err != nil {
			return err
		}
		s.store = store
	}

	s.started = true
	s.startedAt = time.Now()
	s.logger.Info(ctx, "activities service started",
		logger.Int("activities", s.store.Count(ctx)),
	)
	return nil
}

// Stop releases the registry. Its state is discarded; a later Start
// rebuilds it from the seed.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.logger.Info(context.Background(), "stopping activities service...")

	if !s.injected && s.store != nil {
		if err := s.store.Close(); err != nil {
			s.logger.Warn(context.Background(), "closing registry", logger.Error(err))
		}
		s.store = nil
	}

	s.started = false
	s.logger.Info(context.Background(), "activities service stopped")
}

// Ready reports whether the service accepts requests.
func (s *Service) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.started
}

func (s *Service) current() (repository.Store, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, ErrNotStarted
	}
	return s.store, nil
}

// ListActivities returns every activity in registry order.
func (s *Service) ListActivities(ctx context.Context) (activity.Catalog, error) {
	store, err := s.current()
	if err != nil {
		return nil, err
	}
	return store.List(ctx)
}

// SignUp registers email for the named activity.
func (s *Service) SignUp(ctx context.Context, name, email string) (activity.Activity, error) {
	store, err := s.current()
	if err != nil {
		return activity.Activity{}, err
	}
	a, err := store.AddParticipant(ctx, name, email)
	if err != nil {
		s.reject(ctx, opSignup, name, email, err)
		return activity.Activity{}, err
	}
	s.signups.Add(1)
	metrics.RecordSignup(name)
	s.logger.Info(ctx, "student signed up",
		logger.String("activity", name),
		logger.String("email", email),
		logger.Int("participants", len(a.Participants)),
		logger.Int("max_participants", a.MaxParticipants),
	)
	return a, nil
}

// Unregister removes email from the named activity.
func (s *Service) Unregister(ctx context.Context, name, email string) (activity.Activity, error) {
	store, err := s.current()
	if err != nil {
		return activity.Activity{}, err
	}
	a, err := store.RemoveParticipant(ctx, name, email)
	if err != nil {
		s.reject(ctx, opUnregister, name, email, err)
		return activity.Activity{}, err
	}
	s.unregistrations.Add(1)
	metrics.RecordUnregistration(name)
	s.logger.Info(ctx, "student unregistered",
		logger.String("activity", name),
		logger.String("email", email),
		logger.Int("participants", len(a.Participants)),
	)
	return a, nil
}

func (s *Service) reject(ctx context.Context, op, name, email string, err error) {
	reason := rejectionReason(err)
	if reason == "" {
		s.logger.Error(ctx, op+" failed",
			logger.String("activity", name),
			logger.String("email", email),
			logger.Error(err),
		)
		return
	}
	s.rejections.Add(1)
	metrics.RecordRejection(op, reason)
	s.logger.Info(ctx, op+" rejected",
		logger.String("activity", name),
		logger.String("email", email),
		logger.String("reason", reason),
	)
}

// rejectionReason classifies client errors; it returns "" for anything else.
func rejectionReason(err error) string {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return "not_found"
	case errors.Is(err, repository.ErrAlreadySignedUp):
		return "already_signed_up"
	case errors.Is(err, repository.ErrNotSignedUp):
		return "not_signed_up"
	default:
		return ""
	}
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":         s.started,
		"signups":         s.signups.Load(),
		"unregistrations": s.unregistrations.Load(),
		"rejections":      s.rejections.Load(),
	}

	if s.started {
		ctx := context.Background()
		stats["activities"] = s.store.Count(ctx)
		stats["uptimeSeconds"] = int64(time.Since(s.startedAt).Seconds())
		if catalog, err := s.store.List(ctx); err == nil {
			stats["participants"] = catalog.TotalParticipants()
		}
	}
	return stats
}
