package repository

import "github.com/okian/mergington/pkg/logger"

// Option applies a configuration option to the MemoryStore.
type Option func(*MemoryStore)

// WithLogger sets the logger used for mutation traces.
func WithLogger(l logger.Logger) Option {
	return func(s *MemoryStore) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics toggles participant gauges and latency observations.
func WithMetrics(enabled bool) Option {
	return func(s *MemoryStore) {
		s.metrics = enabled
	}
}
