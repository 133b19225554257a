// Package moderation holds the transactional workflows behind reviews,
// travel agent applications, reports and website reviews.
package moderation

import (
	"time"

	"go.uber.org/zap"

	"wandercritic/internal/domain/storage"
	"wandercritic/internal/metrics"
)

type Service struct {
	store   *storage.Container
	logger  *zap.SugaredLogger
	metrics *metrics.Metrics
	now     func() time.Time
}

var _ Moderator = (*Service)(nil)

func NewService(store *storage.Container, logger *zap.SugaredLogger, m *metrics.Metrics) *Service {
	return &Service{
		store:   store,
		logger:  logger,
		metrics: m,
		now:     time.Now,
	}
}

// WithClock overrides the time source used for resolution stamps.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}
