package usecase

import (
	"context"

	"github.com/xavierca1/call-screener/internal/entity"
	"github.com/xavierca1/call-screener/pkg/logging"
)

// rosterSource reads the roster through the cache when there is one. Cache
// failures only cost a store round trip.
type rosterSource struct {
	repo   entity.CallerRepository
	cache  RosterCache
	logger *logging.Logger
}

func (s rosterSource) load(ctx context.Context) ([]*entity.Caller, error) {
	if s.cache != nil {
		roster, ok, err := s.cache.Load(ctx)
		if err != nil {
			s.logger.Warn("roster cache read failed", "error", err)
		} else if ok {
			return roster, nil
		}
	}

	roster, err := s.repo.List(ctx)
	if err != nil {
		return nil, storeError("list callers", err)
	}

	if s.cache != nil {
		if err := s.cache.Store(ctx, roster); err != nil {
			s.logger.Warn("roster cache write failed", "error", err)
		}
	}
	return roster, nil
}

func (s rosterSource) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("roster cache invalidate failed", "error", err)
	}
}
