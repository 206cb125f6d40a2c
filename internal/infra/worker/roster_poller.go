package worker

import (
	"context"
	"time"

	"github.com/xavierca1/call-screener/internal/entity"
	"github.com/xavierca1/call-screener/pkg/logging"
)

// RosterLister is the read side of the caller store.
type RosterLister interface {
	List(ctx context.Context) ([]*entity.Caller, error)
}

// RosterStore receives each fresh snapshot.
type RosterStore interface {
	Store(ctx context.Context, roster []*entity.Caller) error
}

// RosterPoller keeps the roster cache warm so every screener board sees
// callers added by other screeners within one interval.
type RosterPoller struct {
	source       RosterLister
	cache        RosterStore
	tickInterval time.Duration
	logger       *logging.Logger

	lastCount int
}

func NewRosterPoller(source RosterLister, cache RosterStore, interval time.Duration, logger *logging.Logger) *RosterPoller {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &RosterPoller{
		source:       source,
		cache:        cache,
		tickInterval: interval,
		logger:       logger.With("worker", "roster_poller"),
		lastCount:    -1,
	}
}

// Start refreshes once immediately and then on every tick until ctx ends.
func (p *RosterPoller) Start(ctx context.Context) {
	p.logger.Info("roster poller started", "interval", p.tickInterval.String())

	ticker := time.NewTicker(p.tickInterval)
	defer ticker.Stop()

	p.Refresh(ctx)

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("roster poller stopped")
			return
		case <-ticker.C:
			p.Refresh(ctx)
		}
	}
}

// Refresh copies the store's roster into the cache. Failures are logged and
// retried on the next tick.
func (p *RosterPoller) Refresh(ctx context.Context) bool {
	roster, err := p.source.List(ctx)
	if err != nil {
		if ctx.Err() == nil {
			p.logger.Warn("roster refresh failed", "error", err)
		}
		return false
	}

	if err := p.cache.Store(ctx, roster); err != nil {
		p.logger.Warn("roster cache write failed", "error", err)
		return false
	}

	if len(roster) != p.lastCount {
		p.logger.Debug("roster refreshed", "callers", len(roster))
		p.lastCount = len(roster)
	}
	return true
}
