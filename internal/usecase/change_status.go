package usecase

import (
	"context"
	"errors"

	"github.com/xavierca1/call-screener/internal/entity"
	"github.com/xavierca1/call-screener/internal/infra/queue"
	"github.com/xavierca1/call-screener/internal/screening"
	"github.com/xavierca1/call-screener/pkg/logging"
)

// ChangeStatusUseCase validates an operator's status command and forwards it
// to the store. Transitions are never inferred from data.
type ChangeStatusUseCase struct {
	Repo    entity.CallerRepository
	Queue   QueueProducerInterface
	Metrics MetricsRecorder

	roster rosterSource
	logger *logging.Logger
}

func NewChangeStatusUseCase(
	repo entity.CallerRepository,
	cache RosterCache,
	producer QueueProducerInterface,
	metrics MetricsRecorder,
	logger *logging.Logger,
) *ChangeStatusUseCase {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	if logger == nil {
		logger = logging.Discard()
	}
	logger = logger.With("usecase", "change_status")
	return &ChangeStatusUseCase{
		Repo:    repo,
		Queue:   producer,
		Metrics: metrics,
		roster:  rosterSource{repo: repo, cache: cache, logger: logger},
		logger:  logger,
	}
}

func (uc *ChangeStatusUseCase) Execute(ctx context.Context, input ChangeStatusInput) (*ChangeStatusOutput, error) {
	to, legacyReady, err := entity.ParseStatus(input.Status)
	if err != nil {
		return nil, &DomainError{Code: CodeInvalidStatus, Message: err.Error()}
	}

	caller, err := findCaller(ctx, uc.Repo, input.CallerID)
	if err != nil {
		return nil, err
	}
	from := caller.Status

	prioritized := caller.PrioritizedForHost
	if input.PrioritizeForHost != nil {
		prioritized = *input.PrioritizeForHost
	} else if legacyReady {
		prioritized = true
	}
	if to != entity.StatusQueued {
		prioritized = false
	}

	// A queued caller can be flagged for the host without moving.
	flagOnly := from == entity.StatusQueued && to == entity.StatusQueued && prioritized != caller.PrioritizedForHost
	if !flagOnly {
		if err := entity.ValidateTransition(from, to); err != nil {
			return nil, &DomainError{Code: CodeInvalidTransition, Message: err.Error()}
		}
	}

	if err := uc.Repo.UpdateStatus(ctx, caller.ID, to, prioritized); err != nil {
		if errors.Is(err, entity.ErrCallerNotFound) {
			return nil, notFound(caller.ID)
		}
		return nil, storeError("update caller status", err)
	}
	uc.roster.invalidate(ctx)

	caller.Status = to
	caller.PrioritizedForHost = prioritized

	uc.Metrics.RecordStatusTransition(string(from), string(to))
	uc.logger.Info("caller status changed",
		"caller_id", caller.ID, "from", from, "to", to, "prioritized_for_host", prioritized)

	if uc.Queue != nil {
		decoded := screening.Decode(caller.Notes)
		event := newEvent(caller, decoded.Topic, decoded.Priority, from, queue.OriginStatusChange)
		if err := uc.Queue.PublishScreeningEvent(ctx, event); err != nil {
			uc.logger.Error("status stored but event not published", "caller_id", caller.ID, "error", err)
		}
	}

	return &ChangeStatusOutput{
		ID:                 caller.ID,
		From:               from,
		To:                 to,
		PrioritizedForHost: prioritized,
	}, nil
}

func findCaller(ctx context.Context, repo entity.CallerRepository, id string) (*entity.Caller, error) {
	if id == "" {
		return nil, &DomainError{Code: CodeValidation, Message: "caller id is required"}
	}
	caller, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, entity.ErrCallerNotFound) {
			return nil, notFound(id)
		}
		return nil, storeError("load caller", err)
	}
	return caller, nil
}

func notFound(id string) *DomainError {
	return &DomainError{Code: CodeNotFound, Message: "caller " + id + " not found"}
}
