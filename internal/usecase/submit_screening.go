package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/xavierca1/call-screener/internal/entity"
	"github.com/xavierca1/call-screener/internal/infra/queue"
	"github.com/xavierca1/call-screener/internal/screening"
	"github.com/xavierca1/call-screener/pkg/logging"
)

type SubmitScreeningUseCase struct {
	Repo    entity.CallerRepository
	Queue   QueueProducerInterface
	Metrics MetricsRecorder
	Scale   entity.Scale

	roster rosterSource
	logger *logging.Logger
}

func NewSubmitScreeningUseCase(
	repo entity.CallerRepository,
	cache RosterCache,
	producer QueueProducerInterface,
	metrics MetricsRecorder,
	scale entity.Scale,
	logger *logging.Logger,
) *SubmitScreeningUseCase {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	if logger == nil {
		logger = logging.Discard()
	}
	logger = logger.With("usecase", "submit_screening")
	return &SubmitScreeningUseCase{
		Repo:    repo,
		Queue:   producer,
		Metrics: metrics,
		Scale:   scale,
		roster:  rosterSource{repo: repo, cache: cache, logger: logger},
		logger:  logger,
	}
}

func (uc *SubmitScreeningUseCase) Execute(ctx context.Context, input SubmitScreeningInput) (*SubmitScreeningOutput, error) {
	if errs := ValidateSubmitScreeningInput(input); len(errs) > 0 {
		return nil, validationFailed(errs)
	}

	entry := screening.NewEntry(uc.Scale, input.Topic, input.Notes, toDocuments(input.Documents))
	notes := screening.Encode(entry)

	caller, err := entity.NewCaller(input.Name, input.Phone, input.Location, input.Email, notes)
	if err != nil {
		return nil, &DomainError{Code: CodeValidation, Message: err.Error()}
	}
	caller.DocumentNames = entry.DocumentNames()

	if input.SendToHost {
		caller.Status = entity.StatusQueued
		caller.PrioritizedForHost = input.PrioritizeForHost
	}

	roster, err := uc.roster.load(ctx)
	if err != nil {
		return nil, err
	}

	history := screening.History(caller.Phone, roster, caller.ID)
	caller.CallerType = screening.CallerTypeFor(caller.Phone, roster, caller.ID)
	caller.TotalCalls = screening.PriorCallCount(caller.Phone, roster, caller.ID) + 1

	if err := uc.Repo.Create(ctx, caller); err != nil {
		if errors.Is(err, entity.ErrCallerExists) {
			return nil, &DomainError{Code: CodeConflict, Message: "caller already submitted"}
		}
		return nil, storeError("create caller", err)
	}
	uc.roster.invalidate(ctx)

	uc.Metrics.RecordScreening(string(entry.Priority))
	uc.logger.Info("screening submitted",
		"caller_id", caller.ID,
		"status", caller.Status,
		"priority", entry.Priority,
		"caller_type", caller.CallerType,
	)

	uc.publish(ctx, caller, entry, "", queue.OriginSubmission)

	return &SubmitScreeningOutput{
		ID:         caller.ID,
		Status:     caller.Status,
		Priority:   entry.Priority,
		CallerType: caller.CallerType,
		TotalCalls: caller.TotalCalls,
		Notes:      notes,
		History:    history,
		Msg:        "Caller added to the screener",
	}, nil
}

// publish never fails the request: the caller is already stored and the host
// board catches up on the next poll.
func (uc *SubmitScreeningUseCase) publish(ctx context.Context, c *entity.Caller, entry entity.ScreeningEntry, previous entity.Status, origin string) {
	if uc.Queue == nil {
		return
	}
	if err := uc.Queue.PublishScreeningEvent(ctx, newEvent(c, entry.Topic, entry.Priority, previous, origin)); err != nil {
		uc.logger.Error("caller stored but event not published", "caller_id", c.ID, "error", err)
	}
}

func newEvent(c *entity.Caller, topic string, priority entity.Priority, previous entity.Status, origin string) queue.ScreeningEvent {
	return queue.ScreeningEvent{
		CallerID:           c.ID,
		Name:               c.Name,
		MaskedPhone:        entity.MaskPhone(c.Phone),
		Location:           c.Location,
		Topic:              topic,
		Priority:           string(priority),
		Status:             string(c.Status),
		PreviousStatus:     string(previous),
		PrioritizedForHost: c.PrioritizedForHost,
		CallerType:         string(c.CallerType),
		Origin:             origin,
		OccurredAt:         time.Now().UTC(),
	}
}
