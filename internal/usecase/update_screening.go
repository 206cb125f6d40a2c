package usecase

import (
	"context"

	"github.com/xavierca1/call-screener/internal/entity"
	"github.com/xavierca1/call-screener/internal/infra/queue"
	"github.com/xavierca1/call-screener/internal/screening"
	"github.com/xavierca1/call-screener/pkg/logging"
)

// UpdateScreeningUseCase re-screens an existing caller. Notes and status are
// two separate writes on the store, so they run as a Transaction: if the
// status write fails the previous notes are put back.
type UpdateScreeningUseCase struct {
	Repo    entity.CallerRepository
	Queue   QueueProducerInterface
	Metrics MetricsRecorder
	Scale   entity.Scale

	roster rosterSource
	logger *logging.Logger
}

func NewUpdateScreeningUseCase(
	repo entity.CallerRepository,
	cache RosterCache,
	producer QueueProducerInterface,
	metrics MetricsRecorder,
	scale entity.Scale,
	logger *logging.Logger,
) *UpdateScreeningUseCase {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	if logger == nil {
		logger = logging.Discard()
	}
	logger = logger.With("usecase", "update_screening")
	return &UpdateScreeningUseCase{
		Repo:    repo,
		Queue:   producer,
		Metrics: metrics,
		Scale:   scale,
		roster:  rosterSource{repo: repo, cache: cache, logger: logger},
		logger:  logger,
	}
}

func (uc *UpdateScreeningUseCase) Execute(ctx context.Context, input UpdateScreeningInput) (*CallerView, error) {
	if errs := ValidateUpdateScreeningInput(input); len(errs) > 0 {
		return nil, validationFailed(errs)
	}

	caller, err := findCaller(ctx, uc.Repo, input.CallerID)
	if err != nil {
		return nil, err
	}
	if caller.Status.Terminal() {
		return nil, &DomainError{Code: CodeInvalidTransition, Message: "completed calls cannot be re-screened"}
	}

	from := caller.Status
	to := from
	prioritized := caller.PrioritizedForHost
	if input.Status != "" {
		var legacyReady bool
		if to, legacyReady, err = entity.ParseStatus(input.Status); err != nil {
			return nil, &DomainError{Code: CodeInvalidStatus, Message: err.Error()}
		}
		if legacyReady {
			prioritized = true
		}
		if to != from {
			if err := entity.ValidateTransition(from, to); err != nil {
				return nil, &DomainError{Code: CodeInvalidTransition, Message: err.Error()}
			}
		}
	}
	if input.PrioritizeForHost != nil {
		prioritized = *input.PrioritizeForHost
	}
	if to != entity.StatusQueued {
		prioritized = false
	}

	entry := screening.NewEntry(uc.Scale, input.Topic, input.Notes, toDocuments(input.Documents))
	notes := screening.Encode(entry)
	docNames := entry.DocumentNames()
	previousNotes, previousDocs := caller.Notes, caller.DocumentNames

	txn := NewTransaction(uc.logger)
	txn.AddOperation("update_notes", func(ctx context.Context) error {
		return uc.Repo.UpdateNotes(ctx, caller.ID, notes, docNames)
	})
	txn.AddCompensation("restore_notes", func(ctx context.Context) error {
		return uc.Repo.UpdateNotes(ctx, caller.ID, previousNotes, previousDocs)
	})
	if to != from || prioritized != caller.PrioritizedForHost {
		txn.AddOperation("update_status", func(ctx context.Context) error {
			return uc.Repo.UpdateStatus(ctx, caller.ID, to, prioritized)
		})
	}

	if err := txn.Execute(ctx); err != nil {
		return nil, storeError("update screening", err)
	}
	uc.roster.invalidate(ctx)

	caller.Notes = notes
	caller.DocumentNames = docNames
	caller.Status = to
	caller.PrioritizedForHost = prioritized

	uc.Metrics.RecordScreening(string(entry.Priority))
	if to != from {
		uc.Metrics.RecordStatusTransition(string(from), string(to))
	}
	uc.logger.Info("screening updated", "caller_id", caller.ID, "priority", entry.Priority, "status", to)

	if uc.Queue != nil {
		event := newEvent(caller, entry.Topic, entry.Priority, from, queue.OriginUpdate)
		if err := uc.Queue.PublishScreeningEvent(ctx, event); err != nil {
			uc.logger.Error("screening stored but event not published", "caller_id", caller.ID, "error", err)
		}
	}

	roster, err := uc.roster.load(ctx)
	if err != nil {
		// The write went through; only the derived history is missing.
		uc.logger.Warn("roster unavailable after update", "error", err)
		roster = nil
	}
	view := buildView(caller, roster)
	return &view, nil
}
