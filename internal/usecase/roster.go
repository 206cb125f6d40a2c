package usecase

import (
	"context"
	"sort"
	"strings"

	"github.com/xavierca1/call-screener/internal/entity"
	"github.com/xavierca1/call-screener/internal/screening"
	"github.com/xavierca1/call-screener/pkg/logging"
)

// RosterUseCase answers every read the screener board makes.
type RosterUseCase struct {
	Repo  entity.CallerRepository
	Scale entity.Scale

	roster rosterSource
}

func NewRosterUseCase(repo entity.CallerRepository, cache RosterCache, scale entity.Scale, logger *logging.Logger) *RosterUseCase {
	if logger == nil {
		logger = logging.Discard()
	}
	return &RosterUseCase{
		Repo:   repo,
		Scale:  scale,
		roster: rosterSource{repo: repo, cache: cache, logger: logger.With("usecase", "roster")},
	}
}

// List returns the roster newest first, optionally filtered by status.
func (uc *RosterUseCase) List(ctx context.Context, input ListRosterInput) ([]CallerView, error) {
	var filter entity.Status
	if strings.TrimSpace(input.Status) != "" {
		status, _, err := entity.ParseStatus(input.Status)
		if err != nil {
			return nil, &DomainError{Code: CodeInvalidStatus, Message: err.Error()}
		}
		filter = status
	}

	roster, err := uc.roster.load(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]CallerView, 0, len(roster))
	for _, c := range roster {
		if c == nil || (filter != "" && c.Status != filter) {
			continue
		}
		views = append(views, buildView(c, roster))
	}

	sort.SliceStable(views, func(i, j int) bool {
		return views[i].CallDate().After(views[j].CallDate())
	})
	return views, nil
}

func (uc *RosterUseCase) Get(ctx context.Context, id string) (*CallerView, error) {
	caller, err := findCaller(ctx, uc.Repo, id)
	if err != nil {
		return nil, err
	}
	roster, err := uc.roster.load(ctx)
	if err != nil {
		return nil, err
	}
	view := buildView(caller, roster)
	return &view, nil
}

func (uc *RosterUseCase) History(ctx context.Context, phone, excludeID string) ([]screening.HistoryRecord, error) {
	if strings.TrimSpace(phone) == "" {
		return []screening.HistoryRecord{}, nil
	}
	roster, err := uc.roster.load(ctx)
	if err != nil {
		return nil, err
	}
	return screening.History(phone, roster, excludeID), nil
}

// Preview shows the screener what a form would be stored as, without storing it.
func (uc *RosterUseCase) Preview(input PreviewInput) PreviewOutput {
	docs := make([]entity.Document, 0, len(input.DocumentNames))
	for _, name := range input.DocumentNames {
		docs = append(docs, entity.Document{Name: name})
	}
	entry := screening.NewEntry(uc.Scale, input.Topic, input.Notes, docs)
	return PreviewOutput{
		Priority: entry.Priority,
		Notes:    screening.Encode(entry),
	}
}

func buildView(c *entity.Caller, roster []*entity.Caller) CallerView {
	decoded := screening.Decode(c.Notes)
	history := screening.History(c.Phone, roster, c.ID)
	docs := c.DocumentNames
	if len(docs) == 0 {
		docs = decoded.Documents
	}
	return CallerView{
		Caller:        c,
		Topic:         decoded.Topic,
		ScreenerNotes: decoded.Notes,
		Priority:      decoded.Priority,
		Documents:     docs,
		Returning:     len(history) > 0,
		History:       history,
	}
}
