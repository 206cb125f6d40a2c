package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xavierca1/call-screener/internal/entity"
)

func screeningCaller() *entity.Caller {
	return &entity.Caller{
		ID:            "c-1",
		Name:          "Dale",
		Phone:         "555-0001",
		Notes:         "Topic: Tires | Priority: NORMAL",
		DocumentNames: []string{"old.pdf"},
		Status:        entity.StatusScreening,
	}
}

func TestUpdateScreeningNotesAndStatus(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCallerRepository)
	producer := new(MockQueueProducer)

	repo.On("FindByID", ctx, "c-1").Return(screeningCaller(), nil)
	repo.On("UpdateNotes", ctx, "c-1", "Topic: Tires | Notes: Question about retreads | Priority: MEDIUM", []string{}).Return(nil)
	repo.On("UpdateStatus", ctx, "c-1", entity.StatusQueued, false).Return(nil)
	repo.On("List", ctx).Return([]*entity.Caller{screeningCaller()}, nil)
	producer.On("PublishScreeningEvent", ctx, mock.Anything).Return(nil)

	uc := NewUpdateScreeningUseCase(repo, nil, producer, nil, entity.ScaleStandard, nil)
	view, err := uc.Execute(ctx, UpdateScreeningInput{
		CallerID: "c-1",
		Topic:    "Tires",
		Notes:    "Question about retreads",
		Status:   "queued",
	})

	require.NoError(t, err)
	assert.Equal(t, entity.PriorityMedium, view.Priority)
	assert.Equal(t, "Question about retreads", view.ScreenerNotes)
	assert.Equal(t, entity.StatusQueued, view.Status)
	assert.Empty(t, view.History, "a caller never appears in its own history")
	repo.AssertExpectations(t)
}

func TestUpdateScreeningRestoresNotesWhenStatusFails(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCallerRepository)

	repo.On("FindByID", ctx, "c-1").Return(screeningCaller(), nil)
	repo.On("UpdateNotes", ctx, "c-1", "Topic: Urgent tire blowout | Priority: HIGH", []string{}).Return(nil).Once()
	repo.On("UpdateStatus", ctx, "c-1", entity.StatusQueued, true).Return(errors.New("store unavailable"))
	repo.On("UpdateNotes", ctx, "c-1", "Topic: Tires | Priority: NORMAL", []string{"old.pdf"}).Return(nil).Once()

	prioritize := true
	uc := NewUpdateScreeningUseCase(repo, nil, nil, nil, entity.ScaleStandard, nil)
	_, err := uc.Execute(ctx, UpdateScreeningInput{
		CallerID:          "c-1",
		Topic:             "Urgent tire blowout",
		Status:            "queued",
		PrioritizeForHost: &prioritize,
	})

	require.Error(t, err)
	var te *TechnicalError
	assert.ErrorAs(t, err, &te)
	repo.AssertNumberOfCalls(t, "UpdateNotes", 2)
}

func TestUpdateScreeningNotesOnly(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCallerRepository)

	repo.On("FindByID", ctx, "c-1").Return(screeningCaller(), nil)
	repo.On("UpdateNotes", ctx, "c-1", mock.Anything, []string{"new.pdf"}).Return(nil)
	repo.On("List", ctx).Return(nil, errors.New("list failed"))

	uc := NewUpdateScreeningUseCase(repo, nil, nil, nil, entity.ScaleStandard, nil)
	view, err := uc.Execute(ctx, UpdateScreeningInput{
		CallerID:  "c-1",
		Topic:     "Tires",
		Documents: []DocumentInput{{Name: "new.pdf", Size: 10}},
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"new.pdf"}, view.Documents)
	repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateScreeningRejectsCompleted(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCallerRepository)
	c := screeningCaller()
	c.Status = entity.StatusCompleted
	repo.On("FindByID", ctx, "c-1").Return(c, nil)

	uc := NewUpdateScreeningUseCase(repo, nil, nil, nil, entity.ScaleStandard, nil)
	_, err := uc.Execute(ctx, UpdateScreeningInput{CallerID: "c-1", Topic: "Tires"})

	var de *DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, CodeInvalidTransition, de.Code)
}
