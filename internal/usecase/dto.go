package usecase

import (
	"github.com/xavierca1/call-screener/internal/entity"
	"github.com/xavierca1/call-screener/internal/screening"
)

type DocumentInput struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
	Size int64  `json:"size"`
	Type string `json:"type"`
}

type SubmitScreeningInput struct {
	Name      string          `json:"name"`
	Phone     string          `json:"phone"`
	Location  string          `json:"location"`
	Email     string          `json:"email"`
	Topic     string          `json:"topic"`
	Notes     string          `json:"notes"`
	Documents []DocumentInput `json:"documents"`

	SendToHost        bool `json:"send_to_host"`
	PrioritizeForHost bool `json:"prioritize_for_host"`
}

type SubmitScreeningOutput struct {
	ID         string                    `json:"id"`
	Status     entity.Status             `json:"status"`
	Priority   entity.Priority           `json:"priority"`
	CallerType entity.CallerType         `json:"caller_type"`
	TotalCalls int                       `json:"total_calls"`
	Notes      string                    `json:"notes"`
	History    []screening.HistoryRecord `json:"history"`
	Msg        string                    `json:"msg"`
}

type UpdateScreeningInput struct {
	CallerID          string          `json:"-"`
	Topic             string          `json:"topic"`
	Notes             string          `json:"notes"`
	Documents         []DocumentInput `json:"documents"`
	Status            string          `json:"status,omitempty"`
	PrioritizeForHost *bool           `json:"prioritize_for_host,omitempty"`
}

type ChangeStatusInput struct {
	CallerID          string `json:"-"`
	Status            string `json:"status"`
	PrioritizeForHost *bool  `json:"prioritize_for_host,omitempty"`
}

type ChangeStatusOutput struct {
	ID                 string        `json:"id"`
	From               entity.Status `json:"from"`
	To                 entity.Status `json:"to"`
	PrioritizedForHost bool          `json:"prioritized_for_host"`
}

type PreviewInput struct {
	Topic         string   `json:"topic"`
	Notes         string   `json:"notes"`
	DocumentNames []string `json:"document_names"`
}

type PreviewOutput struct {
	Priority entity.Priority `json:"priority"`
	Notes    string          `json:"notes"`
}

// CallerView is a caller as the screener board shows it: the stored record
// plus everything derived from its notes and the rest of the roster.
type CallerView struct {
	*entity.Caller
	Topic         string                    `json:"topic"`
	ScreenerNotes string                    `json:"screener_notes"`
	Priority      entity.Priority           `json:"priority"`
	Documents     []string                  `json:"documents,omitempty"`
	Returning     bool                      `json:"returning"`
	History       []screening.HistoryRecord `json:"history"`
}

type ListRosterInput struct {
	Status string
}
