package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/call-screener/internal/usecase"
	"github.com/xavierca1/call-screener/pkg/logging"
)

type CallerHandler struct {
	SubmitUC *usecase.SubmitScreeningUseCase
	UpdateUC *usecase.UpdateScreeningUseCase
	StatusUC *usecase.ChangeStatusUseCase
	RosterUC *usecase.RosterUseCase

	logger *logging.Logger
}

func NewCallerHandler(
	submit *usecase.SubmitScreeningUseCase,
	update *usecase.UpdateScreeningUseCase,
	status *usecase.ChangeStatusUseCase,
	roster *usecase.RosterUseCase,
	logger *logging.Logger,
) *CallerHandler {
	if logger == nil {
		logger = logging.Discard()
	}
	return &CallerHandler{
		SubmitUC: submit,
		UpdateUC: update,
		StatusUC: status,
		RosterUC: roster,
		logger:   logger.With("handler", "callers"),
	}
}

// Register mounts the screener routes. submitMW wraps only POST /callers.
func (h *CallerHandler) Register(r chi.Router, submitMW ...func(http.Handler) http.Handler) {
	r.Route("/callers", func(r chi.Router) {
		r.With(submitMW...).Post("/", h.Submit)
		r.Get("/", h.List)
		r.Get("/history", h.History)
		r.Get("/{id}", h.Get)
		r.Put("/{id}/screening", h.UpdateScreening)
		r.Patch("/{id}/status", h.ChangeStatus)
	})
	r.Post("/screening/preview", h.Preview)
}

// Submit (POST /callers)
func (h *CallerHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var input usecase.SubmitScreeningInput
	if !decodeJSON(w, r, &input) {
		return
	}

	output, err := h.SubmitUC.Execute(r.Context(), input)
	if err != nil {
		writeUseCaseError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, output)
}

// List (GET /callers?status=queued)
func (h *CallerHandler) List(w http.ResponseWriter, r *http.Request) {
	views, err := h.RosterUC.List(r.Context(), usecase.ListRosterInput{Status: r.URL.Query().Get("status")})
	if err != nil {
		writeUseCaseError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

// Get (GET /callers/{id})
func (h *CallerHandler) Get(w http.ResponseWriter, r *http.Request) {
	view, err := h.RosterUC.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeUseCaseError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// History (GET /callers/history?phone=...&exclude=...)
func (h *CallerHandler) History(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	records, err := h.RosterUC.History(r.Context(), q.Get("phone"), q.Get("exclude"))
	if err != nil {
		writeUseCaseError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

// UpdateScreening (PUT /callers/{id}/screening)
func (h *CallerHandler) UpdateScreening(w http.ResponseWriter, r *http.Request) {
	var input usecase.UpdateScreeningInput
	if !decodeJSON(w, r, &input) {
		return
	}
	input.CallerID = chi.URLParam(r, "id")

	view, err := h.UpdateUC.Execute(r.Context(), input)
	if err != nil {
		writeUseCaseError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// ChangeStatus (PATCH /callers/{id}/status)
func (h *CallerHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	var input usecase.ChangeStatusInput
	if !decodeJSON(w, r, &input) {
		return
	}
	input.CallerID = chi.URLParam(r, "id")

	output, err := h.StatusUC.Execute(r.Context(), input)
	if err != nil {
		writeUseCaseError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, output)
}

// Preview (POST /screening/preview)
func (h *CallerHandler) Preview(w http.ResponseWriter, r *http.Request) {
	var input usecase.PreviewInput
	if !decodeJSON(w, r, &input) {
		return
	}
	writeJSON(w, http.StatusOK, h.RosterUC.Preview(input))
}
