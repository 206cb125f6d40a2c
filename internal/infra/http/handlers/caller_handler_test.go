package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/call-screener/internal/entity"
	"github.com/xavierca1/call-screener/internal/usecase"
)

// memRepo is an in-memory caller store.
type memRepo struct {
	mu      sync.Mutex
	callers map[string]*entity.Caller
	failAll error
}

func newMemRepo(callers ...*entity.Caller) *memRepo {
	r := &memRepo{callers: map[string]*entity.Caller{}}
	for _, c := range callers {
		r.callers[c.ID] = c
	}
	return r
}

func (r *memRepo) Create(_ context.Context, c *entity.Caller) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAll != nil {
		return r.failAll
	}
	if _, ok := r.callers[c.ID]; ok {
		return entity.ErrCallerExists
	}
	cp := *c
	r.callers[c.ID] = &cp
	return nil
}

func (r *memRepo) List(context.Context) ([]*entity.Caller, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAll != nil {
		return nil, r.failAll
	}
	out := make([]*entity.Caller, 0, len(r.callers))
	for _, c := range r.callers {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memRepo) FindByID(_ context.Context, id string) (*entity.Caller, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAll != nil {
		return nil, r.failAll
	}
	c, ok := r.callers[id]
	if !ok {
		return nil, entity.ErrCallerNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *memRepo) UpdateNotes(_ context.Context, id, notes string, docs []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.callers[id]
	if !ok {
		return entity.ErrCallerNotFound
	}
	c.Notes = notes
	c.DocumentNames = docs
	return nil
}

func (r *memRepo) UpdateStatus(_ context.Context, id string, status entity.Status, prioritized bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.callers[id]
	if !ok {
		return entity.ErrCallerNotFound
	}
	c.Status = status
	c.PrioritizedForHost = prioritized
	return nil
}

func (r *memRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.callers, id)
	return nil
}

func newTestRouter(repo *memRepo) http.Handler {
	submit := usecase.NewSubmitScreeningUseCase(repo, nil, nil, nil, entity.ScaleStandard, nil)
	update := usecase.NewUpdateScreeningUseCase(repo, nil, nil, nil, entity.ScaleStandard, nil)
	status := usecase.NewChangeStatusUseCase(repo, nil, nil, nil, nil)
	roster := usecase.NewRosterUseCase(repo, nil, entity.ScaleStandard, nil)

	r := chi.NewRouter()
	NewCallerHandler(submit, update, status, roster, nil).Register(r)
	return r
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func seeded() *memRepo {
	base := time.Date(2026, 5, 4, 18, 0, 0, 0, time.UTC)
	return newMemRepo(
		&entity.Caller{ID: "a", Name: "Dale", Phone: "555-0001", Notes: "Topic: Tires | Priority: NORMAL", Status: entity.StatusCompleted, LastCallDate: base},
		&entity.Caller{ID: "b", Name: "Rita", Phone: "555-0002", Notes: "Topic: DEF question | Priority: MEDIUM", Status: entity.StatusQueued, LastCallDate: base.Add(time.Hour)},
	)
}

func TestSubmitCaller(t *testing.T) {
	repo := seeded()
	h := newTestRouter(repo)

	rec := do(t, h, http.MethodPost, "/callers", map[string]any{
		"name":  "Dale",
		"phone": "(555) 0001",
		"topic": "Engine breakdown",
		"notes": "on I-80",
	})

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var out usecase.SubmitScreeningOutput
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, entity.PriorityHigh, out.Priority)
	assert.Equal(t, entity.CallerTypeRegular, out.CallerType)
	assert.Equal(t, 2, out.TotalCalls)
	assert.Equal(t, "Topic: Engine breakdown | Notes: on I-80 | Priority: HIGH", out.Notes)
	require.Len(t, out.History, 1)
	assert.Equal(t, "a", out.History[0].CallerID)
}

func TestSubmitCallerRejectsBadInput(t *testing.T) {
	h := newTestRouter(seeded())

	rec := do(t, h, http.MethodPost, "/callers", "{not json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_JSON")

	rec = do(t, h, http.MethodPost, "/callers", map[string]any{"topic": "Tires"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var e ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &e))
	assert.Equal(t, usecase.CodeValidation, e.Code)
}

func TestListCallers(t *testing.T) {
	h := newTestRouter(seeded())

	rec := do(t, h, http.MethodGet, "/callers?status=waiting", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var views []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &views))
	require.Len(t, views, 1)
	assert.Equal(t, "b", views[0]["id"])
	assert.Equal(t, "DEF question", views[0]["topic"])
	assert.Equal(t, "medium", views[0]["priority"])

	rec = do(t, h, http.MethodGet, "/callers?status=archived", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetCaller(t *testing.T) {
	h := newTestRouter(seeded())

	rec := do(t, h, http.MethodGet, "/callers/b", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"Rita"`)

	rec = do(t, h, http.MethodGet, "/callers/zzz", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestChangeStatus(t *testing.T) {
	repo := seeded()
	h := newTestRouter(repo)

	rec := do(t, h, http.MethodPatch, "/callers/b/status", map[string]any{"status": "on_air"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, entity.StatusOnAir, repo.callers["b"].Status)

	rec = do(t, h, http.MethodPatch, "/callers/a/status", map[string]any{"status": "queued"})
	assert.Equal(t, http.StatusConflict, rec.Code, "completed is terminal")

	rec = do(t, h, http.MethodPatch, "/callers/b/status", map[string]any{"status": "lunch"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateScreening(t *testing.T) {
	repo := seeded()
	h := newTestRouter(repo)

	rec := do(t, h, http.MethodPut, "/callers/b/screening", map[string]any{
		"topic": "DEF stuck",
		"notes": "truck in limp mode",
	})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Topic: DEF stuck | Notes: truck in limp mode | Priority: HIGH", repo.callers["b"].Notes)

	rec = do(t, h, http.MethodPut, "/callers/a/screening", map[string]any{"topic": "again"})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestHistoryAndPreview(t *testing.T) {
	h := newTestRouter(seeded())

	rec := do(t, h, http.MethodGet, "/callers/history?phone=5550001", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"caller_id":"a"`)

	rec = do(t, h, http.MethodGet, "/callers/history", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = do(t, h, http.MethodPost, "/screening/preview", map[string]any{"topic": "Quick question"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"priority":"medium","notes":"Topic: Quick question | Priority: MEDIUM"}`, rec.Body.String())
}

func TestStoreFailureIsBadGateway(t *testing.T) {
	repo := seeded()
	repo.failAll = errors.New("caller api: GET /callers: status 503")
	h := newTestRouter(repo)

	rec := do(t, h, http.MethodGet, "/callers", nil)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), usecase.CodeStoreError)
}
