// Package callerapi stores callers in the station's hosted caller database
// through its REST API.
package callerapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/xavierca1/call-screener/internal/entity"
	"github.com/xavierca1/call-screener/pkg/logging"
)

const serviceName = "caller_api"

// ErrorRecorder counts failed calls to the remote API.
type ErrorRecorder interface {
	RecordIntegrationError(service string)
}

type Client struct {
	baseURL string
	token   string
	http    *http.Client
	errors  ErrorRecorder
	logger  *logging.Logger
}

func NewClient(baseURL, token string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: timeout},
		logger:  logging.Discard(),
	}
}

func (c *Client) WithLogger(l *logging.Logger) *Client {
	if l != nil {
		c.logger = l
	}
	return c
}

// WithErrorRecorder reports every failed request to r.
func (c *Client) WithErrorRecorder(r ErrorRecorder) *Client {
	c.errors = r
	return c
}

func (c *Client) Create(ctx context.Context, caller *entity.Caller) error {
	var created callerRecord
	status, err := c.do(ctx, http.MethodPost, "/callers", toRecord(caller), &created)
	if status == http.StatusConflict {
		return entity.ErrCallerExists
	}
	if err != nil {
		return err
	}

	// The API may assign its own id and timestamps.
	if created.ID != "" {
		caller.ID = created.ID
	}
	if !created.CreatedAt.IsZero() {
		caller.CreatedAt = created.CreatedAt
	}
	if !created.UpdatedAt.IsZero() {
		caller.UpdatedAt = created.UpdatedAt
	}
	return nil
}

func (c *Client) List(ctx context.Context) ([]*entity.Caller, error) {
	var raw json.RawMessage
	if _, err := c.do(ctx, http.MethodGet, "/callers", nil, &raw); err != nil {
		return nil, err
	}

	var records []callerRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		var wrapped listResponse
		if err2 := json.Unmarshal(raw, &wrapped); err2 != nil {
			c.recordError()
			return nil, fmt.Errorf("caller api: decode list: %w", err)
		}
		records = wrapped.Items
	}

	// One unreadable record must not hide the rest of the roster.
	out := make([]*entity.Caller, 0, len(records))
	for _, r := range records {
		caller, err := fromRecord(r)
		if err != nil {
			c.logger.Warn("skipping caller record", "caller_id", r.ID, "status", r.Status, "error", err)
			continue
		}
		out = append(out, caller)
	}
	return out, nil
}

func (c *Client) FindByID(ctx context.Context, id string) (*entity.Caller, error) {
	var rec callerRecord
	status, err := c.do(ctx, http.MethodGet, "/callers/"+id, nil, &rec)
	if status == http.StatusNotFound {
		return nil, entity.ErrCallerNotFound
	}
	if err != nil {
		return nil, err
	}
	return fromRecord(rec)
}

func (c *Client) UpdateNotes(ctx context.Context, id, notes string, documentNames []string) error {
	if documentNames == nil {
		documentNames = []string{}
	}
	return c.patch(ctx, id, notesPatch{Notes: notes, DocumentNames: documentNames})
}

func (c *Client) UpdateStatus(ctx context.Context, id string, status entity.Status, prioritized bool) error {
	return c.patch(ctx, id, statusPatch{Status: string(status), PrioritizedForHost: prioritized})
}

func (c *Client) Delete(ctx context.Context, id string) error {
	status, err := c.do(ctx, http.MethodDelete, "/callers/"+id, nil, nil)
	if status == http.StatusNotFound {
		return entity.ErrCallerNotFound
	}
	return err
}

func (c *Client) patch(ctx context.Context, id string, body any) error {
	status, err := c.do(ctx, http.MethodPatch, "/callers/"+id, body, nil)
	if status == http.StatusNotFound {
		return entity.ErrCallerNotFound
	}
	return err
}

// do sends one request and decodes a 2xx body into out. The status code is
// returned even on error so callers can map 404/409.
func (c *Client) do(ctx context.Context, method, path string, body, out any) (int, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("caller api: encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, err
	}
	c.setHeaders(req, body != nil)

	resp, err := c.http.Do(req)
	if err != nil {
		c.recordError()
		return 0, fmt.Errorf("caller api: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		if resp.StatusCode != http.StatusNotFound {
			c.recordError()
		}
		return resp.StatusCode, fmt.Errorf("caller api: %s %s: status %d: %s",
			method, path, resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return resp.StatusCode, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && err != io.EOF {
		c.recordError()
		return resp.StatusCode, fmt.Errorf("caller api: decode %s %s: %w", method, path, err)
	}
	return resp.StatusCode, nil
}

func (c *Client) setHeaders(req *http.Request, hasBody bool) {
	req.Header.Set("Accept", "application/json")
	if hasBody {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}

func (c *Client) recordError() {
	if c.errors != nil {
		c.errors.RecordIntegrationError(serviceName)
	}
}

func toRecord(c *entity.Caller) callerRecord {
	return callerRecord{
		ID:                 c.ID,
		Name:               c.Name,
		Phone:              c.Phone,
		Location:           c.Location,
		Email:              c.Email,
		Notes:              c.Notes,
		DocumentNames:      c.DocumentNames,
		Status:             string(c.Status),
		PrioritizedForHost: c.PrioritizedForHost,
		CallerType:         string(c.CallerType),
		LastCallDate:       c.LastCallDate,
		TotalCalls:         c.TotalCalls,
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          c.UpdatedAt,
	}
}

// fromRecord treats a missing status as a caller still being screened.
func fromRecord(r callerRecord) (*entity.Caller, error) {
	raw := r.Status
	if strings.TrimSpace(raw) == "" {
		raw = string(entity.StatusScreening)
	}
	status, prioritized, err := entity.ParseStatus(raw)
	if err != nil {
		return nil, fmt.Errorf("caller api: caller %s: %w", r.ID, err)
	}

	kind := entity.CallerType(r.CallerType)
	if kind != entity.CallerTypeRegular {
		kind = entity.CallerTypeNew
	}

	return &entity.Caller{
		ID:                 r.ID,
		Name:               r.Name,
		Phone:              r.Phone,
		Location:           r.Location,
		Email:              r.Email,
		Notes:              r.Notes,
		DocumentNames:      r.DocumentNames,
		Status:             status,
		PrioritizedForHost: r.PrioritizedForHost || prioritized,
		CallerType:         kind,
		LastCallDate:       r.LastCallDate,
		TotalCalls:         r.TotalCalls,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}, nil
}
