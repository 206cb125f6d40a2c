package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/xavierca1/call-screener/internal/entity"
)

const uniqueViolation = "23505"

const callerColumns = `id, name, phone, location, email, notes, document_names, status,
		prioritized_for_host, caller_type, last_call_date, total_calls, created_at, updated_at`

type CallerRepository struct {
	DB *sql.DB
}

func NewCallerRepository(db *sql.DB) *CallerRepository {
	return &CallerRepository{DB: db}
}

func (r *CallerRepository) Create(ctx context.Context, c *entity.Caller) error {
	query := `
		INSERT INTO callers (` + callerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	docs := c.DocumentNames
	if docs == nil {
		docs = []string{}
	}

	_, err := r.DB.ExecContext(ctx, query,
		c.ID,
		c.Name,
		c.Phone,
		nullString(c.Location),
		nullString(c.Email),
		c.Notes,
		pq.Array(docs),
		string(c.Status),
		c.PrioritizedForHost,
		string(c.CallerType),
		c.LastCallDate,
		c.TotalCalls,
		c.CreatedAt,
		c.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return entity.ErrCallerExists
		}
		return fmt.Errorf("insert caller: %w", err)
	}
	return nil
}

func (r *CallerRepository) List(ctx context.Context) ([]*entity.Caller, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+callerColumns+` FROM callers ORDER BY last_call_date DESC`)
	if err != nil {
		return nil, fmt.Errorf("list callers: %w", err)
	}
	defer rows.Close()

	out := []*entity.Caller{}
	for rows.Next() {
		c, err := scanCaller(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *CallerRepository) FindByID(ctx context.Context, id string) (*entity.Caller, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+callerColumns+` FROM callers WHERE id = $1`, id)
	c, err := scanCaller(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrCallerNotFound
	}
	return c, err
}

func (r *CallerRepository) UpdateNotes(ctx context.Context, id, notes string, documentNames []string) error {
	if documentNames == nil {
		documentNames = []string{}
	}
	res, err := r.DB.ExecContext(ctx, `
		UPDATE callers SET notes = $2, document_names = $3, updated_at = $4
		WHERE id = $1
	`, id, notes, pq.Array(documentNames), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update caller notes: %w", err)
	}
	return expectOneRow(res)
}

func (r *CallerRepository) UpdateStatus(ctx context.Context, id string, status entity.Status, prioritized bool) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE callers SET status = $2, prioritized_for_host = $3, updated_at = $4
		WHERE id = $1
	`, id, string(status), prioritized, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update caller status: %w", err)
	}
	return expectOneRow(res)
}

func (r *CallerRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM callers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete caller: %w", err)
	}
	return expectOneRow(res)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCaller(row rowScanner) (*entity.Caller, error) {
	var (
		c               entity.Caller
		location, email sql.NullString
		status, kind    string
	)
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Phone,
		&location,
		&email,
		&c.Notes,
		pq.Array(&c.DocumentNames),
		&status,
		&c.PrioritizedForHost,
		&kind,
		&c.LastCallDate,
		&c.TotalCalls,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	// Rows written by older deployments may still carry legacy status names.
	parsed, prioritized, err := entity.ParseStatus(status)
	if err != nil {
		return nil, fmt.Errorf("caller %s: %w", c.ID, err)
	}
	c.Status = parsed
	c.PrioritizedForHost = c.PrioritizedForHost || prioritized
	c.CallerType = entity.CallerType(kind)
	c.Location = location.String
	c.Email = email.String
	return &c, nil
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return entity.ErrCallerNotFound
	}
	return nil
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
