package entity

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
)

var (
	ErrCallerNotFound = errors.New("caller not found")
	ErrCallerExists   = errors.New("caller already exists")
)

type CallerType string

const (
	CallerTypeNew     CallerType = "new"
	CallerTypeRegular CallerType = "regular"
)

// Caller is one call-in record. A person who calls several times has one
// record per call, linked by phone.
type Caller struct {
	ID                 string     `json:"id"`
	Name               string     `json:"name"`
	Phone              string     `json:"phone"`
	Location           string     `json:"location,omitempty"`
	Email              string     `json:"email,omitempty"`
	Notes              string     `json:"notes"`
	DocumentNames      []string   `json:"document_names,omitempty"`
	Status             Status     `json:"status"`
	PrioritizedForHost bool       `json:"prioritized_for_host"`
	CallerType         CallerType `json:"caller_type"`
	LastCallDate       time.Time  `json:"last_call_date"`
	TotalCalls         int        `json:"total_calls"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

func NewCaller(name, phone, location, email, notes string) (*Caller, error) {
	now := time.Now().UTC()
	c := &Caller{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(name),
		Phone:        strings.TrimSpace(phone),
		Location:     strings.TrimSpace(location),
		Email:        strings.TrimSpace(email),
		Notes:        notes,
		Status:       StatusScreening,
		CallerType:   CallerTypeNew,
		LastCallDate: now,
		TotalCalls:   1,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Caller) Validate() error {
	if c.Name == "" {
		return errors.New("name is required")
	}
	if _, ok := transitions[c.Status]; !ok {
		return ErrUnknownStatus
	}
	return nil
}

// CallDate is the moment used to order a caller's history.
func (c *Caller) CallDate() time.Time {
	if !c.LastCallDate.IsZero() {
		return c.LastCallDate
	}
	return c.CreatedAt
}

// PhoneKey reduces a phone number to its digits so "(555) 000-1" and
// "555-0001" compare equal.
func PhoneKey(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// MaskPhone keeps only the last four digits, for anything shown to the host.
func MaskPhone(phone string) string {
	d := PhoneKey(phone)
	switch {
	case d == "":
		return ""
	case len(d) == 10:
		return "***-***-" + d[6:]
	case len(d) == 11 && d[0] == '1':
		return "1-***-***-" + d[7:]
	case len(d) > 4:
		return "***-" + d[len(d)-4:]
	default:
		return "***-" + d
	}
}

type CallerRepository interface {
	Create(ctx context.Context, c *Caller) error
	List(ctx context.Context) ([]*Caller, error)
	FindByID(ctx context.Context, id string) (*Caller, error)
	UpdateNotes(ctx context.Context, id, notes string, documentNames []string) error
	UpdateStatus(ctx context.Context, id string, status Status, prioritized bool) error
	Delete(ctx context.Context, id string) error
}
