package callerapi

import "time"

// callerRecord is a caller as the remote API stores it. Status is kept as a
// raw string because older deployments still send waiting/ready/active.
type callerRecord struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Phone              string    `json:"phone"`
	Location           string    `json:"location,omitempty"`
	Email              string    `json:"email,omitempty"`
	Notes              string    `json:"notes"`
	DocumentNames      []string  `json:"document_names,omitempty"`
	Status             string    `json:"status"`
	PrioritizedForHost bool      `json:"prioritized_for_host"`
	CallerType         string    `json:"caller_type"`
	LastCallDate       time.Time `json:"last_call_date"`
	TotalCalls         int       `json:"total_calls"`
	CreatedAt          time.Time `json:"created_date"`
	UpdatedAt          time.Time `json:"updated_date"`
}

type notesPatch struct {
	Notes         string   `json:"notes"`
	DocumentNames []string `json:"document_names"`
}

type statusPatch struct {
	Status             string `json:"status"`
	PrioritizedForHost bool   `json:"prioritized_for_host"`
}

// listResponse accepts both a bare array and {"items": [...]}.
type listResponse struct {
	Items []callerRecord `json:"items"`
}
