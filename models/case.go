package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// CaseStatus is the advisory status vocabulary for a case. The server
// stores whatever status string a lawyer submits; these constants are
// published for clients that want the standard dropdown.
type CaseStatus = string

const (
	StatusSubmitted        CaseStatus = "Submitted"
	StatusFiled            CaseStatus = "Filed"
	StatusHearingScheduled CaseStatus = "Hearing Scheduled"
	StatusOnHold           CaseStatus = "On Hold"
	StatusClosed           CaseStatus = "Closed"
)

// Judgment is a related-judgment reference attached to a case analysis.
type Judgment struct {
	Title     string `json:"title"`
	Court     string `json:"court"`
	Relevance string `json:"relevance"`
}

// Judgments is a list of judgment references stored as JSONB.
type Judgments []Judgment

// Value implements driver.Valuer for JSONB
func (j Judgments) Value() (driver.Value, error) {
	return json.Marshal(j)
}

// Scan implements sql.Scanner for JSONB
func (j *Judgments) Scan(value interface{}) error {
	if value == nil {
		*j = make(Judgments, 0)
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		*j = make(Judgments, 0)
		return nil
	}

	if len(bytes) == 0 {
		*j = make(Judgments, 0)
		return nil
	}

	return json.Unmarshal(bytes, j)
}

// StringList is a JSONB-backed list of strings (next steps, strengths).
type StringList []string

// Value implements driver.Valuer for JSONB
func (l StringList) Value() (driver.Value, error) {
	return json.Marshal(l)
}

// Scan implements sql.Scanner for JSONB
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = make(StringList, 0)
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		*l = make(StringList, 0)
		return nil
	}

	if len(bytes) == 0 {
		*l = make(StringList, 0)
		return nil
	}

	return json.Unmarshal(bytes, l)
}

// CaseNote is one entry of the append-only case note log.
type CaseNote struct {
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// CaseNotes is the append-only note log stored as JSONB.
type CaseNotes []CaseNote

// Value implements driver.Valuer for JSONB
func (n CaseNotes) Value() (driver.Value, error) {
	return json.Marshal(n)
}

// Scan implements sql.Scanner for JSONB
func (n *CaseNotes) Scan(value interface{}) error {
	if value == nil {
		*n = make(CaseNotes, 0)
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		*n = make(CaseNotes, 0)
		return nil
	}

	if len(bytes) == 0 {
		*n = make(CaseNotes, 0)
		return nil
	}

	return json.Unmarshal(bytes, n)
}

// Case is a legal matter owned by exactly one user. It is created from
// a successful document analysis and mutated through partial updates.
type Case struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	Summary     string     `json:"summary"`
	Facts       string     `json:"facts"`
	Judgments   Judgments  `json:"judgments"`
	NextSteps   StringList `json:"next_steps"`
	Status      CaseStatus `json:"status"`
	HearingDate *time.Time `json:"hearing_date,omitempty"`
	Notes       CaseNotes  `json:"notes"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
