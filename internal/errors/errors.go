// internal/errors/errors.go
package appErrors

import (
    "fmt"
    "strings"
)

// Field error codes reported inside a ValidationError.
const (
    CodeRequired        = "required"
    CodeInvalidName     = "invalid_name"
    CodeInvalidLastName = "invalid_last_name"
    CodeInvalidPhone    = "invalid_phone"
    CodeDuplicatePhone  = "duplicate_phone"
    CodeInvalidDate     = "invalid_date"
    CodeInvalidDates    = "invalid_dates"
    CodeInvalidStatus   = "invalid_status"
    CodeEmptyRoster     = "empty_roster"
)

// FieldError is a single field-level problem in a rejected submission.
type FieldError struct {
    Field   string `json:"field"`
    Code    string `json:"code"`
    Message string `json:"message"`
}

// ValidationError aggregates every problem found in one submission so
// the caller sees all of them at once instead of fixing one per round.
type ValidationError struct {
    Fields []FieldError
}

func (e *ValidationError) Error() string {
    if len(e.Fields) == 0 {
        return "validation failed"
    }
    parts := make([]string, len(e.Fields))
    for i, f := range e.Fields {
        parts[i] = f.Field + ": " + f.Message
    }
    return "validation failed: " + strings.Join(parts, "; ")
}

// Add records one more field-level problem.
func (e *ValidationError) Add(field, code, message string) {
    e.Fields = append(e.Fields, FieldError{Field: field, Code: code, Message: message})
}

// Merge copies the problems of other under a field prefix, e.g.
// people[2].phone when the third submitted person had a bad phone.
func (e *ValidationError) Merge(prefix string, other *ValidationError) {
    if other == nil {
        return
    }
    for _, f := range other.Fields {
        field := f.Field
        if prefix != "" {
            field = prefix + "." + f.Field
        }
        e.Fields = append(e.Fields, FieldError{Field: field, Code: f.Code, Message: f.Message})
    }
}

// HasErrors reports whether anything was recorded.
func (e *ValidationError) HasErrors() bool {
    return len(e.Fields) > 0
}

// ErrInvalidTransition means an operation was attempted against a
// campaign whose current status forbids it.
type ErrInvalidTransition struct {
    CampaignID string
    Status     string
    Operation  string
}

func (e *ErrInvalidTransition) Error() string {
    return fmt.Sprintf("campaign %s cannot %s in status: %s", e.CampaignID, e.Operation, e.Status)
}

// Helper constructor
func NewInvalidTransition(campaignID, operation, status string) error {
    return &ErrInvalidTransition{CampaignID: campaignID, Operation: operation, Status: status}
}

// ErrLastPerson means a removal would have emptied the roster.
type ErrLastPerson struct {
    CampaignID string
}

func (e *ErrLastPerson) Error() string {
    return fmt.Sprintf("cannot remove the last person from campaign %s", e.CampaignID)
}

// Helper constructor
func NewLastPerson(campaignID string) error {
    return &ErrLastPerson{CampaignID: campaignID}
}

// ErrCampaignNotFound is a sentinel error
type ErrCampaignNotFound struct {
    CampaignID string
}

func (e *ErrCampaignNotFound) Error() string {
    return fmt.Sprintf("campaign with ID %s not found", e.CampaignID)
}

// Helper constructor
func NewCampaignNotFound(id string) error {
    return &ErrCampaignNotFound{CampaignID: id}
}

// ErrPersonNotFound is a sentinel error
type ErrPersonNotFound struct {
    CampaignID string
    PersonID   string
}

func (e *ErrPersonNotFound) Error() string {
    return fmt.Sprintf("person with ID %s not found in campaign %s", e.PersonID, e.CampaignID)
}

// Helper constructor
func NewPersonNotFound(campaignID, personID string) error {
    return &ErrPersonNotFound{CampaignID: campaignID, PersonID: personID}
}
