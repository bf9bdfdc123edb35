// internal/model/campaign.go
package model

import (
    "fmt"
    "strings"
)

// Status is the campaign lifecycle state. The constants are the literal
// labels persisted by every store backend and must stay byte-identical
// to whatever data is already on disk.
type Status string

const (
    StatusWaiting  Status = "En espera"
    StatusActive   Status = "Activa"
    StatusFinished Status = "Finalizada"
)

// Valid reports whether s is one of the three known labels.
func (s Status) Valid() bool {
    return s == StatusWaiting || s == StatusActive || s == StatusFinished
}

// UnmarshalJSON rejects anything that is not a known label, so corrupt
// persisted data surfaces on load instead of flowing through the system.
func (s *Status) UnmarshalJSON(data []byte) error {
    v := Status(strings.Trim(string(data), `"`))
    if !v.Valid() {
        return fmt.Errorf("unknown campaign status %q", strings.Trim(string(data), `"`))
    }
    *s = v
    return nil
}

type Campaign struct {
    ID              string   `db:"id" json:"id"`
    Name            string   `db:"name" json:"name"`
    Status          Status   `db:"status" json:"status"`
    StartDate       DateTime `db:"start_date" json:"start_date"`
    EndDate         DateTime `db:"end_date" json:"end_date"`
    RecordingStatus bool     `db:"recording_status" json:"recording_status"`
    CreatedAt       DateTime `db:"created_at" json:"created_at"`
    People          []Person `db:"-" json:"people"`
}

// IsFinished reports whether the campaign reached its terminal state.
func (c *Campaign) IsFinished() bool {
    return c.Status == StatusFinished
}

// CanEditRoster reports whether people may still be added or removed.
func (c *Campaign) CanEditRoster() bool {
    return c.Status != StatusFinished
}

// FindPerson returns the roster index of the person with the given id,
// or -1 when no such person exists.
func (c *Campaign) FindPerson(personID string) int {
    for i, p := range c.People {
        if p.ID == personID {
            return i
        }
    }
    return -1
}
