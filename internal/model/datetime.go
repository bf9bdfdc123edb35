// internal/model/datetime.go
package model

import (
    "database/sql/driver"
    "fmt"
    "strings"
    "time"
)

// DateTimeLayout is the only timestamp format the system reads or writes:
// day/month/year with a 24-hour clock, minute precision, no seconds.
// Persisted data depends on this literal pattern, so it must not change.
const DateTimeLayout = "02/01/2006 15:04"

// DateTime is a minute-precision timestamp that crosses every boundary
// (JSON bodies, database columns, queue payloads) as DateTimeLayout text.
type DateTime struct {
    time.Time
}

// NewDateTime truncates t to minute precision.
func NewDateTime(t time.Time) DateTime {
    return DateTime{t.Truncate(time.Minute)}
}

// ParseDateTime parses s strictly against DateTimeLayout. Anything that
// is not exactly dd/MM/yyyy HH:mm is rejected.
func ParseDateTime(s string) (DateTime, error) {
    if len(s) != len(DateTimeLayout) {
        return DateTime{}, fmt.Errorf("invalid date %q: expected dd/MM/yyyy HH:mm", s)
    }
    t, err := time.ParseInLocation(DateTimeLayout, s, time.Local)
    if err != nil {
        return DateTime{}, fmt.Errorf("invalid date %q: expected dd/MM/yyyy HH:mm", s)
    }
    return DateTime{t}, nil
}

func (d DateTime) String() string {
    return d.Format(DateTimeLayout)
}

func (d DateTime) MarshalJSON() ([]byte, error) {
    return []byte(`"` + d.Format(DateTimeLayout) + `"`), nil
}

func (d *DateTime) UnmarshalJSON(data []byte) error {
    parsed, err := ParseDateTime(strings.Trim(string(data), `"`))
    if err != nil {
        return err
    }
    *d = parsed
    return nil
}

// Value stores the timestamp as DateTimeLayout text.
func (d DateTime) Value() (driver.Value, error) {
    return d.Format(DateTimeLayout), nil
}

// Scan reads a DateTimeLayout text column back into a DateTime.
func (d *DateTime) Scan(src interface{}) error {
    switch v := src.(type) {
    case nil:
        *d = DateTime{}
        return nil
    case string:
        parsed, err := ParseDateTime(v)
        if err != nil {
            return err
        }
        *d = parsed
        return nil
    case []byte:
        parsed, err := ParseDateTime(string(v))
        if err != nil {
            return err
        }
        *d = parsed
        return nil
    default:
        return fmt.Errorf("cannot scan %T into DateTime", src)
    }
}
