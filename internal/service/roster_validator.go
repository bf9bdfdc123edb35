// internal/service/roster_validator.go
package service

import (
    "fmt"
    "regexp"
    "strings"

    appErrors "github.com/davquint/callcampaign-backend/internal/errors"
    "github.com/davquint/callcampaign-backend/internal/model"
)

const (
    minPhoneDigits = 7
    maxPhoneDigits = 15
)

// Unicode letters (accents included) and spaces, nothing else.
var nameRe = regexp.MustCompile(`^[\p{L} ]+$`)

var nonDigitRe = regexp.MustCompile(`\D`)

// DigitsOnly strips every non-digit character from phone. All phone
// comparisons in the system go through this, never the raw value.
func DigitsOnly(phone string) string {
    return nonDigitRe.ReplaceAllString(phone, "")
}

// ValidatePerson checks raw person input against the roster rules and
// the owning campaign's existing roster. Every check runs, so a single
// bad submission reports all of its problems at once. On success the
// returned person carries trimmed names, the phone exactly as typed,
// and no ID yet; assigning IDs is the service's job.
func ValidatePerson(name, lastName, phone string, roster []model.Person) (model.Person, *appErrors.ValidationError) {
    ve := &appErrors.ValidationError{}

    name = strings.TrimSpace(name)
    if !nameRe.MatchString(name) {
        ve.Add("name", appErrors.CodeInvalidName, "name must contain only letters and spaces")
    }

    lastName = strings.TrimSpace(lastName)
    if !nameRe.MatchString(lastName) {
        ve.Add("last_name", appErrors.CodeInvalidLastName, "last name must contain only letters and spaces")
    }

    digits := DigitsOnly(phone)
    if len(digits) < minPhoneDigits || len(digits) > maxPhoneDigits {
        ve.Add("phone", appErrors.CodeInvalidPhone,
            fmt.Sprintf("phone must contain between %d and %d digits", minPhoneDigits, maxPhoneDigits))
    }
    for _, p := range roster {
        if DigitsOnly(p.Phone) == digits {
            ve.Add("phone", appErrors.CodeDuplicatePhone,
                fmt.Sprintf("phone %q is already on this campaign", phone))
            break
        }
    }

    if ve.HasErrors() {
        return model.Person{}, ve
    }
    return model.Person{Name: name, LastName: lastName, Phone: phone}, nil
}

// FormatPhone renders a phone for display, grouping digits as
// (AAA) BBB-CCCC once at least 4 digits are present. The stored value
// is always the raw input; this is a view concern only.
func FormatPhone(phone string) string {
    digits := DigitsOnly(phone)
    if len(digits) < 4 {
        return digits
    }
    if len(digits) < 7 {
        return fmt.Sprintf("(%s) %s", digits[:3], digits[3:])
    }
    return fmt.Sprintf("(%s) %s-%s", digits[:3], digits[3:6], digits[6:])
}
