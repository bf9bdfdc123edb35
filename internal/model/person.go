// internal/model/person.go
package model

// Person is a single contact on a campaign roster. Phone keeps exactly
// what the caller typed; equality checks always go through digit
// stripping, never through this raw value directly.
type Person struct {
    ID       string `db:"id" json:"id"`
    Name     string `db:"name" json:"name"`
    LastName string `db:"last_name" json:"last_name"`
    Phone    string `db:"phone" json:"phone"`
}
