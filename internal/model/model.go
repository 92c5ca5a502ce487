package model

import "time"

// Enquiry is one stored form submission. A row is written exactly once:
// id and created_at are assigned by the database on insert, and no code
// path updates or deletes enquiries afterwards.
type Enquiry struct {
	Id          int64     `json:"id"            db:"id"`
	Name        string    `json:"name"          db:"name"`
	Company     string    `json:"company"       db:"company"`
	Gender      string    `json:"gender"        db:"gender"`
	Age         *int      `json:"age,omitempty" db:"age"`
	Email       string    `json:"email"         db:"email"`
	Contact     string    `json:"contact"       db:"contact"`
	Query       string    `json:"query"         db:"query"`
	Disposition string    `json:"disposition"   db:"disposition"`
	CreatedAt   time.Time `json:"createdAt"     db:"created_at"`
}
