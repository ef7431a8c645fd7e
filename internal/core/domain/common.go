package domain

import "time"

// Timestamps holds the row bookkeeping shared by persisted entities.
type Timestamps struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Page bounds a list query.
type Page struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// Actor identifies the staff member and terminal performing an action.
type Actor struct {
	StaffID    string
	TerminalID string
}
