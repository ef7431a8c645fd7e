package models

import "time"

// RowTimestamps are the bookkeeping columns shared by mutable tables.
type RowTimestamps struct {
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
