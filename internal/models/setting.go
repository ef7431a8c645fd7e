package models

import "time"

// Setting is a row of the settings table.
type Setting struct {
	SettingKey   string    `db:"setting_key"` // Primary Key
	SettingValue string    `db:"setting_value"`
	Description  string    `db:"description"`
	UpdatedAt    time.Time `db:"updated_at"`
}
