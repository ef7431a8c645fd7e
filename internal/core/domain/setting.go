package domain

import "time"

// Known setting keys.
const (
	SettingCheckoutEnabled   = "checkout_enabled"
	SettingSystemMaintenance = "system_maintenance"
)

// SettingDefaults is used when a key has no stored row and to reseed the table.
var SettingDefaults = map[string]string{
	SettingCheckoutEnabled:   "true",
	SettingSystemMaintenance: "false",
}

// SettingDescriptions documents the known keys.
var SettingDescriptions = map[string]string{
	SettingCheckoutEnabled:   "Enable or disable checkout functionality",
	SettingSystemMaintenance: "System maintenance mode",
}

// Setting is a key/value pair of the settings store.
type Setting struct {
	Key         string    `json:"setting_key"`
	Value       string    `json:"setting_value"`
	Description string    `json:"description"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// IsKnownSetting reports whether key is one of the managed settings.
func IsKnownSetting(key string) bool {
	_, ok := SettingDefaults[key]
	return ok
}
