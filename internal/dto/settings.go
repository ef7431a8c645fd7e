package dto

// UpdateSettingRequest defines the body of a setting change.
type UpdateSettingRequest struct {
	Value string `json:"setting_value" binding:"required"`
}

// CheckoutEnabledResponse is the public checkout flag.
type CheckoutEnabledResponse struct {
	CheckoutEnabled bool `json:"checkout_enabled"`
}
