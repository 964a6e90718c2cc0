package dto

// UpsertSettingRequest creates or replaces a website setting by key.
type UpsertSettingRequest struct {
	Key         string  `json:"key" validate:"required"`
	Value       string  `json:"value" validate:"required"`
	Type        string  `json:"type" validate:"required,oneof=string boolean number json"`
	Description *string `json:"description,omitempty"`
}

// UpdateSettingValueRequest changes the stored value for an existing key.
type UpdateSettingValueRequest struct {
	Value string `json:"value" validate:"required"`
}
