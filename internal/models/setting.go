package models

import "time"

// SettingType tags how a website setting value should be interpreted.
type SettingType string

const (
	SettingTypeString  SettingType = "string"
	SettingTypeBoolean SettingType = "boolean"
	SettingTypeNumber  SettingType = "number"
	SettingTypeJSON    SettingType = "json"
)

// Valid reports whether the type tag is known.
func (t SettingType) Valid() bool {
	switch t {
	case SettingTypeString, SettingTypeBoolean, SettingTypeNumber, SettingTypeJSON:
		return true
	}
	return false
}

// WebsiteSetting is a flat key-value configuration entry with upsert-by-key
// semantics.
type WebsiteSetting struct {
	ID          int64       `db:"id" json:"id"`
	Key         string      `db:"key" json:"key"`
	Value       string      `db:"value" json:"value"`
	Type        SettingType `db:"type" json:"type"`
	Description *string     `db:"description" json:"description,omitempty"`
	UpdatedAt   time.Time   `db:"updated_at" json:"updated_at"`
}
