package models

import "time"

const (
	LOG_ACTION_UPDATE = "update"
	LOG_FIELD_TAGS    = "tags"
)

// Log is an audit record of an operator's tag edit on a Text. Rows are only
// ever written by the tag-update path and never mutated through the API.
// A text accumulates one row per edit (one-to-many).
type Log struct {
	ID            int64     `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	UserID        int64     `gorm:"not null" json:"user"`
	TextID        int64     `gorm:"not null" json:"text_instance"`
	Action        string    `gorm:"not null" json:"action"`
	UpdatedField  string    `gorm:"not null" json:"updated_field"`
	ActionDetails string    `gorm:"type:text;not null" json:"action_details"`
	Datetime      time.Time `gorm:"not null" json:"datetime"`
}
