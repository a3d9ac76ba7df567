package models

import "time"

// Dataset is the top-level container that groups Tags and Texts.
type Dataset struct {
	ID          int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	Name        string     `gorm:"not null" json:"name" form:"name"`
	Description string     `gorm:"type:text" json:"description" form:"description"`
	CreatedAt   *time.Time `json:"creation_date"`
}

func (dataset Dataset) MissingFields() string {
	if dataset.Name == "" {
		return "name"
	}
	return ""
}
