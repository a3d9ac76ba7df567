package models

// Tag is a label scoped to exactly one Dataset. Names are unique within the
// owning dataset, not globally. Inactive tags stay attached to texts that
// already carry them but cannot be assigned to new ones.
type Tag struct {
	ID          int64  `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	Name        string `gorm:"not null;unique_index:idx_tags_dataset_name" json:"name" form:"name"`
	Description string `gorm:"type:text" json:"description" form:"description"`
	DatasetID   int64  `gorm:"not null;unique_index:idx_tags_dataset_name" json:"dataset"`
	IsActive    *bool  `gorm:"not null;default:true" json:"is_active" form:"is_active"`
}

func (tag Tag) MissingFields() string {
	if tag.Name == "" {
		return "name"
	}
	return ""
}

// Active reports the is_active flag, treating the unset pointer as true
// (the column default).
func (tag Tag) Active() bool {
	return tag.IsActive == nil || *tag.IsActive
}
