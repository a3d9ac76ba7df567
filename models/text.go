package models

import (
	"fmt"
	"unicode/utf8"
)

// Text is a content unit owned by one Dataset and labeled by zero or more of
// that dataset's tags. Content is unique within the dataset so re-imports of
// the same material never duplicate rows.
type Text struct {
	ID        int64  `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	Content   string `gorm:"type:text;not null;unique_index:idx_texts_dataset_content" json:"content" form:"content"`
	DatasetID int64  `gorm:"not null;unique_index:idx_texts_dataset_content" json:"dataset"`
	Tags      []Tag  `gorm:"many2many:text_tags" json:"tags"`
}

func (text Text) MissingFields() string {
	if text.Content == "" {
		return "content"
	}
	return ""
}

// Label is the short human-readable form used in log exports. Truncation
// counts runes, not bytes, so multibyte content never gets cut mid-character.
func (text Text) Label() string {
	content := text.Content
	if utf8.RuneCountInString(content) > 50 {
		runes := []rune(content)
		content = string(runes[:50])
	}
	return fmt.Sprintf("Text: %s...", content)
}
