// Package audit grava o histórico de edições de tag feitas por operadores.
package audit

import (
	"time"

	"corpora/models"

	"github.com/jinzhu/gorm"
)

// RecordTagEdit cria a linha de Log dentro da transação da edição: se a
// gravação do log falhar, a edição do texto é desfeita junto.
func RecordTagEdit(tx *gorm.DB, userID, textID int64, details string) (models.Log, error) {
	entry := models.Log{
		UserID:        userID,
		TextID:        textID,
		Action:        models.LOG_ACTION_UPDATE,
		UpdatedField:  models.LOG_FIELD_TAGS,
		ActionDetails: details,
		Datetime:      time.Now(),
	}
	if err := tx.Create(&entry).Error; err != nil {
		return models.Log{}, err
	}
	return entry, nil
}
