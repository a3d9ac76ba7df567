package controllers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"corpora/audit"
	dbpkg "corpora/db"
	"corpora/models"
	"corpora/policy"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
)

type TextPayload struct {
	Content string  `json:"content" form:"content"`
	Tags    []int64 `json:"tags" form:"tags"`
}

// resolveTags carrega as tags pelos IDs e valida as regras de atribuição:
// tag existente, ativa e pertencente ao dataset do texto.
func resolveTags(db *gorm.DB, datasetID int64, ids []int64) ([]models.Tag, string) {
	tags := make([]models.Tag, 0, len(ids))
	for _, id := range ids {
		var tag models.Tag
		if err := db.First(&tag, id).Error; err != nil {
			return nil, fmt.Sprintf("tag %d não encontrada", id)
		}
		if !tag.Active() {
			return nil, fmt.Sprintf("The %s tag is not active.", tag.Name)
		}
		if tag.DatasetID != datasetID {
			return nil, fmt.Sprintf("tag %s pertence a outro dataset", tag.Name)
		}
		tags = append(tags, tag)
	}
	return tags, ""
}

// POST /datasets/:id/texts (admin)
func CreateText(c *gin.Context) {
	datasetID, ok := ParamID(c, "id")
	if !ok {
		return
	}

	var payload TextPayload
	if err := c.Bind(&payload); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if payload.Content == "" {
		RespondError(c, "Faltando campo content", http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var dataset models.Dataset
	if err := db.First(&dataset, datasetID).Error; err != nil {
		RespondError(c, "dataset não encontrado", http.StatusNotFound)
		return
	}

	tags, problem := resolveTags(db, dataset.ID, payload.Tags)
	if problem != "" {
		RespondError(c, problem, http.StatusBadRequest)
		return
	}

	text := models.Text{Content: payload.Content, DatasetID: dataset.ID, Tags: tags}
	if err := db.Create(&text).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	RespondCreated(c, gin.H{"text": text})
}

// GET /datasets/:id/texts (admin ou operador com acesso)
func GetTextsByDataset(c *gin.Context) {
	datasetID, ok := ParamID(c, "id")
	if !ok {
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var dataset models.Dataset
	if err := db.First(&dataset, datasetID).Error; err != nil {
		RespondError(c, "dataset não encontrado", http.StatusNotFound)
		return
	}

	if !policy.CanReadDataset(GetCaller(c), dataset.ID) {
		RespondError(c, "sem acesso ao dataset", http.StatusForbidden)
		return
	}

	var texts []models.Text
	if err := db.Where("dataset_id = ?", datasetID).Preload("Tags").
		Order("id asc").Find(&texts).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	RespondSuccess(c, gin.H{"texts": texts})
}

// GET /texts/:id (admin)
func GetTextByID(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}
	var text models.Text
	if err := db.Preload("Tags").First(&text, id).Error; err != nil {
		RespondError(c, "texto não encontrado", http.StatusNotFound)
		return
	}
	RespondSuccess(c, gin.H{"text": text})
}

// PUT /texts/:id (admin) — atualização completa
func UpdateText(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	var payload TextPayload
	if err := c.Bind(&payload); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if payload.Content == "" {
		RespondError(c, "Faltando campo content", http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var text models.Text
	if err := db.First(&text, id).Error; err != nil {
		RespondError(c, "texto não encontrado", http.StatusNotFound)
		return
	}

	tags, problem := resolveTags(db, text.DatasetID, payload.Tags)
	if problem != "" {
		RespondError(c, problem, http.StatusBadRequest)
		return
	}

	text.Content = payload.Content
	tx := db.Begin()
	if err := tx.Save(&text).Error; err != nil {
		tx.Rollback()
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if err := tx.Model(&text).Association("Tags").Replace(tags).Error; err != nil {
		tx.Rollback()
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	text.Tags = tags
	RespondSuccess(c, gin.H{"text": text})
}

// PATCH /texts/:id
//
// Admin atualiza qualquer campo. Operador com acesso ao dataset atualiza
// somente tags; qualquer outro campo presente no corpo derruba a requisição
// inteira com 403. A edição de tags por operador grava o Log de auditoria na
// mesma transação: se o log falhar, a edição é desfeita.
func PatchText(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		RespondError(c, "json inválido", http.StatusBadRequest)
		return
	}
	fields := make([]string, 0, len(raw))
	for k := range raw {
		fields = append(fields, k)
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var text models.Text
	if err := db.First(&text, id).Error; err != nil {
		RespondError(c, "texto não encontrado", http.StatusNotFound)
		return
	}

	decision := policy.CanUpdateText(GetCaller(c), text.DatasetID, fields)
	if !decision.Allow {
		if decision.DeniedField != "" {
			RespondError(c, "You can only update 'tags' field.", http.StatusForbidden)
			return
		}
		RespondError(c, "You don't have permission to do this action", http.StatusForbidden)
		return
	}

	var payload TextPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		RespondError(c, "json inválido", http.StatusBadRequest)
		return
	}

	if _, given := raw["content"]; given {
		if payload.Content == "" {
			RespondError(c, "Faltando campo content", http.StatusBadRequest)
			return
		}
		text.Content = payload.Content
	}

	_, tagsGiven := raw["tags"]
	var tags []models.Tag
	if tagsGiven {
		var problem string
		tags, problem = resolveTags(db, text.DatasetID, payload.Tags)
		if problem != "" {
			RespondError(c, problem, http.StatusBadRequest)
			return
		}
	}

	tx := db.Begin()
	if err := tx.Save(&text).Error; err != nil {
		tx.Rollback()
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if tagsGiven {
		if err := tx.Model(&text).Association("Tags").Replace(tags).Error; err != nil {
			tx.Rollback()
			RespondError(c, err.Error(), http.StatusBadRequest)
			return
		}
	}

	// o log só existe como efeito colateral de uma edição de tags de fato:
	// corpo sem o campo tags não audita nada
	if decision.Audited && tagsGiven {
		user, _ := GetUserLogged(c)
		details := fmt.Sprintf("Updated 'tags' field to %v", payload.Tags)
		if _, err := audit.RecordTagEdit(tx, user.ID, text.ID, details); err != nil {
			tx.Rollback()
			RespondError(c, err.Error(), http.StatusBadRequest)
			return
		}
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	if err := db.Preload("Tags").First(&text, text.ID).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	RespondSuccess(c, gin.H{"text": text})
}

// DELETE /texts/:id (admin)
func DeleteText(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var text models.Text
	if err := db.First(&text, id).Error; err != nil {
		RespondError(c, "texto não encontrado", http.StatusNotFound)
		return
	}

	tx := db.Begin()
	if err := tx.Model(&text).Association("Tags").Clear().Error; err != nil {
		tx.Rollback()
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if err := tx.Delete(&models.Text{}, "id = ?", id).Error; err != nil {
		tx.Rollback()
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	RespondSuccess(c, gin.H{"status": "deleted"})
}
