package controllers

import (
	"net/http"

	dbpkg "corpora/db"
	"corpora/models"
	"corpora/policy"

	"github.com/gin-gonic/gin"
)

// POST /datasets/:id/tags (admin)
func CreateTag(c *gin.Context) {
	datasetID, ok := ParamID(c, "id")
	if !ok {
		return
	}

	var tag models.Tag
	if err := c.Bind(&tag); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if missing := tag.MissingFields(); missing != "" {
		RespondError(c, "Faltando campo "+missing, http.StatusBadRequest)
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

	// nomes de tag são únicos dentro do dataset
	var existing models.Tag
	if err := db.Where("dataset_id = ? AND name = ?", datasetID, tag.Name).
		First(&existing).Error; err == nil {
		RespondError(c, "tag já existe neste dataset", http.StatusBadRequest)
		return
	}

	tag.ID = 0
	tag.DatasetID = dataset.ID
	if tag.IsActive == nil {
		active := true
		tag.IsActive = &active
	}
	if err := db.Create(&tag).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	RespondCreated(c, gin.H{"tag": tag})
}

// GET /datasets/:id/tags (admin ou operador com acesso)
//
// Tags inativas ficam de fora da listagem.
func GetTagsByDataset(c *gin.Context) {
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

	var tags []models.Tag
	if err := db.Where("dataset_id = ? AND is_active = ?", datasetID, true).
		Order("id asc").Find(&tags).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	RespondSuccess(c, gin.H{"tags": tags})
}

// GET /tags/:id (admin)
func GetTagByID(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}
	var tag models.Tag
	if err := db.First(&tag, id).Error; err != nil {
		RespondError(c, "tag não encontrada", http.StatusNotFound)
		return
	}
	RespondSuccess(c, gin.H{"tag": tag})
}

// PUT /tags/:id (admin)
func UpdateTag(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	var body models.Tag
	if err := c.Bind(&body); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var tag models.Tag
	if err := db.First(&tag, id).Error; err != nil {
		RespondError(c, "tag não encontrada", http.StatusNotFound)
		return
	}

	// dataset é dono exclusivo e não muda; nome continua único no dataset
	if body.Name != "" && body.Name != tag.Name {
		var existing models.Tag
		if err := db.Where("dataset_id = ? AND name = ?", tag.DatasetID, body.Name).
			First(&existing).Error; err == nil {
			RespondError(c, "tag já existe neste dataset", http.StatusBadRequest)
			return
		}
		tag.Name = body.Name
	}
	tag.Description = body.Description
	if body.IsActive != nil {
		tag.IsActive = body.IsActive
	}

	if err := db.Save(&tag).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	RespondSuccess(c, gin.H{"tag": tag})
}

// DELETE /tags/:id (admin)
func DeleteTag(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var tag models.Tag
	if err := db.First(&tag, id).Error; err != nil {
		RespondError(c, "tag não encontrada", http.StatusNotFound)
		return
	}

	tx := db.Begin()
	if err := tx.Exec("DELETE FROM text_tags WHERE tag_id = ?", id).Error; err != nil {
		tx.Rollback()
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if err := tx.Delete(&models.Tag{}, "id = ?", id).Error; err != nil {
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
