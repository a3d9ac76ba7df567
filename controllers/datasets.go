package controllers

import (
	"net/http"

	dbpkg "corpora/db"
	"corpora/models"

	"github.com/gin-gonic/gin"
)

// POST /datasets (admin)
func CreateDataset(c *gin.Context) {
	var dataset models.Dataset
	if err := c.Bind(&dataset); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if missing := dataset.MissingFields(); missing != "" {
		RespondError(c, "Faltando campo "+missing, http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}
	dataset.ID = 0
	if err := db.Create(&dataset).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	RespondCreated(c, gin.H{"dataset": dataset})
}

// GET /datasets (admin)
func GetDatasets(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}
	var datasets []models.Dataset
	if err := db.Order("id asc").Find(&datasets).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	RespondSuccess(c, gin.H{"datasets": datasets})
}

// GET /datasets/:id (admin)
func GetDatasetByID(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}
	var dataset models.Dataset
	if err := db.First(&dataset, id).Error; err != nil {
		RespondError(c, "dataset não encontrado", http.StatusNotFound)
		return
	}
	RespondSuccess(c, gin.H{"dataset": dataset})
}

// PUT /datasets/:id (admin)
func UpdateDataset(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	var body models.Dataset
	if err := c.Bind(&body); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var dataset models.Dataset
	if err := db.First(&dataset, id).Error; err != nil {
		RespondError(c, "dataset não encontrado", http.StatusNotFound)
		return
	}

	// creation_date é imutável: só nome e descrição são atualizáveis
	if body.Name != "" {
		dataset.Name = body.Name
	}
	dataset.Description = body.Description

	if err := db.Save(&dataset).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	RespondSuccess(c, gin.H{"dataset": dataset})
}

// DELETE /datasets/:id (admin)
//
// Apaga em cascata as tags, os textos e as linhas de junção do dataset.
func DeleteDataset(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var dataset models.Dataset
	if err := db.First(&dataset, id).Error; err != nil {
		RespondError(c, "dataset não encontrado", http.StatusNotFound)
		return
	}

	tx := db.Begin()

	var texts []models.Text
	if err := tx.Where("dataset_id = ?", id).Find(&texts).Error; err != nil {
		tx.Rollback()
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	for _, text := range texts {
		if err := tx.Model(&text).Association("Tags").Clear().Error; err != nil {
			tx.Rollback()
			RespondError(c, err.Error(), http.StatusBadRequest)
			return
		}
	}
	if err := tx.Delete(&models.Text{}, "dataset_id = ?", id).Error; err != nil {
		tx.Rollback()
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if err := tx.Delete(&models.Tag{}, "dataset_id = ?", id).Error; err != nil {
		tx.Rollback()
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if err := tx.Exec("DELETE FROM profile_datasets WHERE dataset_id = ?", id).Error; err != nil {
		tx.Rollback()
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if err := tx.Delete(&models.Dataset{}, "id = ?", id).Error; err != nil {
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
