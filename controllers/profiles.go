package controllers

import (
	"net/http"

	dbpkg "corpora/db"
	"corpora/models"

	"github.com/gin-gonic/gin"
)

type UpdateAvailableDatasetsRequest struct {
	AvailableDatasets []int64 `json:"available_datasets" form:"available_datasets"`
}

// PUT /profiles/:id/datasets (admin)
//
// Substitui o conjunto de datasets liberados para o operador.
func UpdateProfileDatasets(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	var req UpdateAvailableDatasetsRequest
	if err := c.Bind(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var profile models.Profile
	if err := db.First(&profile, id).Error; err != nil {
		RespondError(c, "profile não encontrado", http.StatusNotFound)
		return
	}

	datasets := make([]models.Dataset, 0, len(req.AvailableDatasets))
	for _, datasetID := range req.AvailableDatasets {
		var dataset models.Dataset
		if err := db.First(&dataset, datasetID).Error; err != nil {
			RespondError(c, "dataset não encontrado", http.StatusBadRequest)
			return
		}
		datasets = append(datasets, dataset)
	}

	if err := db.Model(&profile).Association("AvailableDatasets").Replace(datasets).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	profile.AvailableDatasets = datasets
	RespondSuccess(c, gin.H{"profile": profile})
}
