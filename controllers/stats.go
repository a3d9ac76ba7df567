package controllers

import (
	"net/http"

	dbpkg "corpora/db"
	"corpora/models"
	"corpora/policy"
	"corpora/stats"

	"github.com/gin-gonic/gin"
)

// GET /datasets/:id/tag-counts (admin ou operador com acesso)
func GetTagCounts(c *gin.Context) {
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

	// encoding/json serializa chaves de map em ordem lexicográfica,
	// exatamente a ordenação exigida na resposta
	counts, _, err := stats.CountTextsByTag(db, dataset.ID)
	if err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	RespondSuccess(c, counts)
}

// GET /datasets/:id/search/:query (admin ou operador com acesso)
func SearchTexts(c *gin.Context) {
	datasetID, ok := ParamID(c, "id")
	if !ok {
		return
	}
	query := c.Param("query")
	if query == "" {
		RespondError(c, "query é obrigatório", http.StatusBadRequest)
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

	texts, err := stats.SearchTexts(db, dataset.ID, query)
	if err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	RespondSuccess(c, gin.H{"texts": texts})
}
