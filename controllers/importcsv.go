package controllers

import (
	"errors"
	"net/http"
	"strings"

	dbpkg "corpora/db"
	"corpora/importer"

	"github.com/gin-gonic/gin"
)

// POST /import-csv (admin)
//
// Upload multipart no campo "file", extensão .csv obrigatória. A carga roda
// numa única transação: qualquer linha ruim desfaz a importação inteira.
func ImportCSV(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		RespondError(c, "arquivo obrigatório no campo file", http.StatusBadRequest)
		return
	}
	if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".csv") {
		RespondError(c, "extensão .csv obrigatória", http.StatusBadRequest)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	summary, err := importer.ImportCSV(db, file)
	if err != nil {
		var rowErr *importer.RowError
		if errors.As(err, &rowErr) {
			switch rowErr.Kind {
			case importer.KindValidation:
				RespondError(c, rowErr.Error(), http.StatusBadRequest)
			case importer.KindConflict:
				RespondError(c, rowErr.Error(), http.StatusConflict)
			default:
				RespondError(c, rowErr.Error(), http.StatusInternalServerError)
			}
			return
		}
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}

	RespondSuccess(c, gin.H{"status": "imported", "summary": summary})
}
