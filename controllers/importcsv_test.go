package controllers_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"corpora/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uploadCSV(t *testing.T, r *gin.Engine, token, filename, content string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/import-csv", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestImportCSVEndpoint(t *testing.T) {
	r, db := setupServer(t)
	createAccount(t, db, "boss", models.ROLE_ADMIN, false)
	token := login(t, r, "boss")

	csv := "dataset_name,tags_name,text_content\nds1,x y,hi\n"
	w := uploadCSV(t, r, token, "carga.csv", csv)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var count int
	require.NoError(t, db.Model(&models.Text{}).Count(&count).Error)
	assert.Equal(t, 1, count)
}

func TestImportCSVWrongExtension(t *testing.T) {
	r, db := setupServer(t)
	createAccount(t, db, "boss", models.ROLE_ADMIN, false)
	token := login(t, r, "boss")

	w := uploadCSV(t, r, token, "carga.txt", "dataset_name,tags_name,text_content\n")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestImportCSVMissingFile(t *testing.T) {
	r, db := setupServer(t)
	createAccount(t, db, "boss", models.ROLE_ADMIN, false)
	token := login(t, r, "boss")

	w := doJSON(t, r, http.MethodPost, "/import-csv", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestImportCSVOperatorForbidden(t *testing.T) {
	r, db := setupServer(t)
	dataset := createDataset(t, db, "ds1")
	createAccount(t, db, "op", models.ROLE_OPERATOR, false, dataset)
	token := login(t, r, "op")

	w := uploadCSV(t, r, token, "carga.csv", "dataset_name,tags_name,text_content\nds1,x,hi\n")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestImportCSVValidationRollsBack(t *testing.T) {
	r, db := setupServer(t)
	createAccount(t, db, "boss", models.ROLE_ADMIN, false)
	token := login(t, r, "boss")

	csv := "dataset_name,tags_name,text_content\nds1,x,hi\nds1,y,\n"
	w := uploadCSV(t, r, token, "carga.csv", csv)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var count int
	require.NoError(t, db.Model(&models.Dataset{}).Count(&count).Error)
	assert.Equal(t, 0, count)
}

func TestImportCSVConflictStatus(t *testing.T) {
	r, db := setupServer(t)
	other := createDataset(t, db, "outro")
	createTag(t, db, other, "x", true)

	createAccount(t, db, "boss", models.ROLE_ADMIN, false)
	token := login(t, r, "boss")

	csv := "dataset_name,tags_name,text_content\nds1,x,hi\n"
	w := uploadCSV(t, r, token, "carga.csv", csv)
	assert.Equal(t, http.StatusConflict, w.Code)
}
