package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"corpora/config"
	"corpora/controllers"
	dbpkg "corpora/db"
	"corpora/models"
	"corpora/router"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testPassword = "secret123"

func setupServer(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open("sqlite3", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	dbpkg.Migrate(db)

	var cfg config.Configuration
	cfg.Security.JwtSecret = "test-secret"
	cfg.Security.TokenHours = 1
	cfg.Security.BcryptCost = bcrypt.MinCost
	controllers.SetConfigurations(cfg)

	r := gin.New()
	r.Use(dbpkg.SetDBtoContext(db))
	router.Initialize(r, cfg)
	return r, db
}

// createAccount grava user+profile direto no banco, com a senha padrão de teste.
func createAccount(t *testing.T, db *gorm.DB, username, role string, superuser bool, datasets ...models.Dataset) models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{Username: username, Password: string(hash), Superuser: superuser}
	require.NoError(t, db.Create(&user).Error)

	profile := models.ProfileFor(user, role)
	require.NoError(t, db.Create(&profile).Error)
	if len(datasets) > 0 {
		require.NoError(t, db.Model(&profile).Association("AvailableDatasets").Replace(datasets).Error)
	}
	return user
}

func login(t *testing.T, r *gin.Engine, username string) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/auth/login", "", gin.H{
		"username": username,
		"password": testPassword,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createDataset(t *testing.T, db *gorm.DB, name string) models.Dataset {
	t.Helper()
	dataset := models.Dataset{Name: name}
	require.NoError(t, db.Create(&dataset).Error)
	return dataset
}

func createTag(t *testing.T, db *gorm.DB, dataset models.Dataset, name string, active bool) models.Tag {
	t.Helper()
	tag := models.Tag{Name: name, DatasetID: dataset.ID, IsActive: &active}
	require.NoError(t, db.Create(&tag).Error)
	return tag
}

func createText(t *testing.T, db *gorm.DB, dataset models.Dataset, content string, tags ...models.Tag) models.Text {
	t.Helper()
	text := models.Text{Content: content, DatasetID: dataset.ID, Tags: tags}
	require.NoError(t, db.Create(&text).Error)
	return text
}
