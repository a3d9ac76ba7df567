package controllers_test

import (
	"net/http"
	"testing"

	"corpora/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginAndLogout(t *testing.T) {
	r, db := setupServer(t)
	createAccount(t, db, "boss", models.ROLE_ADMIN, false)

	token := login(t, r, "boss")

	w := doJSON(t, r, http.MethodGet, "/auth/logout", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	r, db := setupServer(t)
	createAccount(t, db, "boss", models.ROLE_ADMIN, false)

	w := doJSON(t, r, http.MethodPost, "/auth/login", "", gin.H{
		"username": "boss",
		"password": "errada",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginUnknownUser(t *testing.T) {
	r, _ := setupServer(t)

	w := doJSON(t, r, http.MethodPost, "/auth/login", "", gin.H{
		"username": "ninguem",
		"password": testPassword,
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProtectedRouteWithoutToken(t *testing.T) {
	r, _ := setupServer(t)
	w := doJSON(t, r, http.MethodGet, "/datasets", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProtectedRouteWithGarbageToken(t *testing.T) {
	r, _ := setupServer(t)
	w := doJSON(t, r, http.MethodGet, "/datasets", "nem.um.jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateOperator(t *testing.T) {
	r, db := setupServer(t)
	dataset := createDataset(t, db, "ds1")
	createAccount(t, db, "boss", models.ROLE_ADMIN, false)
	token := login(t, r, "boss")

	w := doJSON(t, r, http.MethodPost, "/auth/create-operator", token, gin.H{
		"username":           "novo",
		"password":           "senha123",
		"available_datasets": []int64{dataset.ID},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var profile models.Profile
	var user models.User
	require.NoError(t, db.Where("username = ?", "novo").First(&user).Error)
	require.NoError(t, db.Preload("AvailableDatasets").
		Where("user_id = ?", user.ID).First(&profile).Error)
	assert.Equal(t, models.ROLE_OPERATOR, profile.Role)
	require.Len(t, profile.AvailableDatasets, 1)
	assert.Equal(t, dataset.ID, profile.AvailableDatasets[0].ID)
}

func TestCreateOperatorRequiresAdmin(t *testing.T) {
	r, db := setupServer(t)
	createAccount(t, db, "op", models.ROLE_OPERATOR, false)
	token := login(t, r, "op")

	w := doJSON(t, r, http.MethodPost, "/auth/create-operator", token, gin.H{
		"username": "novo",
		"password": "senha123",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCreateOperatorInvalidRole(t *testing.T) {
	r, db := setupServer(t)
	createAccount(t, db, "boss", models.ROLE_ADMIN, false)
	token := login(t, r, "boss")

	w := doJSON(t, r, http.MethodPost, "/auth/create-operator", token, gin.H{
		"username": "novo",
		"password": "senha123",
		"role":     "root",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateProfileDatasets(t *testing.T) {
	r, db := setupServer(t)
	ds1 := createDataset(t, db, "ds1")
	ds2 := createDataset(t, db, "ds2")

	operator := createAccount(t, db, "op", models.ROLE_OPERATOR, false, ds1)
	createAccount(t, db, "boss", models.ROLE_ADMIN, false)
	adminToken := login(t, r, "boss")

	var profile models.Profile
	require.NoError(t, db.Where("user_id = ?", operator.ID).First(&profile).Error)

	// substitui ds1 por ds2
	w := doJSON(t, r, http.MethodPut, "/profiles/1/datasets", adminToken, gin.H{
		"available_datasets": []int64{ds2.ID},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// o operador perde ds1 e ganha ds2
	opToken := login(t, r, "op")
	w = doJSON(t, r, http.MethodGet, "/datasets/1/texts", opToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = doJSON(t, r, http.MethodGet, "/datasets/2/texts", opToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
