package controllers

import (
	"net/http"
	"time"

	dbpkg "corpora/db"
	"corpora/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type LoginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

type LoginResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// POST /auth/login
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Username == "" || req.Password == "" {
		RespondError(c, "username e password são obrigatórios", http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var user models.User
	if err := db.Where("username = ?", req.Username).First(&user).Error; err != nil {
		RespondError(c, "usuário ou senha inválidos", http.StatusUnauthorized)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		RespondError(c, "usuário ou senha inválidos", http.StatusUnauthorized)
		return
	}

	hours := conf.Security.TokenHours
	if hours <= 0 {
		hours = 24
	}
	claims := jwt.MapClaims{
		"sub": user.ID,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(time.Duration(hours) * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(conf.Security.JwtSecret))
	if err != nil {
		RespondError(c, "erro ao assinar token", http.StatusInternalServerError)
		return
	}

	user.Password = ""
	RespondSuccess(c, LoginResponse{Token: signed, User: user})
}

// GET /auth/logout
//
// Tokens são stateless: o logout existe pela simetria com o cliente, que
// descarta o token ao receber 200.
func Logout(c *gin.Context) {
	if _, ok := GetUserLogged(c); !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}
	RespondSuccess(c, gin.H{"message": "logout efetuado"})
}

type CreateOperatorRequest struct {
	Username          string  `json:"username" form:"username"`
	Password          string  `json:"password" form:"password"`
	Role              string  `json:"role" form:"role"`
	AvailableDatasets []int64 `json:"available_datasets" form:"available_datasets"`
}

// POST /auth/create-operator (admin)
func CreateOperator(c *gin.Context) {
	var req CreateOperatorRequest
	if err := c.Bind(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Username == "" {
		RespondError(c, "Faltando campo username", http.StatusBadRequest)
		return
	}
	if req.Password == "" {
		RespondError(c, "Faltando campo password", http.StatusBadRequest)
		return
	}
	if req.Role != "" && !models.ValidRole(req.Role) {
		RespondError(c, "role inválido", http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var existing models.User
	if err := db.Where("username = ?", req.Username).First(&existing).Error; err == nil {
		RespondError(c, "usuário já existe", http.StatusBadRequest)
		return
	}

	cost := conf.Security.BcryptCost
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), cost)
	if err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}

	var datasets []models.Dataset
	for _, id := range req.AvailableDatasets {
		var dataset models.Dataset
		if err := db.First(&dataset, id).Error; err != nil {
			RespondError(c, "dataset não encontrado", http.StatusBadRequest)
			return
		}
		datasets = append(datasets, dataset)
	}

	user := models.User{Username: req.Username, Password: string(hash)}

	tx := db.Begin()
	if err := tx.Create(&user).Error; err != nil {
		tx.Rollback()
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	// ProfileFor garante o invariante superuser => admin
	profile := models.ProfileFor(user, req.Role)
	if err := tx.Create(&profile).Error; err != nil {
		tx.Rollback()
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if len(datasets) > 0 {
		if err := tx.Model(&profile).Association("AvailableDatasets").Replace(datasets).Error; err != nil {
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

	user.Password = ""
	RespondCreated(c, gin.H{"user": user, "profile": profile})
}
