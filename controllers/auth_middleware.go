package controllers

import (
	"net/http"
	"strings"

	dbpkg "corpora/db"
	"corpora/models"
	"corpora/policy"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const ctxUserKey = "auth_user"
const ctxCallerKey = "auth_caller"

// AuthRequired validates the Bearer token, loads the user and profile from DB
// and resolves the policy.Caller once for the whole request.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if !strings.HasPrefix(strings.ToLower(h), "bearer ") {
			RespondError(c, "unauthorized", http.StatusUnauthorized)
			c.Abort()
			return
		}
		raw := strings.TrimSpace(h[len("Bearer "):])

		token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(conf.Security.JwtSecret), nil
		})
		if err != nil || !token.Valid {
			RespondError(c, "token inválido", http.StatusUnauthorized)
			c.Abort()
			return
		}
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			RespondError(c, "token inválido", http.StatusUnauthorized)
			c.Abort()
			return
		}
		sub, ok := claims["sub"].(float64)
		if !ok || sub <= 0 {
			RespondError(c, "token inválido", http.StatusUnauthorized)
			c.Abort()
			return
		}

		db := dbpkg.DBInstance(c)
		if db == nil {
			RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
			c.Abort()
			return
		}
		var user models.User
		if err := db.First(&user, int64(sub)).Error; err != nil {
			RespondError(c, "user not found", http.StatusUnauthorized)
			c.Abort()
			return
		}

		c.Set(ctxUserKey, user)
		c.Set(ctxCallerKey, resolveCaller(c, user))
		c.Next()
	}
}

// GetUserLogged returns the user loaded by AuthRequired.
func GetUserLogged(c *gin.Context) (models.User, bool) {
	v, ok := c.Get(ctxUserKey)
	if !ok {
		return models.User{}, false
	}
	user, ok := v.(models.User)
	return user, ok
}

// GetCaller returns the identity resolved by AuthRequired.
func GetCaller(c *gin.Context) policy.Caller {
	v, ok := c.Get(ctxCallerKey)
	if !ok {
		return policy.Anonymous()
	}
	caller, ok := v.(policy.Caller)
	if !ok {
		return policy.Anonymous()
	}
	return caller
}

// resolveCaller maps user+profile onto the tagged policy identity. Superuser
// accounts are always admin, whatever the stored profile says.
func resolveCaller(c *gin.Context, user models.User) policy.Caller {
	if user.Superuser {
		return policy.Admin(user.ID)
	}

	db := dbpkg.DBInstance(c)
	var profile models.Profile
	if err := db.Preload("AvailableDatasets").
		Where("user_id = ?", user.ID).First(&profile).Error; err != nil {
		return policy.Anonymous()
	}

	if profile.Role == models.ROLE_ADMIN {
		return policy.Admin(user.ID)
	}
	ids := make([]int64, 0, len(profile.AvailableDatasets))
	for _, dataset := range profile.AvailableDatasets {
		ids = append(ids, dataset.ID)
	}
	return policy.Operator(user.ID, ids)
}
