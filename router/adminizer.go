package router

import (
	"net/http"

	"corpora/controllers"
	"corpora/policy"

	"github.com/gin-gonic/gin"
)

// Adminizer blocks access when the caller is not an admin.
func Adminizer() gin.HandlerFunc {
	return func(c *gin.Context) {
		caller := controllers.GetCaller(c)
		if !policy.CanAdmin(caller) {
			controllers.RespondError(c, "admin required", http.StatusForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}
