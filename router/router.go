package router

import (
	"log"

	"corpora/config"
	"corpora/controllers"
	"corpora/middleware"

	"github.com/gin-gonic/gin"
)

// Initialize wires all routes and middlewares: public auth routes,
// authenticated routes (access-scoped inside the handlers) and admin routes.
func Initialize(r *gin.Engine, cfg config.Configuration) {
	_ = cfg

	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())

	// Public (no auth)
	r.POST("/auth/login", Logger(), controllers.Login)

	// Authenticated routes (token required)
	auth := r.Group("")
	auth.Use(controllers.AuthRequired())

	auth.GET("/auth/logout", Logger(), controllers.Logout)

	// Dataset-scoped reads: admin ou operador com acesso (checado no handler)
	auth.GET("/datasets/:id/tags", Logger(), controllers.GetTagsByDataset)
	auth.GET("/datasets/:id/texts", Logger(), controllers.GetTextsByDataset)
	auth.GET("/datasets/:id/tag-counts", Logger(), controllers.GetTagCounts)
	auth.GET("/datasets/:id/search/:query", Logger(), controllers.SearchTexts)

	// PATCH tem política própria de campos (admin: tudo; operador: só tags)
	auth.PATCH("/texts/:id", Logger(), controllers.PatchText)

	// Admin routes
	admin := auth.Group("")
	admin.Use(Adminizer())

	// Datasets CRUD (admin)
	admin.POST("/datasets", Logger(), controllers.CreateDataset)
	admin.GET("/datasets", Logger(), controllers.GetDatasets)
	admin.GET("/datasets/:id", Logger(), controllers.GetDatasetByID)
	admin.PUT("/datasets/:id", Logger(), controllers.UpdateDataset)
	admin.DELETE("/datasets/:id", Logger(), controllers.DeleteDataset)

	// Tags (admin)
	admin.POST("/datasets/:id/tags", Logger(), controllers.CreateTag)
	admin.GET("/tags/:id", Logger(), controllers.GetTagByID)
	admin.PUT("/tags/:id", Logger(), controllers.UpdateTag)
	admin.DELETE("/tags/:id", Logger(), controllers.DeleteTag)

	// Texts (admin)
	admin.POST("/datasets/:id/texts", Logger(), controllers.CreateText)
	admin.GET("/texts/:id", Logger(), controllers.GetTextByID)
	admin.PUT("/texts/:id", Logger(), controllers.UpdateText)
	admin.DELETE("/texts/:id", Logger(), controllers.DeleteText)

	// Importação CSV (admin)
	admin.POST("/import-csv", Logger(), controllers.ImportCSV)

	// Operadores (admin)
	admin.POST("/auth/create-operator", Logger(), controllers.CreateOperator)
	admin.PUT("/profiles/:id/datasets", Logger(), controllers.UpdateProfileDatasets)

	log.Printf("Routes initialized")
}
