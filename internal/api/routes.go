package api

import (
	"github.com/gin-gonic/gin"

	"github.com/youruser/cardforge/configs"
	"github.com/youruser/cardforge/internal/style"
)

func RegisterRoutes(r *gin.Engine, catalog *style.Catalog, cfg *configs.Config) {
	s := &server{catalog: catalog, cfg: cfg}
	api := r.Group("/api")
	{
		api.GET("/health", health)
		api.GET("/templates", s.listTemplates)
		api.GET("/color-schemes", s.listSchemes)
		api.GET("/fonts", s.listFonts)
		api.POST("/card/preview", s.previewHandler)
		api.POST("/card/export/:format", s.exportHandler)
		api.POST("/card/logo", s.logoHandler)
		api.POST("/batch", s.batchHandler)
	}
}
