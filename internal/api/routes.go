package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes sets up the API endpoints and groups them logically.
func RegisterRoutes(router *gin.Engine, h *APIHandler) {

	// --- Wizard Sessions ---
	// The whole flow lives under a session: interview -> template -> editor.
	sessionGroup := router.Group("/sessions")
	{
		sessionGroup.POST("", h.CreateSession)
		sessionGroup.GET("/:id", h.GetSession)

		// Interview and template selection
		sessionGroup.POST("/:id/answers", h.SubmitAnswer)
		sessionGroup.POST("/:id/suggestion/retry", h.RetrySuggestion)
		sessionGroup.POST("/:id/template", h.ChooseTemplate)

		// Generated document
		sessionGroup.GET("/:id/document", h.ExportDocument)
		sessionGroup.GET("/:id/regions", h.ListRegions)
		sessionGroup.GET("/:id/preview", h.PreviewMode)

		// Editing
		sessionGroup.POST("/:id/edits/text", h.EditText)
		sessionGroup.POST("/:id/edits/image", h.ReplaceImage)

		// Hosting
		sessionGroup.POST("/:id/publish", h.Publish)
		sessionGroup.POST("/:id/unpublish", h.Unpublish)
	}

	// --- Template Catalog ---
	router.GET("/templates", h.ListTemplates)

	// --- Simple Health Check ---
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
