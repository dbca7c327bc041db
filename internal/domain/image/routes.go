package image

import "github.com/gin-gonic/gin"

// RegisterRoutes registers image routes under the given group.
func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	images := r.Group("/images")
	{
		images.POST("", h.Upload)
		images.GET("/:id", h.GetOriginal)
		images.GET("/:id/variations/:height", h.GetVariation)
		images.DELETE("/:id", h.Delete)
	}
}
