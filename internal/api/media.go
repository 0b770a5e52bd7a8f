package api

import (
	"net/http"

	"whatsapp-media-gateway/internal/database"
	"whatsapp-media-gateway/internal/models"

	"github.com/gin-gonic/gin"
)

type MediaHandler struct{}

func NewMediaHandler() *MediaHandler {
	return &MediaHandler{}
}

func (h *MediaHandler) ListMedia(c *gin.Context) {
	var files []models.MediaFile
	if err := database.DB.Order("created_at DESC").Find(&files).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if files == nil {
		files = []models.MediaFile{}
	}
	c.JSON(http.StatusOK, files)
}
