package api

import (
	"net/http"

	"whatsapp-media-gateway/internal/config"

	"github.com/gin-gonic/gin"
)

type SystemHandler struct {
	Config *config.Config
}

func NewSystemHandler(cfg *config.Config) *SystemHandler {
	return &SystemHandler{Config: cfg}
}

func (h *SystemHandler) Root(c *gin.Context) {
	c.String(http.StatusOK, "Nothing to see here.\nCheckout README.md to start.")
}

// Debug exposes partial configuration. The bearer token is truncated to its
// first five characters.
func (h *SystemHandler) Debug(c *gin.Context) {
	token := h.Config.WhatsAppToken
	if len(token) > 5 {
		token = token[:5] + "..."
	}

	c.JSON(http.StatusOK, gin.H{
		"VERIFY_TOKEN":   h.Config.VerifyToken,
		"WHATSAPP_TOKEN": token,
		"PORT":           h.Config.Port,
	})
}
