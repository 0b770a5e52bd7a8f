package api

import (
	"net/http"
	"strconv"

	"whatsapp-media-gateway/internal/config"
	"whatsapp-media-gateway/internal/database"
	"whatsapp-media-gateway/internal/models"
	"whatsapp-media-gateway/internal/whatsapp"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type DashboardHandler struct {
	Client *whatsapp.Client
	Config *config.Config
	log    *zap.Logger
}

func NewDashboardHandler(client *whatsapp.Client, cfg *config.Config, log *zap.Logger) *DashboardHandler {
	return &DashboardHandler{Client: client, Config: cfg, log: log}
}

func (h *DashboardHandler) GetMessages(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if err != nil || limit <= 0 {
		limit = 100
	}

	var messages []models.Message
	if err := database.DB.Order("created_at DESC").Limit(limit).Find(&messages).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if messages == nil {
		messages = []models.Message{}
	}
	c.JSON(http.StatusOK, messages)
}

type SendRequest struct {
	To   string `json:"to" binding:"required"`
	Body string `json:"body" binding:"required"`
}

func (h *DashboardHandler) SendMessage(c *gin.Context) {
	var req SendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Client.SendMessage(h.Config.PhoneNumberID, req.To, req.Body); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message: " + err.Error()})
		return
	}

	record := models.Message{
		WaID:    "outgoing-" + req.To,
		Sender:  req.To,
		Content: req.Body,
		Type:    "text",
		Status:  "sent",
	}
	if err := database.DB.Create(&record).Error; err != nil {
		h.log.Error("Error recording outbound message", zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{"status": "Message sent"})
}
