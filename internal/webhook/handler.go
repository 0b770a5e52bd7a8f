package webhook

import (
	"net/http"

	"whatsapp-media-gateway/internal/config"
	"whatsapp-media-gateway/internal/database"
	"whatsapp-media-gateway/internal/media"
	dbmodels "whatsapp-media-gateway/internal/models"
	"whatsapp-media-gateway/pkg/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	Config    *config.Config
	Processor *media.Processor
	log       *zap.Logger
}

func NewHandler(cfg *config.Config, processor *media.Processor, log *zap.Logger) *Handler {
	return &Handler{
		Config:    cfg,
		Processor: processor,
		log:       log,
	}
}

func (h *Handler) VerifyWebhook(c *gin.Context) {
	mode := c.Query("hub.mode")
	token := c.Query("hub.verify_token")
	challenge := c.Query("hub.challenge")

	if mode == "" || token == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	if mode == "subscribe" && token == h.Config.VerifyToken {
		h.log.Info("Webhook verified successfully")
		c.String(http.StatusOK, challenge)
		return
	}

	h.log.Warn("Webhook verification failed", zap.String("mode", mode))
	c.Status(http.StatusForbidden)
}

func (h *Handler) HandleMessage(c *gin.Context) {
	var payload models.WebhookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.log.Error("Error binding JSON", zap.Error(err))
		c.Status(http.StatusBadRequest)
		return
	}

	if len(payload.Entry) > 0 && len(payload.Entry[0].Changes) > 0 {
		value := payload.Entry[0].Changes[0].Value

		if len(value.Messages) > 0 {
			h.handleInbound(value)
		}

		for _, status := range value.Statuses {
			h.handleStatus(status)
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) handleInbound(value models.ChangeValue) {
	message := value.Messages[0]
	phoneNumberID := value.Metadata.PhoneNumberID

	var content string
	switch message.Type {
	case "text":
		content = message.Text.Body
		h.log.Info("Received text message", zap.String("from", message.From))
	case "image":
		if message.Image != nil {
			content = "[image]:" + message.Image.ID
			if message.Image.Caption != "" {
				content += ":" + message.Image.Caption
			}
		}
		h.log.Info("Received image", zap.String("from", message.From))
	case "video":
		if message.Video != nil {
			content = "[video]:" + message.Video.ID
		}
		h.log.Info("Received video", zap.String("from", message.From))
	case "audio":
		if message.Audio != nil {
			content = "[audio]:" + message.Audio.ID
		}
		h.log.Info("Received audio", zap.String("from", message.From))
	case "document":
		if message.Document != nil {
			content = "[document]:" + message.Document.ID
			if message.Document.Filename != "" {
				content += ":" + message.Document.Filename
			}
		}
		h.log.Info("Received document", zap.String("from", message.From))
	default:
		content = "[" + message.Type + "]"
		h.log.Info("Received message", zap.String("type", message.Type), zap.String("from", message.From))
	}

	record := dbmodels.Message{
		WaID:    message.ID,
		Sender:  message.From,
		Content: content,
		Type:    message.Type,
		Status:  "received",
	}
	if err := database.DB.Create(&record).Error; err != nil {
		h.log.Error("Error inserting message", zap.Error(err))
	}

	contact := dbmodels.Contact{WaID: message.From, Name: message.From}
	if err := database.DB.Where(dbmodels.Contact{WaID: message.From}).FirstOrCreate(&contact).Error; err != nil {
		h.log.Error("Error saving contact", zap.Error(err))
	}

	if h.Processor != nil && message.Type == "image" && message.Image != nil {
		// Failures stay server-side: log and move on, the webhook
		// response is already committed to {"status": "ok"}.
		if err := h.Processor.ProcessImage(phoneNumberID, message); err != nil {
			h.log.Error("Error processing image", zap.String("media_id", message.Image.ID), zap.Error(err))
		}
	}
}

func (h *Handler) handleStatus(status models.MessageStatus) {
	result := database.DB.Model(&dbmodels.Message{}).
		Where("wa_id = ?", status.ID).
		Update("status", status.Status)
	if result.Error != nil {
		h.log.Error("Error updating message status", zap.String("wa_id", status.ID), zap.Error(result.Error))
	}
}
