package media

import (
	"fmt"

	"whatsapp-media-gateway/internal/metadata"
	"whatsapp-media-gateway/internal/whatsapp"
	"whatsapp-media-gateway/pkg/models"

	"go.uber.org/zap"
)

// Processor runs the inbound image pipeline: fetch the media URL, download
// the bytes, save to disk, extract EXIF tags, reply with a summary and mark
// the inbound message as read.
type Processor struct {
	Client *whatsapp.Client
	Store  *Store
	log    *zap.Logger
}

func NewProcessor(client *whatsapp.Client, store *Store, log *zap.Logger) *Processor {
	return &Processor{
		Client: client,
		Store:  store,
		log:    log,
	}
}

func (p *Processor) ProcessImage(phoneNumberID string, msg models.InboundMessage) error {
	image := msg.Image
	if image == nil {
		return fmt.Errorf("message %s has no image payload", msg.ID)
	}

	url, err := p.Client.RetrieveMediaURL(image.ID)
	if err != nil {
		return fmt.Errorf("failed to retrieve media URL for %s: %w", image.ID, err)
	}

	data, err := p.Client.DownloadMedia(url)
	if err != nil {
		return fmt.Errorf("failed to download media %s: %w", image.ID, err)
	}

	path, err := p.Store.Save(image.ID, data, image.MimeType)
	if err != nil {
		return err
	}

	tags, err := metadata.Extract(path)
	var summary string
	if err != nil {
		p.log.Warn("EXIF extraction failed", zap.String("path", path), zap.Error(err))
		summary = "error: " + err.Error()
	} else {
		summary = metadata.Summary(tags)
	}

	caption := image.Caption
	if caption == "" {
		caption = "No caption"
	}
	body := fmt.Sprintf("Image received and saved successfully!\nCaption: %s\n\nMetadata:\n%s", caption, summary)

	if err := p.Client.SendReply(phoneNumberID, msg.From, body, msg.ID); err != nil {
		return fmt.Errorf("failed to send reply to %s: %w", msg.From, err)
	}

	if err := p.Client.MarkAsRead(phoneNumberID, msg.ID); err != nil {
		return fmt.Errorf("failed to mark message %s as read: %w", msg.ID, err)
	}

	p.log.Info("Image processed",
		zap.String("media_id", image.ID),
		zap.String("from", msg.From),
		zap.Int("exif_tags", len(tags)))
	return nil
}
