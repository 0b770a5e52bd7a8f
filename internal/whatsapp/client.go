package whatsapp

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"whatsapp-media-gateway/internal/config"
)

type Client struct {
	Config *config.Config
	http   *http.Client
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		Config: cfg,
		http:   &http.Client{Timeout: 30 * time.Second},
	}
}

// --- Message Structures ---

type GenericMessage struct {
	MessagingProduct string      `json:"messaging_product"`
	To               string      `json:"to,omitempty"`
	Type             string      `json:"type,omitempty"`
	Text             *TextObj    `json:"text,omitempty"`
	Context          *ContextObj `json:"context,omitempty"`
	Status           string      `json:"status,omitempty"`
	MessageID        string      `json:"message_id,omitempty"`
}

type TextObj struct {
	Body       string `json:"body"`
	PreviewUrl bool   `json:"preview_url,omitempty"`
}

// ContextObj marks an outbound message as a reply to an earlier inbound message
type ContextObj struct {
	MessageID string `json:"message_id"`
}

// --- Helper Functions ---

func (c *Client) sendRequest(method, url string, body interface{}) ([]byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		bodyReader = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, url, bodyReader)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+c.Config.WhatsAppToken)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 400 {
		return respBody, fmt.Errorf("API error: %s - %s", resp.Status, string(respBody))
	}

	return respBody, nil
}

func (c *Client) messagesURL(phoneNumberID string) string {
	return fmt.Sprintf("%s/%s/messages", c.Config.GraphAPIBaseURL, phoneNumberID)
}

// --- Messaging Methods ---

func (c *Client) SendRawMessage(phoneNumberID string, msg GenericMessage) error {
	_, err := c.sendRequest("POST", c.messagesURL(phoneNumberID), msg)
	return err
}

func (c *Client) SendMessage(phoneNumberID, to, body string) error {
	msg := GenericMessage{
		MessagingProduct: "whatsapp",
		To:               to,
		Type:             "text",
		Text: &TextObj{
			Body: body,
		},
	}
	return c.SendRawMessage(phoneNumberID, msg)
}

// SendReply sends a text message threaded under the inbound message it answers.
func (c *Client) SendReply(phoneNumberID, to, body, replyToMessageID string) error {
	msg := GenericMessage{
		MessagingProduct: "whatsapp",
		To:               to,
		Type:             "text",
		Text: &TextObj{
			Body: body,
		},
		Context: &ContextObj{
			MessageID: replyToMessageID,
		},
	}
	return c.SendRawMessage(phoneNumberID, msg)
}

// MarkAsRead sends a read receipt for an inbound message.
func (c *Client) MarkAsRead(phoneNumberID, messageID string) error {
	msg := GenericMessage{
		MessagingProduct: "whatsapp",
		Status:           "read",
		MessageID:        messageID,
	}
	return c.SendRawMessage(phoneNumberID, msg)
}

// --- Media Methods ---

// RetrieveMediaURL looks up the short-lived download URL for a media ID.
func (c *Client) RetrieveMediaURL(mediaID string) (string, error) {
	url := fmt.Sprintf("%s/%s", c.Config.GraphAPIBaseURL, mediaID)
	resp, err := c.sendRequest("GET", url, nil)
	if err != nil {
		return "", err
	}

	var obj struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(resp, &obj); err != nil {
		return "", err
	}

	return obj.URL, nil
}

// DownloadMedia fetches the media bytes from a URL returned by RetrieveMediaURL.
// The URL expires after a few minutes and requires the same bearer token.
func (c *Client) DownloadMedia(url string) ([]byte, error) {
	return c.sendRequest("GET", url, nil)
}
