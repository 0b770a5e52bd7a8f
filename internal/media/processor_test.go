package media

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"whatsapp-media-gateway/internal/config"
	"whatsapp-media-gateway/internal/whatsapp"
	"whatsapp-media-gateway/pkg/models"

	"go.uber.org/zap"
)

// exifTIFF carries a single Make="Go" tag.
var exifTIFF = []byte{
	0x49, 0x49, 0x2A, 0x00,
	0x08, 0x00, 0x00, 0x00,
	0x01, 0x00,
	0x0F, 0x01,
	0x02, 0x00,
	0x03, 0x00, 0x00, 0x00,
	0x47, 0x6F, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00,
}

type fakeGraph struct {
	mu       sync.Mutex
	server   *httptest.Server
	media    []byte
	sent     []whatsapp.GenericMessage
	mediaErr bool
}

func newFakeGraph(media []byte) *fakeGraph {
	g := &fakeGraph{media: media}
	g.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/messages"):
			var msg whatsapp.GenericMessage
			json.NewDecoder(r.Body).Decode(&msg)
			g.mu.Lock()
			g.sent = append(g.sent, msg)
			g.mu.Unlock()
			w.Write([]byte(`{"messages":[{"id":"wamid.out"}]}`))
		case strings.HasPrefix(r.URL.Path, "/files/"):
			w.Write(g.media)
		default:
			if g.mediaErr {
				w.WriteHeader(http.StatusNotFound)
				w.Write([]byte(`{"error":{"message":"unknown media"}}`))
				return
			}
			w.Write([]byte(`{"url":"` + g.server.URL + `/files` + r.URL.Path + `"}`))
		}
	}))
	return g
}

func (g *fakeGraph) sentMessages() []whatsapp.GenericMessage {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]whatsapp.GenericMessage(nil), g.sent...)
}

func testProcessor(t *testing.T, graphURL string) *Processor {
	t.Helper()
	client := whatsapp.NewClient(&config.Config{
		WhatsAppToken:   "test-token",
		GraphAPIBaseURL: graphURL,
	})
	store, err := NewStore(t.TempDir(), testDB(t), zap.NewNop())
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	return NewProcessor(client, store, zap.NewNop())
}

func imageMessage() models.InboundMessage {
	return models.InboundMessage{
		From: "491700000000",
		ID:   "wamid.in",
		Type: "image",
		Image: &models.MediaMessage{
			ID:       "media-id-9",
			MimeType: "image/tiff",
			Caption:  "holiday pic",
		},
	}
}

func TestProcessImage(t *testing.T) {
	graph := newFakeGraph(exifTIFF)
	defer graph.server.Close()

	p := testProcessor(t, graph.server.URL)
	if err := p.ProcessImage("phone-1", imageMessage()); err != nil {
		t.Fatalf("ProcessImage() error = %v", err)
	}

	sent := graph.sentMessages()
	if len(sent) != 2 {
		t.Fatalf("sent %d messages, want reply + read receipt", len(sent))
	}

	reply := sent[0]
	if reply.To != "491700000000" || reply.Text == nil {
		t.Fatalf("unexpected reply: %+v", reply)
	}
	if !strings.Contains(reply.Text.Body, "Caption: holiday pic") {
		t.Errorf("reply missing caption: %q", reply.Text.Body)
	}
	if !strings.Contains(reply.Text.Body, "Make: Go") {
		t.Errorf("reply missing EXIF tag: %q", reply.Text.Body)
	}
	if reply.Context == nil || reply.Context.MessageID != "wamid.in" {
		t.Errorf("reply is not threaded to the inbound message: %+v", reply.Context)
	}

	receipt := sent[1]
	if receipt.Status != "read" || receipt.MessageID != "wamid.in" {
		t.Errorf("unexpected read receipt: %+v", receipt)
	}
}

func TestProcessImageWithoutExifStillReplies(t *testing.T) {
	graph := newFakeGraph([]byte("not an image at all"))
	defer graph.server.Close()

	p := testProcessor(t, graph.server.URL)
	if err := p.ProcessImage("phone-1", imageMessage()); err != nil {
		t.Fatalf("ProcessImage() error = %v", err)
	}

	sent := graph.sentMessages()
	if len(sent) != 2 {
		t.Fatalf("sent %d messages, want reply + read receipt", len(sent))
	}
	if !strings.Contains(sent[0].Text.Body, "error:") {
		t.Errorf("reply should carry an error note: %q", sent[0].Text.Body)
	}
}

func TestProcessImageMediaLookupFailure(t *testing.T) {
	graph := newFakeGraph(nil)
	graph.mediaErr = true
	defer graph.server.Close()

	p := testProcessor(t, graph.server.URL)
	if err := p.ProcessImage("phone-1", imageMessage()); err == nil {
		t.Fatal("ProcessImage() expected error when media lookup fails")
	}
	if len(graph.sentMessages()) != 0 {
		t.Error("no messages should be sent when the pipeline fails early")
	}
}

func TestProcessImageNilPayload(t *testing.T) {
	graph := newFakeGraph(nil)
	defer graph.server.Close()

	p := testProcessor(t, graph.server.URL)
	msg := imageMessage()
	msg.Image = nil
	if err := p.ProcessImage("phone-1", msg); err == nil {
		t.Fatal("ProcessImage() expected error for message without image payload")
	}
}
