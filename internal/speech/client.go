// Package speech wraps the whisper transcription and voice synthesis
// services used for voice messages.
package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	errs "talkworld/internal/errors"
)

// Segment is one timed span of a transcription.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Transcription is the result of transcribing a voice message.
type Transcription struct {
	Text     string    `json:"text"`
	Language string    `json:"language"`
	Segments []Segment `json:"segments"`
}

// Client talks to the transcription and synthesis services. Safe for
// concurrent use.
type Client struct {
	sttURL string
	ttsURL string
	http   *http.Client
}

// NewClient creates a client for the given transcription and synthesis
// base URLs. Model inference on CPU is slow, so the timeout is generous.
func NewClient(sttURL, ttsURL string) *Client {
	return &Client{
		sttURL: sttURL,
		ttsURL: ttsURL,
		http:   &http.Client{Timeout: 120 * time.Second},
	}
}

// Transcribe uploads audio and returns its transcription. Pass an empty
// language to let the model detect it.
func (c *Client) Transcribe(ctx context.Context, filename string, audio io.Reader, language string) (Transcription, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	part, err := mw.CreateFormFile("audio", filename)
	if err != nil {
		return Transcription{}, err
	}
	if _, err := io.Copy(part, audio); err != nil {
		return Transcription{}, err
	}
	if language != "" {
		if err := mw.WriteField("language", language); err != nil {
			return Transcription{}, err
		}
	}
	if err := mw.Close(); err != nil {
		return Transcription{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.sttURL+"/api/transcribe", &body)
	if err != nil {
		return Transcription{}, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return Transcription{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Transcription{}, statusError("transcribe", resp)
	}

	var tr Transcription
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return Transcription{}, err
	}
	return tr, nil
}

// Synthesize renders text to WAV audio in the given language. The speed
// multiplier defaults to 1.0 when zero.
func (c *Client) Synthesize(ctx context.Context, text, language string, speed float64) ([]byte, error) {
	if speed == 0 {
		speed = 1.0
	}
	payload, err := json.Marshal(map[string]any{
		"text":        text,
		"language_id": language,
		"speed":       speed,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.ttsURL+"/api/tts", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError("tts", resp)
	}
	return io.ReadAll(resp.Body)
}

func statusError(op string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return errs.Status(errs.Op("speech: "+op), resp.StatusCode, string(bytes.TrimSpace(body)))
}
