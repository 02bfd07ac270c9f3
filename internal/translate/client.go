// Package translate is the client for the m2m100 translation service.
package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	errs "talkworld/internal/errors"
)

// Result is one completed translation.
type Result struct {
	OriginalText   string  `json:"original_text"`
	TranslatedText string  `json:"translated_text"`
	SourceLanguage string  `json:"source_language"`
	TargetLanguage string  `json:"target_language"`
	ProcessingTime float64 `json:"processing_time"`
}

// Detection is the outcome of a language detection request.
type Detection struct {
	Text       string  `json:"text"`
	Language   string  `json:"language"`
	Detected   string  `json:"detected_language"`
	Confidence float64 `json:"confidence"`
}

// Client talks to the translation service. Safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the given base URL. Translation of long
// messages can take a while on CPU, so the timeout is generous.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 60 * time.Second},
	}
}

// Translate translates text into the target language. Pass an empty
// source language to let the service auto-detect it.
func (c *Client) Translate(ctx context.Context, text, sourceLang, targetLang string) (Result, error) {
	req := map[string]string{
		"text":            text,
		"target_language": targetLang,
	}
	if sourceLang != "" {
		req["source_language"] = sourceLang
	}

	var res Result
	if err := c.postJSON(ctx, "/api/translate", req, &res); err != nil {
		return Result{}, err
	}
	return res, nil
}

// Detect identifies the language of the given text.
func (c *Client) Detect(ctx context.Context, text string) (Detection, error) {
	var det Detection
	if err := c.postJSON(ctx, "/api/detect", map[string]string{"text": text}, &det); err != nil {
		return Detection{}, err
	}
	return det, nil
}

// Languages returns the language codes the service supports.
func (c *Client) Languages(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/languages", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp)
	}

	var out struct {
		SupportedLanguages []string `json:"supported_languages"`
		TotalLanguages     int      `json:"total_languages"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return out.SupportedLanguages, nil
}

// Healthy reports whether the service is reachable and ready.
func (c *Client) Healthy(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	return resp.StatusCode == http.StatusOK
}

func (c *Client) postJSON(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return statusError(resp)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func statusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	op := errs.Op("translate: " + resp.Request.URL.Path)
	return errs.Status(op, resp.StatusCode, string(bytes.TrimSpace(body)))
}
