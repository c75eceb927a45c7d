package extraction

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"taxmate-backend/utils"
)

// ErrExtraction is the single user-facing failure of the extraction
// boundary. Technical detail goes to the log, never to the user.
var ErrExtraction = errors.New("문서를 분석하는 중 오류가 발생했습니다. 다시 시도해 주세요.")

// Extractor turns a document image into a loosely-typed payload.
type Extractor interface {
	Extract(ctx context.Context, image []byte, mimeType string) (*Payload, error)
}

// Client calls the Gemini generateContent REST endpoint.
type Client struct {
	HTTPClient *http.Client
	APIKey     string
	Model      string
	BaseURL    string
}

// NewClientFromEnv builds a Client from GEMINI_API_KEY / EXTRACTION_MODEL.
// Returns nil when no API key is configured (uploads are then rejected).
func NewClientFromEnv() *Client {
	key := os.Getenv("GEMINI_API_KEY")
	if key == "" {
		return nil
	}
	model := os.Getenv("EXTRACTION_MODEL")
	if model == "" {
		model = "gemini-2.0-flash"
	}
	return &Client{
		HTTPClient: &http.Client{Timeout: 60 * time.Second},
		APIKey:     key,
		Model:      model,
		BaseURL:    "https://generativelanguage.googleapis.com",
	}
}

type generateRequest struct {
	Contents          []content       `json:"contents"`
	SystemInstruction *content        `json:"systemInstruction,omitempty"`
	GenerationConfig  *generateConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"` // base64
}

type generateConfig struct {
	Temperature      float64 `json:"temperature"`
	ResponseMimeType string  `json:"responseMimeType,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Extract sends the image plus the extraction ruleset and returns the
// repaired, parsed payload. Any failure maps to ErrExtraction; no partial
// result is ever returned.
func (c *Client) Extract(ctx context.Context, image []byte, mimeType string) (*Payload, error) {
	reqBody := generateRequest{
		Contents: []content{{
			Parts: []part{
				{InlineData: &inlineData{
					MimeType: mimeType,
					Data:     base64.StdEncoding.EncodeToString(image),
				}},
				{Text: userPrompt},
			},
		}},
		SystemInstruction: &content{Parts: []part{{Text: systemPrompt}}},
		GenerationConfig: &generateConfig{
			Temperature:      0.1,
			ResponseMimeType: "application/json",
		},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		log.Printf("extraction: marshal request: %v", err)
		return nil, ErrExtraction
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.BaseURL, c.Model, c.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		log.Printf("extraction: build request: %v", err)
		return nil, ErrExtraction
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		log.Printf("extraction: call failed: %v", err)
		return nil, ErrExtraction
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("extraction: read response: %v", err)
		return nil, ErrExtraction
	}
	if resp.StatusCode != http.StatusOK {
		log.Printf("extraction: status %d: %s", resp.StatusCode, body)
		return nil, ErrExtraction
	}

	var gr generateResponse
	if err := json.Unmarshal(body, &gr); err != nil {
		log.Printf("extraction: decode envelope: %v", err)
		return nil, ErrExtraction
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		log.Printf("extraction: empty candidate in response")
		return nil, ErrExtraction
	}

	return ParseText(gr.Candidates[0].Content.Parts[0].Text)
}

// ParseText repairs and parses raw model output into a Payload. Exposed
// separately from the HTTP call so the repair path is testable offline.
func ParseText(text string) (*Payload, error) {
	repaired, err := utils.RepairJSON(text)
	if err != nil {
		log.Printf("extraction: json repair failed: %v", err)
		return nil, ErrExtraction
	}
	var p Payload
	if err := json.Unmarshal(repaired, &p); err != nil {
		log.Printf("extraction: payload decode failed: %v", err)
		return nil, ErrExtraction
	}
	return &p, nil
}
