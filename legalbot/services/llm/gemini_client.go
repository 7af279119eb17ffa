package llm

import (
	"context"
	"fmt"

	"legalbot/legalbot/config"
	httputils "legalbot/legalbot/utils/http"
	"legalbot/legalbot/utils/logging"
)

// InlineData carries a base64 binary part (images, PDFs).
type InlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

// Part is one piece of a content entry: text or inline binary.
type Part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *InlineData `json:"inlineData,omitempty"`
}

// Content is one role-tagged turn sent to the generation endpoint.
// Role is "user" or "model".
type Content struct {
	Role  string `json:"role"`
	Parts []Part `json:"parts"`
}

func TextContent(role, text string) Content {
	return Content{Role: role, Parts: []Part{{Text: text}}}
}

// FallbackReply is returned when the endpoint answers with no usable
// candidate. Callers use it to detect that generation effectively failed.
const FallbackReply = "Sorry, I could not get a response."

type generateRequest struct {
	Contents []Content `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

type GeminiClient struct {
	apiKey  string
	baseURL string
	model   string
}

func NewGeminiClient(cfg config.Config) (*GeminiClient, error) {
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("missing GEMINI_API_KEY")
	}
	return &GeminiClient{
		apiKey:  cfg.GeminiAPIKey,
		baseURL: cfg.GeminiBaseURL,
		model:   cfg.GeminiModel,
	}, nil
}

// Generate sends the assembled contents in a single synchronous request and
// returns the first text part of the first candidate. A transport or HTTP
// failure is an error; a response with no usable candidate yields
// FallbackReply instead.
func (c *GeminiClient) Generate(ctx context.Context, contents []Content) (string, error) {
	defer logging.LogDuration(ctx, "gemini_generate")()

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)

	var parsed generateResponse
	if err := httputils.PostJSON(ctx, url, generateRequest{Contents: contents}, &parsed); err != nil {
		return "", fmt.Errorf("generation request failed: %w", err)
	}

	if len(parsed.Candidates) > 0 {
		for _, part := range parsed.Candidates[0].Content.Parts {
			if part.Text != "" {
				return part.Text, nil
			}
		}
	}
	return FallbackReply, nil
}
