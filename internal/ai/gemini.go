package ai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/krishimitra/krishi/internal/logger"
)

const (
	TextModel   = "gemini-2.5-flash"
	VisionModel = "gemini-2.5-pro"
)

// ErrEmptyResponse is returned when the model produced no text.
var ErrEmptyResponse = errors.New("ai: empty response")

// Gemini calls the Generative Language REST API.
type Gemini struct {
	client      *resty.Client
	textModel   string
	visionModel string
}

func NewGemini(baseURL, apiKey string, timeout time.Duration) *Gemini {
	c := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetHeader("x-goog-api-key", apiKey).
		SetTimeout(timeout)
	return &Gemini{client: c, textModel: TextModel, visionModel: VisionModel}
}

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generateRequest struct {
	SystemInstruction *content  `json:"systemInstruction,omitempty"`
	Contents          []content `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

func (g *Gemini) Ask(ctx context.Context, question, lang string) (string, error) {
	req := generateRequest{
		SystemInstruction: &content{Parts: []part{{Text: askPrompt(lang)}}},
		Contents:          []content{{Role: "user", Parts: []part{{Text: question}}}},
	}
	return g.generate(ctx, g.textModel, req)
}

func (g *Gemini) AnalyzeImage(ctx context.Context, image []byte, lang string) (string, error) {
	if len(image) == 0 {
		return "", errors.New("ai: empty image")
	}
	req := generateRequest{
		Contents: []content{{
			Role: "user",
			Parts: []part{
				{InlineData: &inlineData{MimeType: DetectMIME(image), Data: base64.StdEncoding.EncodeToString(image)}},
				{Text: diagnosisPrompt(lang)},
			},
		}},
	}
	return g.generate(ctx, g.visionModel, req)
}

func (g *Gemini) generate(ctx context.Context, model string, body generateRequest) (string, error) {
	start := time.Now()
	resp, err := g.client.R().
		SetContext(ctx).
		SetBody(body).
		Post(fmt.Sprintf("/v1beta/models/%s:generateContent", model))
	if err != nil {
		return "", fmt.Errorf("gemini request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("gemini status %d: %s", resp.StatusCode(), resp.String())
	}

	var out generateResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return "", fmt.Errorf("decode gemini response: %w", err)
	}

	var sb strings.Builder
	if len(out.Candidates) > 0 {
		for _, p := range out.Candidates[0].Content.Parts {
			sb.WriteString(p.Text)
		}
	}
	text := strings.TrimSpace(sb.String())
	logger.Debug("Gemini response", "model", model, "chars", len(text), "elapsed", time.Since(start))
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
