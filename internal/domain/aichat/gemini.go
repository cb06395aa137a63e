package aichat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

const systemPrompt = "You are FitZone's friendly gym assistant. Answer questions about memberships, " +
	"class schedules, trainers, workouts and nutrition in a short, encouraging tone. " +
	"Do not give medical diagnoses; suggest consulting a professional for injuries or health conditions."

// Generator produces a reply for the conversation.
type Generator interface {
	Generate(ctx context.Context, history []Turn, message string) (string, error)
}

type GeminiClient struct {
	apiKey  string
	model   string
	baseURL string
	http    *http.Client
}

func NewGeminiClient(apiKey, model, baseURL string, timeout time.Duration) *GeminiClient {
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com/v1beta"
	}
	return &GeminiClient{
		apiKey:  apiKey,
		model:   model,
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generateRequest struct {
	SystemInstruction content   `json:"systemInstruction"`
	Contents          []content `json:"contents"`
	GenerationConfig  struct {
		Temperature     float64 `json:"temperature"`
		MaxOutputTokens int     `json:"maxOutputTokens"`
	} `json:"generationConfig"`
}

func (g *GeminiClient) Generate(ctx context.Context, history []Turn, message string) (string, error) {
	body := generateRequest{
		SystemInstruction: content{Parts: []part{{Text: systemPrompt}}},
	}
	body.GenerationConfig.Temperature = 0.7
	body.GenerationConfig.MaxOutputTokens = 512
	for _, t := range history {
		role := "user"
		if t.Role != "user" {
			role = "model"
		}
		body.Contents = append(body.Contents, content{Role: role, Parts: []part{{Text: t.Content}}})
	}
	body.Contents = append(body.Contents, content{Role: "user", Parts: []part{{Text: message}}})

	raw, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	// never put the key in the URL; *url.Error quotes it
	endpoint := fmt.Sprintf("%s/models/%s:generateContent", g.baseURL, url.PathEscape(g.model))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(raw))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.apiKey)

	res, err := g.http.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return "", err
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return "", fmt.Errorf("gemini generateContent failed: %s (%d)", gjson.GetBytes(resBody, "error.message").String(), res.StatusCode)
	}

	var sb strings.Builder
	for _, t := range gjson.GetBytes(resBody, "candidates.0.content.parts.#.text").Array() {
		sb.WriteString(t.String())
	}
	return strings.TrimSpace(sb.String()), nil
}
