package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/Rajeshwar-203/fitness-ai-backend/apperrors"
	"github.com/Rajeshwar-203/fitness-ai-backend/config"
)

// TextGenerator turns a prompt into free text.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Configured() bool
}

// NewTextGenerator returns the generator named by cfg.Provider.
func NewTextGenerator(cfg config.AIConfig) (TextGenerator, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", "gemini":
		return NewGeminiService(cfg), nil
	}
	return nil, fmt.Errorf("unsupported ai provider %q", cfg.Provider)
}

type GeminiService struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

func NewGeminiService(cfg config.AIConfig) *GeminiService {
	return &GeminiService{
		apiKey:  cfg.GeminiAPIKey,
		model:   cfg.Model,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  &http.Client{Timeout: cfg.Timeout},
	}
}

func (gs *GeminiService) Configured() bool {
	return gs.apiKey != ""
}

// Generate sends a single-turn prompt and returns the first candidate's text.
func (gs *GeminiService) Generate(ctx context.Context, prompt string) (string, error) {
	if !gs.Configured() {
		return "", apperrors.ProviderUnavailable("AI provider is not configured", nil)
	}

	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	})
	if err != nil {
		return "", apperrors.Internal("failed to encode provider request", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", gs.baseURL, gs.model, gs.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", apperrors.Internal("failed to build provider request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := gs.client.Do(req)
	if err != nil {
		return "", apperrors.ProviderUnavailable("AI provider request failed", redactKey(err, gs.apiKey))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apperrors.ProviderUnavailable("failed to read provider response", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", apperrors.ProviderUnavailable("AI provider returned an error",
			fmt.Errorf("status %d: %s", resp.StatusCode, preview(string(raw))))
	}

	var parsed geminiResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", apperrors.ProviderUnavailable("AI provider returned an unreadable response", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", apperrors.ProviderUnavailable("AI provider returned no candidates", nil)
	}

	var sb strings.Builder
	for _, part := range parsed.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	return sb.String(), nil
}

// redactKey strips the API key out of url errors.
func redactKey(err error, key string) error {
	if key == "" {
		return err
	}
	return errors.New(strings.ReplaceAll(err.Error(), key, "REDACTED"))
}
