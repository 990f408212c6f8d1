package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spacesedan/clinsight/internal/models"
)

const (
	// ProviderOllama is the locally reachable provider id.
	ProviderOllama = "ollama"

	defaultOllamaBaseURL = "http://localhost:11434"
	defaultOllamaModel   = "llama3.1"

	// Local inference can be slow on first load.
	ollamaRequestTimeout = 120 * time.Second
)

// OllamaProvider talks to a local Ollama instance over its chat API.
type OllamaProvider struct {
	baseURL string
	model   string
	client  *http.Client
}

// NewOllamaProvider builds the local provider from OLLAMA_BASE_URL and
// OLLAMA_MODEL, defaulting to the well-known local endpoint.
func NewOllamaProvider() *OllamaProvider {
	baseURL := os.Getenv("OLLAMA_BASE_URL")
	if baseURL == "" {
		baseURL = defaultOllamaBaseURL
	}
	model := os.Getenv("OLLAMA_MODEL")
	if model == "" {
		model = defaultOllamaModel
	}

	slog.Info("[OllamaProvider] Client initialized",
		slog.String("base_url", baseURL),
		slog.String("model", model))

	return &OllamaProvider{
		baseURL: baseURL,
		model:   model,
		client:  &http.Client{Timeout: ollamaRequestTimeout},
	}
}

func (p *OllamaProvider) Name() string {
	return ProviderOllama
}

// Available is always true: the endpoint is defaulted, so an unreachable
// instance surfaces as a transport error on the call itself.
func (p *OllamaProvider) Available() bool {
	return true
}

func (p *OllamaProvider) Diagnose(ctx context.Context, transcript string) (models.DiagnosticSuggestion, error) {
	body := map[string]interface{}{
		"model": p.model,
		"messages": []map[string]string{
			{"role": "system", "content": diagnosticInstructions},
			{"role": "user", "content": transcript},
		},
		"stream": false,
		"format": "json",
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return models.DiagnosticSuggestion{}, &ProviderError{
			Provider: ProviderOllama,
			Kind:     ErrorKindTransport,
			Message:  "failed to marshal request",
			Err:      err,
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/api/chat", bytes.NewReader(jsonBody))
	if err != nil {
		return models.DiagnosticSuggestion{}, &ProviderError{
			Provider: ProviderOllama,
			Kind:     ErrorKindTransport,
			Message:  "failed to build request",
			Err:      err,
		}
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := p.client.Do(req)
	if err != nil {
		slog.Warn("[OllamaProvider] Request failed",
			slog.Duration("elapsed", time.Since(start)),
			slog.String("error", err.Error()))
		return models.DiagnosticSuggestion{}, &ProviderError{
			Provider: ProviderOllama,
			Kind:     ErrorKindTransport,
			Message:  "request failed",
			Err:      err,
		}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.DiagnosticSuggestion{}, &ProviderError{
			Provider: ProviderOllama,
			Kind:     ErrorKindTransport,
			Message:  "failed to read response",
			Err:      err,
		}
	}

	if resp.StatusCode != http.StatusOK {
		slog.Warn("[OllamaProvider] Non-success status",
			slog.Int("status", resp.StatusCode),
			getPreview(respBody))
		return models.DiagnosticSuggestion{}, &ProviderError{
			Provider: ProviderOllama,
			Kind:     ErrorKindTransport,
			Message:  fmt.Sprintf("status code %d", resp.StatusCode),
		}
	}

	var result struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		Done bool `json:"done"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return models.DiagnosticSuggestion{}, &ProviderError{
			Provider: ProviderOllama,
			Kind:     ErrorKindShape,
			Message:  "failed to unmarshal chat response",
			Err:      err,
		}
	}

	slog.Info("[OllamaProvider] Completion received",
		slog.Duration("elapsed", time.Since(start)))
	return parseSuggestion(ProviderOllama, result.Message.Content)
}

func getPreview(respBody []byte) slog.Attr {
	raw := string(respBody)
	if len(raw) > 50 {
		raw = raw[:50]
	}
	return slog.String("raw_response", raw)
}
