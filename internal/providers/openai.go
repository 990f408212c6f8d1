package providers

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/spacesedan/clinsight/internal/models"
)

const (
	// ProviderOpenAI is the hosted provider id.
	ProviderOpenAI = "openai"

	openAIRequestTimeout = 60 * time.Second
)

// OpenAIProvider is the hosted diagnostic provider. A missing API key makes
// every call fail fast with a configuration error; no request is attempted.
type OpenAIProvider struct {
	apiKey string
	client *openai.Client
}

// NewOpenAIProvider builds the hosted provider from OPENAI_API_KEY.
func NewOpenAIProvider() *OpenAIProvider {
	apiKey := os.Getenv("OPENAI_API_KEY")
	p := &OpenAIProvider{apiKey: apiKey}
	if apiKey == "" {
		slog.Warn("[OpenAIProvider] Missing OPENAI_API_KEY, provider will fail fast")
		return p
	}

	p.client = openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(&http.Client{Timeout: openAIRequestTimeout}),
	)
	slog.Info("[OpenAIProvider] Client initialized",
		slog.Duration("timeout", openAIRequestTimeout))
	return p
}

func (p *OpenAIProvider) Name() string {
	return ProviderOpenAI
}

func (p *OpenAIProvider) Available() bool {
	return p.apiKey != ""
}

// Diagnose issues a single chat completion; retries are the orchestrator's
// concern, and it performs none.
func (p *OpenAIProvider) Diagnose(ctx context.Context, transcript string) (models.DiagnosticSuggestion, error) {
	if !p.Available() {
		return models.DiagnosticSuggestion{}, &ProviderError{
			Provider: ProviderOpenAI,
			Kind:     ErrorKindConfiguration,
			Message:  "missing OPENAI_API_KEY",
		}
	}

	start := time.Now()
	chat, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: openai.F([]openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(diagnosticInstructions),
			openai.UserMessage(transcript),
		}),
		Model:       openai.F(openai.ChatModelGPT4oMini),
		Temperature: openai.Float(0.2),
	})
	if err != nil {
		slog.Warn("[OpenAIProvider] Completion request failed",
			slog.Duration("elapsed", time.Since(start)),
			slog.String("error", err.Error()))
		return models.DiagnosticSuggestion{}, &ProviderError{
			Provider: ProviderOpenAI,
			Kind:     ErrorKindTransport,
			Message:  "completion request failed",
			Err:      err,
		}
	}

	if len(chat.Choices) == 0 || strings.TrimSpace(chat.Choices[0].Message.Content) == "" {
		return models.DiagnosticSuggestion{}, &ProviderError{
			Provider: ProviderOpenAI,
			Kind:     ErrorKindShape,
			Message:  "empty completion",
		}
	}

	slog.Info("[OpenAIProvider] Completion received",
		slog.Duration("elapsed", time.Since(start)))
	return parseSuggestion(ProviderOpenAI, chat.Choices[0].Message.Content)
}
