package orchestrator

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacesedan/clinsight/internal/models"
)

// stubProvider lets tests script one provider branch.
type stubProvider struct {
	name       string
	suggestion models.DiagnosticSuggestion
	err        error
	delay      time.Duration
}

func (s *stubProvider) Name() string    { return s.name }
func (s *stubProvider) Available() bool { return true }

func (s *stubProvider) Diagnose(ctx context.Context, transcript string) (models.DiagnosticSuggestion, error) {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return models.DiagnosticSuggestion{}, ctx.Err()
		}
	}
	if s.err != nil {
		return models.DiagnosticSuggestion{}, s.err
	}
	return s.suggestion, nil
}

func workingProvider(name string) *stubProvider {
	return &stubProvider{
		name: name,
		suggestion: models.DiagnosticSuggestion{
			SuggestedDiagnoses:      []string{"fibromyalgia"},
			FollowUpRecommendations: "Follow up in two weeks.",
		},
	}
}

func failingProvider(name string) *stubProvider {
	return &stubProvider{name: name, err: errors.New(name + " is down")}
}

func TestCompareAllAllSucceed(t *testing.T) {
	orch := New(workingProvider("openai"), workingProvider("ollama"))

	result := orch.CompareAll(context.Background(), "transcript", nil)

	require.Len(t, result.Outcomes, 2)
	assert.True(t, result.Outcomes["openai"].Succeeded())
	assert.True(t, result.Outcomes["ollama"].Succeeded())
	assert.Equal(t, 2, result.SuccessCount())
}

func TestCompareAllOneFails(t *testing.T) {
	orch := New(workingProvider("openai"), failingProvider("ollama"))

	result := orch.CompareAll(context.Background(), "transcript", nil)

	require.Len(t, result.Outcomes, 2)
	assert.True(t, result.Outcomes["openai"].Succeeded())
	assert.False(t, result.Outcomes["ollama"].Succeeded())
	assert.Equal(t, "ollama is down", result.Outcomes["ollama"].Error)
	assert.Equal(t, 1, result.SuccessCount())
}

func TestCompareAllAllFail(t *testing.T) {
	orch := New(failingProvider("openai"), failingProvider("ollama"))

	result := orch.CompareAll(context.Background(), "transcript", nil)

	require.Len(t, result.Outcomes, 2)
	assert.Equal(t, 0, result.SuccessCount())
	for name, outcome := range result.Outcomes {
		assert.Nil(t, outcome.Suggestion, "provider %s", name)
		assert.NotEmpty(t, outcome.Error, "provider %s", name)
	}
}

func TestCompareAllSlowProviderDoesNotLoseFastOne(t *testing.T) {
	slow := workingProvider("ollama")
	slow.delay = 100 * time.Millisecond
	orch := New(workingProvider("openai"), slow)

	result := orch.CompareAll(context.Background(), "transcript", nil)

	assert.Equal(t, 2, result.SuccessCount())
}

func TestCompareAllProgressSequencePerProvider(t *testing.T) {
	orch := New(workingProvider("openai"), failingProvider("ollama"))

	var mu sync.Mutex
	events := make(map[string][]string)
	orch.CompareAll(context.Background(), "transcript", func(providerID, status string) {
		mu.Lock()
		defer mu.Unlock()
		events[providerID] = append(events[providerID], status)
	})

	assert.Equal(t, []string{models.StatusRunning, models.StatusComplete}, events["openai"])
	assert.Equal(t, []string{models.StatusRunning, models.StatusError}, events["ollama"])
}

func TestCompareAllNilProgressSink(t *testing.T) {
	orch := New(workingProvider("openai"))

	assert.NotPanics(t, func() {
		orch.CompareAll(context.Background(), "transcript", nil)
	})
}

func TestCompareAllNoProviders(t *testing.T) {
	result := New().CompareAll(context.Background(), "transcript", nil)

	assert.Empty(t, result.Outcomes)
	assert.Equal(t, 0, result.SuccessCount())
}
