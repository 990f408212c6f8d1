package orchestrator

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/spacesedan/clinsight/internal/models"
	"github.com/spacesedan/clinsight/internal/providers"
)

// ProgressFunc receives per-provider lifecycle transitions. For one provider
// the events are strictly ordered running -> complete|error; events from
// different providers interleave by completion time, so the sink must be
// safe for concurrent use.
type ProgressFunc func(providerID, status string)

// Orchestrator fans a transcript out to every configured provider.
type Orchestrator struct {
	providers []providers.DiagnosticProvider
}

// New returns an orchestrator over the given providers.
func New(provs ...providers.DiagnosticProvider) *Orchestrator {
	return &Orchestrator{providers: provs}
}

// CompareAll calls every provider concurrently and settles each branch into
// its own outcome slot: one provider's latency or failure never delays or
// aborts another, and no failure propagates. The returned comparison always
// holds exactly one outcome per configured provider.
func (o *Orchestrator) CompareAll(ctx context.Context, transcript string, onProgress ProgressFunc) models.ComparisonResult {
	if onProgress == nil {
		onProgress = func(string, string) {}
	}

	result := models.ComparisonResult{
		Outcomes: make(map[string]models.ProviderOutcome, len(o.providers)),
	}

	var mu sync.Mutex
	var wg sync.WaitGroup

	slog.Info("[Orchestrator] Starting provider comparison",
		slog.Int("providers", len(o.providers)))

	for _, provider := range o.providers {
		wg.Add(1)
		go func(p providers.DiagnosticProvider) {
			defer wg.Done()

			onProgress(p.Name(), models.StatusRunning)
			start := time.Now()

			suggestion, err := p.Diagnose(ctx, transcript)
			if err != nil {
				slog.Warn("[Orchestrator] Provider failed",
					slog.String("provider", p.Name()),
					slog.Duration("elapsed", time.Since(start)),
					slog.String("error", err.Error()))
				mu.Lock()
				result.Outcomes[p.Name()] = models.ProviderOutcome{Error: err.Error()}
				mu.Unlock()
				onProgress(p.Name(), models.StatusError)
				return
			}

			slog.Info("[Orchestrator] Provider completed",
				slog.String("provider", p.Name()),
				slog.Duration("elapsed", time.Since(start)))
			mu.Lock()
			result.Outcomes[p.Name()] = models.ProviderOutcome{Suggestion: &suggestion}
			mu.Unlock()
			onProgress(p.Name(), models.StatusComplete)
		}(provider)
	}

	wg.Wait()

	slog.Info("[Orchestrator] Provider comparison finished",
		slog.Int("succeeded", result.SuccessCount()),
		slog.Int("failed", len(result.Outcomes)-result.SuccessCount()))
	return result
}
