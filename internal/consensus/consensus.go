package consensus

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/spacesedan/clinsight/internal/analysis"
	"github.com/spacesedan/clinsight/internal/models"
	"github.com/spacesedan/clinsight/internal/providers"
	"github.com/spacesedan/clinsight/internal/sentiment"
)

// Builder reconciles provider outcomes with the local text analyses. The
// base suggestion comes from the highest-priority provider that succeeded;
// the hosted provider always outranks the local one.
type Builder struct {
	classifier *sentiment.Classifier
	priority   []string
}

// New returns a builder using the process-wide sentiment classifier.
func New() *Builder {
	return NewWithClassifier(sentiment.Default())
}

// NewWithClassifier returns a builder with an explicit classifier instance.
func NewWithClassifier(classifier *sentiment.Classifier) *Builder {
	return &Builder{
		classifier: classifier,
		priority:   []string{providers.ProviderOpenAI, providers.ProviderOllama},
	}
}

// Build returns the reconciled bundle, or nil iff every provider failed.
// Callers must treat nil as the all-providers-failed terminal condition.
func (b *Builder) Build(ctx context.Context, comparison models.ComparisonResult, transcript string) *models.ConsensusResult {
	succeeded := b.successfulProviders(comparison)
	if len(succeeded) == 0 {
		slog.Warn("[ConsensusBuilder] All providers failed, no consensus possible")
		return nil
	}

	base := comparison.Outcomes[succeeded[0]].Suggestion

	// The local analyses are independent of each other and of the provider
	// results; run them together.
	var (
		wg              sync.WaitGroup
		keywordResult   models.KeywordAnalysisResult
		sentimentResult models.SentimentResult
		semanticResult  models.SemanticAnalysisResult
	)
	wg.Add(3)
	go func() {
		defer wg.Done()
		keywordResult = analysis.ExtractKeywords(transcript)
	}()
	go func() {
		defer wg.Done()
		sentimentResult = b.classifier.Classify(ctx, transcript)
	}()
	go func() {
		defer wg.Done()
		semanticResult = analysis.AnalyzeSemantics(transcript)
	}()
	wg.Wait()

	note := fmt.Sprintf("Based on %d AI model(s): %s",
		len(succeeded), strings.Join(succeeded, ", "))

	slog.Info("[ConsensusBuilder] Consensus assembled",
		slog.String("base_provider", succeeded[0]),
		slog.Int("contributing", len(succeeded)))

	return &models.ConsensusResult{
		KeywordAnalysis:   keywordResult,
		SentimentAnalysis: sentimentResult,
		SemanticAnalysis:  semanticResult,
		AIAssessment: models.AIAssessment{
			DiagnosticSuggestion: *base,
			ConsensusNote:        note,
		},
	}
}

// successfulProviders lists every provider that produced a suggestion, in
// fixed priority order so the first entry is the base provider.
func (b *Builder) successfulProviders(comparison models.ComparisonResult) []string {
	var succeeded []string
	for _, id := range b.priority {
		if outcome, ok := comparison.Outcomes[id]; ok && outcome.Succeeded() {
			succeeded = append(succeeded, id)
		}
	}
	// Providers outside the known priority list still contribute, after it.
	var extras []string
	for id, outcome := range comparison.Outcomes {
		if outcome.Succeeded() && !contains(b.priority, id) {
			extras = append(extras, id)
		}
	}
	sort.Strings(extras)
	return append(succeeded, extras...)
}

func contains(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
