package consensus

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacesedan/clinsight/internal/models"
	"github.com/spacesedan/clinsight/internal/sentiment"
)

// testBuilder routes the classifier to its rule-based fallback by making the
// model directory impossible to create.
func testBuilder(t *testing.T) *Builder {
	t.Helper()
	t.Setenv("SENTIMENT_MODEL_DIR", "/dev/null/nope")
	return NewWithClassifier(sentiment.NewClassifier())
}

func suggestionFrom(provider string) *models.DiagnosticSuggestion {
	return &models.DiagnosticSuggestion{
		SuggestedDiagnoses:      []string{provider + " diagnosis"},
		RecommendedTests:        []string{"complete blood count"},
		TreatmentSuggestions:    []string{"physical therapy"},
		FollowUpRecommendations: "Follow up in two weeks.",
	}
}

func TestBuildNilWhenAllProvidersFail(t *testing.T) {
	comparison := models.ComparisonResult{
		Outcomes: map[string]models.ProviderOutcome{
			"openai": {Error: "timeout"},
			"ollama": {Error: "connection refused"},
		},
	}

	result := testBuilder(t).Build(context.Background(), comparison, "chest pain")

	assert.Nil(t, result)
}

func TestBuildPrefersHostedProvider(t *testing.T) {
	comparison := models.ComparisonResult{
		Outcomes: map[string]models.ProviderOutcome{
			"openai": {Suggestion: suggestionFrom("openai")},
			"ollama": {Suggestion: suggestionFrom("ollama")},
		},
	}

	result := testBuilder(t).Build(context.Background(), comparison, "chest pain")

	require.NotNil(t, result)
	assert.Equal(t, []string{"openai diagnosis"}, result.AIAssessment.SuggestedDiagnoses)
	assert.Equal(t, "Based on 2 AI model(s): openai, ollama", result.AIAssessment.ConsensusNote)
}

func TestBuildFallsBackToLocalProvider(t *testing.T) {
	comparison := models.ComparisonResult{
		Outcomes: map[string]models.ProviderOutcome{
			"openai": {Error: "api key not configured"},
			"ollama": {Suggestion: suggestionFrom("ollama")},
		},
	}

	result := testBuilder(t).Build(context.Background(), comparison, "chest pain")

	require.NotNil(t, result)
	assert.Equal(t, []string{"ollama diagnosis"}, result.AIAssessment.SuggestedDiagnoses)
	assert.Equal(t, "Based on 1 AI model(s): ollama", result.AIAssessment.ConsensusNote)
}

func TestBuildRunsLocalAnalyses(t *testing.T) {
	comparison := models.ComparisonResult{
		Outcomes: map[string]models.ProviderOutcome{
			"ollama": {Suggestion: suggestionFrom("ollama")},
		},
	}
	transcript := "severe chest pain and terrible fatigue, I am unable to work and constantly tired"

	result := testBuilder(t).Build(context.Background(), comparison, transcript)

	require.NotNil(t, result)

	assert.Contains(t, result.KeywordAnalysis.Matches, "chest pain")
	assert.Contains(t, result.KeywordAnalysis.Matches, "fatigue")
	assert.Greater(t, result.KeywordAnalysis.KeywordPercentage, 0.0)

	assert.Equal(t, models.AnalysisTypeRuleBasedFallback, result.SentimentAnalysis.AnalysisType)
	assert.Equal(t, models.SentimentNegative, result.SentimentAnalysis.OverallSentiment)

	assert.Contains(t, result.SemanticAnalysis.KeyThemes, "fatigue")
	assert.Equal(t, models.SeveritySevere, result.SemanticAnalysis.SymptomSeverity)
	assert.Equal(t, models.TemporalChronic, result.SemanticAnalysis.TemporalPatterns)
}

func TestSuccessfulProvidersOrdering(t *testing.T) {
	b := testBuilder(t)
	comparison := models.ComparisonResult{
		Outcomes: map[string]models.ProviderOutcome{
			"zeta-lab": {Suggestion: suggestionFrom("zeta-lab")},
			"ollama":   {Suggestion: suggestionFrom("ollama")},
			"anthro":   {Suggestion: suggestionFrom("anthro")},
			"openai":   {Error: "down"},
		},
	}

	// Known providers first by priority, then unknown ones alphabetically.
	assert.Equal(t, []string{"ollama", "anthro", "zeta-lab"}, b.successfulProviders(comparison))
}
