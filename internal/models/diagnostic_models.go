package models

// DiagnosticSuggestion is the provider-agnostic diagnostic shape every
// provider must return: at most 3 diagnoses, 5 tests, 5 treatments and a
// single follow-up string.
type DiagnosticSuggestion struct {
	SuggestedDiagnoses      []string `json:"suggested_diagnoses"`
	RecommendedTests        []string `json:"recommended_tests"`
	TreatmentSuggestions    []string `json:"treatment_suggestions"`
	FollowUpRecommendations string   `json:"follow_up_recommendations"`
}

const (
	StatusRunning  = "running"
	StatusComplete = "complete"
	StatusError    = "error"
)

// ProviderOutcome is the settled result of one provider call: exactly one of
// Suggestion or Error is populated.
type ProviderOutcome struct {
	Suggestion *DiagnosticSuggestion `json:"suggestion,omitempty"`
	Error      string                `json:"error,omitempty"`
}

// Succeeded reports whether the provider returned a valid suggestion.
func (o ProviderOutcome) Succeeded() bool {
	return o.Suggestion != nil
}

// ComparisonResult holds one outcome per configured provider for a single
// analysis request.
type ComparisonResult struct {
	Outcomes map[string]ProviderOutcome `json:"outcomes"`
}

// SuccessCount returns how many providers produced a suggestion.
func (c ComparisonResult) SuccessCount() int {
	var n int
	for _, outcome := range c.Outcomes {
		if outcome.Succeeded() {
			n++
		}
	}
	return n
}

// AIAssessment is the base provider's suggestion plus a note naming every
// provider that contributed.
type AIAssessment struct {
	DiagnosticSuggestion
	ConsensusNote string `json:"consensus_note"`
}

// ConsensusResult is the reconciled diagnostic-support bundle for one
// transcript. A nil *ConsensusResult means every provider failed.
type ConsensusResult struct {
	KeywordAnalysis   KeywordAnalysisResult  `json:"keyword_analysis"`
	SentimentAnalysis SentimentResult        `json:"sentiment_analysis"`
	SemanticAnalysis  SemanticAnalysisResult `json:"semantic_analysis"`
	AIAssessment      AIAssessment           `json:"ai_assessment"`
}
