package models

// KeywordMatch is a single matched taxonomy term (phrase or word).
type KeywordMatch struct {
	Term     string `json:"term"`
	Count    int    `json:"count"`
	Category string `json:"category"`
}

// KeywordAnalysisResult holds the lexical signal extracted from a transcript.
type KeywordAnalysisResult struct {
	TotalWords        int                     `json:"total_words"`
	Matches           map[string]KeywordMatch `json:"matches"`
	KeywordPercentage float64                 `json:"keyword_percentage"`
	TopKeywords       []KeywordMatch          `json:"top_keywords"`
}

const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"

	DistressLow    = "low"
	DistressMedium = "medium"
	DistressHigh   = "high"

	AnalysisTypePrimaryModel      = "primary_model"
	AnalysisTypeRuleBasedFallback = "rule_based_fallback"
)

// SentimentResult is the polarity/distress signal for one transcript.
// Confidence is 0-100 and only set when the scoring path produced one.
type SentimentResult struct {
	OverallSentiment    string   `json:"overall_sentiment"`
	SentimentScore      float64  `json:"sentiment_score"`
	DistressLevel       string   `json:"distress_level"`
	EmotionalIndicators []string `json:"emotional_indicators"`
	AnalysisType        string   `json:"analysis_type"`
	Confidence          float64  `json:"confidence,omitempty"`
	Model               string   `json:"model,omitempty"`
}

const (
	SeverityModerate = "moderate"
	SeveritySevere   = "severe"

	TemporalAcute   = "acute"
	TemporalChronic = "chronic"
)

// SemanticAnalysisResult holds coarse themes and severity/impact/temporal tags.
type SemanticAnalysisResult struct {
	KeyThemes        []string `json:"key_themes"`
	SymptomSeverity  string   `json:"symptom_severity"`
	FunctionalImpact string   `json:"functional_impact"`
	TemporalPatterns string   `json:"temporal_patterns"`
}
