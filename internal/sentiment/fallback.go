package sentiment

import (
	"math"
	"regexp"
	"strings"

	"github.com/jonreiter/govader"

	"github.com/spacesedan/clinsight/internal/analysis"
	"github.com/spacesedan/clinsight/internal/models"
)

var (
	negativePattern = wordSetPattern(
		"pain", "bad", "worse", "worst", "terrible", "awful", "severe",
		"uncomfortable", "sick", "tired", "weak",
	)
	positivePattern = wordSetPattern(
		"better", "good", "improving", "improved", "well", "fine",
		"relief", "stronger",
	)
	distressPattern = wordSetPattern(
		"unbearable", "excruciating", "emergency", "severe", "extreme",
		"terrible",
	)

	vaderAnalyzer = govader.NewSentimentIntensityAnalyzer()
)

func wordSetPattern(words ...string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b(?:` + strings.Join(words, "|") + `)\b`)
}

// classifyFallback is the deterministic rule-based path used whenever the
// primary model is unavailable or fails. Pure text scanning; cannot fail.
func classifyFallback(text string) models.SentimentResult {
	plain := NormalizeTranscript(text)

	negative := len(negativePattern.FindAllStringIndex(plain, -1))
	positive := len(positivePattern.FindAllStringIndex(plain, -1))
	distress := len(distressPattern.FindAllStringIndex(plain, -1))

	denominator := positive + negative
	if denominator < 1 {
		denominator = 1
	}
	score := float64(positive-negative) / float64(denominator)

	overall := models.SentimentNeutral
	switch {
	case score > 0.2:
		overall = models.SentimentPositive
	case score < -0.2:
		overall = models.SentimentNegative
	}

	level := models.DistressLow
	switch {
	case distress > 2:
		level = models.DistressHigh
	case distress > 0:
		level = models.DistressMedium
	}

	indicators := analysis.MatchedTerms(text)
	if len(indicators) > maxIndicators {
		indicators = indicators[:maxIndicators]
	}
	if indicators == nil {
		indicators = []string{}
	}

	// VADER lends the fallback a confidence figure; the score itself stays
	// on the word-count rule above.
	compound := vaderAnalyzer.PolarityScores(plain).Compound

	return models.SentimentResult{
		OverallSentiment:    overall,
		SentimentScore:      score,
		DistressLevel:       level,
		EmotionalIndicators: indicators,
		AnalysisType:        models.AnalysisTypeRuleBasedFallback,
		Confidence:          math.Round(math.Abs(compound)*1000) / 10,
	}
}
