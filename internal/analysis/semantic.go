package analysis

import (
	"github.com/spacesedan/clinsight/internal/models"
)

var (
	severityWords   = []string{"severe", "extreme", "terrible", "unbearable"}
	functionalWords = []string{"can't", "unable", "difficult", "hard"}
	chronicityWords = []string{"constantly", "always", "chronic", "ongoing"}
)

// themeTriggers are checked in order; each theme is appended at most once.
var themeTriggers = []struct {
	theme string
	terms []string
}{
	{"fatigue", []string{"fatigue"}},
	{"nausea", []string{"nausea"}},
	{"sleep disturbances", []string{"sleep", "insomnia"}},
	{"gastrointestinal issues", []string{"stomach", "bloated"}},
	{"dizziness", []string{"dizzy", "dizziness"}},
}

// AnalyzeSemantics derives coarse themes plus severity, functional-impact and
// temporal tags from a transcript. Synchronous and pure.
func AnalyzeSemantics(text string) models.SemanticAnalysisResult {
	keywords := ExtractKeywords(text)

	themes := []string{}
	if matchesCategory(keywords, "pain") {
		themes = append(themes, "widespread pain")
	}
	for _, trigger := range themeTriggers {
		for _, term := range trigger.terms {
			if _, ok := keywords.Matches[term]; ok {
				themes = append(themes, trigger.theme)
				break
			}
		}
	}

	result := models.SemanticAnalysisResult{
		KeyThemes:        themes,
		SymptomSeverity:  models.SeverityModerate,
		FunctionalImpact: models.SeverityModerate,
		TemporalPatterns: models.TemporalAcute,
	}

	if countOccurrences(text, severityWords) >= 2 {
		result.SymptomSeverity = models.SeveritySevere
	}
	if countOccurrences(text, functionalWords) >= 2 {
		result.FunctionalImpact = models.SeveritySevere
	}
	if countOccurrences(text, chronicityWords) > 0 {
		result.TemporalPatterns = models.TemporalChronic
	}

	return result
}

func matchesCategory(keywords models.KeywordAnalysisResult, category string) bool {
	for _, m := range keywords.Matches {
		if m.Category == category {
			return true
		}
	}
	return false
}

// countOccurrences sums case-insensitive whole-word matches across the word
// list.
func countOccurrences(text string, words []string) int {
	var total int
	for _, word := range words {
		total += len(termPattern(word).FindAllStringIndex(text, -1))
	}
	return total
}
