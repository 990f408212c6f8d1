package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spacesedan/clinsight/internal/models"
)

func TestAnalyzeSemanticsThemes(t *testing.T) {
	text := "widespread pain with fatigue, nausea, insomnia, a bloated stomach and feeling dizzy"
	result := AnalyzeSemantics(text)

	assert.Equal(t, []string{
		"widespread pain",
		"fatigue",
		"nausea",
		"sleep disturbances",
		"gastrointestinal issues",
		"dizziness",
	}, result.KeyThemes)
}

func TestAnalyzeSemanticsNoThemes(t *testing.T) {
	result := AnalyzeSemantics("routine follow up, nothing new to report")

	assert.Empty(t, result.KeyThemes)
	assert.Equal(t, models.SeverityModerate, result.SymptomSeverity)
	assert.Equal(t, models.SeverityModerate, result.FunctionalImpact)
	assert.Equal(t, models.TemporalAcute, result.TemporalPatterns)
}

func TestAnalyzeSemanticsSeverity(t *testing.T) {
	moderate := AnalyzeSemantics("the pain has been severe at night")
	assert.Equal(t, models.SeverityModerate, moderate.SymptomSeverity)

	severe := AnalyzeSemantics("severe headaches and terrible back pain")
	assert.Equal(t, models.SeveritySevere, severe.SymptomSeverity)
}

func TestAnalyzeSemanticsFunctionalImpact(t *testing.T) {
	moderate := AnalyzeSemantics("it is difficult to climb stairs")
	assert.Equal(t, models.SeverityModerate, moderate.FunctionalImpact)

	severe := AnalyzeSemantics("I can't sleep and I am unable to work")
	assert.Equal(t, models.SeveritySevere, severe.FunctionalImpact)
}

func TestAnalyzeSemanticsTemporalPatterns(t *testing.T) {
	acute := AnalyzeSemantics("the symptoms started yesterday")
	assert.Equal(t, models.TemporalAcute, acute.TemporalPatterns)

	chronic := AnalyzeSemantics("I am constantly tired, this has been ongoing")
	assert.Equal(t, models.TemporalChronic, chronic.TemporalPatterns)
}
