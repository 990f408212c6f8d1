package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractKeywordsEmptyText(t *testing.T) {
	result := ExtractKeywords("")

	assert.Equal(t, 0, result.TotalWords)
	assert.Empty(t, result.Matches)
	assert.Equal(t, 0.0, result.KeywordPercentage)
	assert.Empty(t, result.TopKeywords)
}

func TestExtractKeywordsNoMatches(t *testing.T) {
	result := ExtractKeywords("the weather was lovely on the drive over")

	assert.Equal(t, 8, result.TotalWords)
	assert.Empty(t, result.Matches)
	assert.Equal(t, 0.0, result.KeywordPercentage)
	assert.Empty(t, result.TopKeywords)
}

func TestExtractKeywordsPhraseAndStandaloneWord(t *testing.T) {
	result := ExtractKeywords("chest pain and shortness of breath, severe pain")

	require.Contains(t, result.Matches, "chest pain")
	assert.Equal(t, 1, result.Matches["chest pain"].Count)
	assert.Equal(t, "pain", result.Matches["chest pain"].Category)

	require.Contains(t, result.Matches, "shortness of breath")
	assert.Equal(t, 1, result.Matches["shortness of breath"].Count)

	// Only the standalone "pain" in "severe pain" counts; the one inside
	// the matched phrase "chest pain" does not.
	require.Contains(t, result.Matches, "pain")
	assert.Equal(t, 1, result.Matches["pain"].Count)
}

func TestExtractKeywordsPhraseSuppressesConstituentWords(t *testing.T) {
	result := ExtractKeywords("patient reports chest pain")

	require.Contains(t, result.Matches, "chest pain")
	assert.NotContains(t, result.Matches, "pain")
}

func TestExtractKeywordsCaseInsensitive(t *testing.T) {
	result := ExtractKeywords("Chest Pain and NAUSEA")

	assert.Contains(t, result.Matches, "chest pain")
	assert.Contains(t, result.Matches, "nausea")
}

func TestKeywordPercentageBounds(t *testing.T) {
	texts := []string{
		"",
		"pain",
		"pain pain pain pain",
		"chest pain nausea fatigue dizziness insomnia",
		"no symptoms mentioned here at all",
	}
	for _, text := range texts {
		result := ExtractKeywords(text)
		assert.GreaterOrEqual(t, result.KeywordPercentage, 0.0, "text: %q", text)
		assert.LessOrEqual(t, result.KeywordPercentage, 100.0, "text: %q", text)
	}
}

func TestKeywordPercentageRounding(t *testing.T) {
	// 3 matched terms over 8 tokens = 37.5%
	result := ExtractKeywords("chest pain and shortness of breath, severe pain")
	assert.Equal(t, 37.5, result.KeywordPercentage)
}

func TestTopKeywordsOrderingAndTruncation(t *testing.T) {
	text := strings.Join([]string{
		"pain pain pain",
		"nausea nausea",
		"fatigue dizzy insomnia cough fever chills headache numbness tingling",
	}, " ")
	result := ExtractKeywords(text)

	require.NotEmpty(t, result.TopKeywords)
	assert.LessOrEqual(t, len(result.TopKeywords), 10)
	for i := 1; i < len(result.TopKeywords); i++ {
		assert.GreaterOrEqual(t, result.TopKeywords[i-1].Count, result.TopKeywords[i].Count)
	}
	assert.Equal(t, "pain", result.TopKeywords[0].Term)
	assert.Equal(t, "nausea", result.TopKeywords[1].Term)
}

func TestTopKeywordsTieBreakByFirstEncounter(t *testing.T) {
	// Both count 1; nausea's category is scanned before fatigue's.
	result := ExtractKeywords("fatigue and nausea")

	require.Len(t, result.TopKeywords, 2)
	assert.Equal(t, "nausea", result.TopKeywords[0].Term)
	assert.Equal(t, "fatigue", result.TopKeywords[1].Term)
}

func TestMatchedTermsEncounterOrder(t *testing.T) {
	terms := MatchedTerms("chest pain and constant nausea with fatigue")

	assert.Equal(t, []string{"chest pain", "nausea", "fatigue"}, terms)
}
