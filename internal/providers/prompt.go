package providers

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spacesedan/clinsight/internal/models"
)

// diagnosticInstructions is the one instruction template every provider is
// prompted with, so their outputs stay directly comparable.
const diagnosticInstructions = `You are a clinical decision-support assistant. You will receive the transcription of a patient consultation.

Review the transcription and respond with:
- At most 3 suggested diagnoses, most likely first.
- At most 5 recommended diagnostic tests.
- At most 5 treatment suggestions.
- One short follow-up recommendation.

### STRICT OUTPUT FORMAT
You MUST return only valid JSON, formatted exactly as follows:
{
  "suggested_diagnoses": ["XXX"],
  "recommended_tests": ["XXX"],
  "treatment_suggestions": ["XXX"],
  "follow_up_recommendations": "XXX"
}

### REQUIREMENTS
- No Markdown formatting (no triple backticks, no explanations).
- No extra text before or after the JSON output.
- No trailing commas in JSON objects or arrays.
- Never exceed the list limits above.
`

const (
	maxDiagnoses  = 3
	maxTests      = 5
	maxTreatments = 5
)

// cleanProviderResponse strips markdown fences and normalizes curly quotes
// that models sometimes emit despite the prompt.
func cleanProviderResponse(response string) string {
	response = strings.TrimSpace(response)

	response = strings.TrimPrefix(response, "```json")
	response = strings.TrimPrefix(response, "```")
	response = strings.TrimSuffix(response, "```")

	response = strings.ReplaceAll(response, "“", `"`) // Left curly quote
	response = strings.ReplaceAll(response, "”", `"`) // Right curly quote

	return strings.TrimSpace(response)
}

// parseSuggestion turns a raw completion into a validated suggestion. Any
// deviation from the expected shape is a shape ProviderError; partially
// populated results are never returned.
func parseSuggestion(provider, raw string) (models.DiagnosticSuggestion, error) {
	cleaned := cleanProviderResponse(raw)

	var suggestion models.DiagnosticSuggestion
	if err := json.Unmarshal([]byte(cleaned), &suggestion); err != nil {
		return models.DiagnosticSuggestion{}, &ProviderError{
			Provider: provider,
			Kind:     ErrorKindShape,
			Message:  "response is not valid suggestion JSON",
			Err:      err,
		}
	}

	if err := validateSuggestion(&suggestion); err != nil {
		return models.DiagnosticSuggestion{}, &ProviderError{
			Provider: provider,
			Kind:     ErrorKindShape,
			Message:  err.Error(),
		}
	}

	return suggestion, nil
}

func validateSuggestion(s *models.DiagnosticSuggestion) error {
	switch {
	case len(s.SuggestedDiagnoses) == 0:
		return fmt.Errorf("missing suggested_diagnoses")
	case len(s.SuggestedDiagnoses) > maxDiagnoses:
		return fmt.Errorf("suggested_diagnoses exceeds limit of %d", maxDiagnoses)
	case len(s.RecommendedTests) > maxTests:
		return fmt.Errorf("recommended_tests exceeds limit of %d", maxTests)
	case len(s.TreatmentSuggestions) > maxTreatments:
		return fmt.Errorf("treatment_suggestions exceeds limit of %d", maxTreatments)
	case strings.TrimSpace(s.FollowUpRecommendations) == "":
		return fmt.Errorf("missing follow_up_recommendations")
	}
	return nil
}
