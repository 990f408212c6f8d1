package analysis

import (
	"math"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/spacesedan/clinsight/internal/models"
	"github.com/spacesedan/clinsight/internal/taxonomy"
)

const maxTopKeywords = 10

var (
	patternLock  sync.Mutex
	termPatterns = make(map[string]*regexp.Regexp)
)

// termPattern returns a cached case-insensitive whole-word matcher for a
// taxonomy term.
func termPattern(term string) *regexp.Regexp {
	patternLock.Lock()
	defer patternLock.Unlock()

	if p, ok := termPatterns[term]; ok {
		return p
	}
	p := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(term) + `\b`)
	termPatterns[term] = p
	return p
}

// ExtractKeywords scans a transcript against the symptom taxonomy and
// returns per-term counts, the keyword density and the top matches.
// Deterministic and side-effect free.
func ExtractKeywords(text string) models.KeywordAnalysisResult {
	result, _ := extract(text)
	return result
}

// MatchedTerms returns every matched taxonomy term in the order it was first
// encountered during extraction.
func MatchedTerms(text string) []string {
	_, order := extract(text)
	return order
}

func extract(text string) (models.KeywordAnalysisResult, []string) {
	result := models.KeywordAnalysisResult{
		Matches:     make(map[string]models.KeywordMatch),
		TopKeywords: []models.KeywordMatch{},
	}

	result.TotalWords = len(strings.Fields(text))
	if result.TotalWords == 0 {
		return result, nil
	}

	var order []string
	var phraseSpans [][]int

	// Phrase pass: non-overlapping whole-word matches across the original
	// text. Spans are remembered so the word pass does not re-count tokens a
	// phrase already consumed.
	for _, category := range taxonomy.Categories {
		for _, phrase := range category.Phrases {
			spans := termPattern(phrase).FindAllStringIndex(text, -1)
			if len(spans) == 0 {
				continue
			}
			phraseSpans = append(phraseSpans, spans...)
			if _, seen := result.Matches[phrase]; seen {
				// duplicate registration: first category wins
				continue
			}
			order = append(order, phrase)
			result.Matches[phrase] = models.KeywordMatch{
				Term:     phrase,
				Count:    len(spans),
				Category: category.Name,
			}
		}
	}

	// Word pass: only occurrences outside every matched phrase span count,
	// so a standalone "pain" still registers when "chest pain" matched
	// elsewhere in the same transcript.
	for _, category := range taxonomy.Categories {
		for _, word := range category.Words {
			if _, seen := result.Matches[word]; seen {
				continue
			}
			var count int
			for _, span := range termPattern(word).FindAllStringIndex(text, -1) {
				if !insidePhrase(span, phraseSpans) {
					count++
				}
			}
			if count == 0 {
				continue
			}
			order = append(order, word)
			result.Matches[word] = models.KeywordMatch{
				Term:     word,
				Count:    count,
				Category: category.Name,
			}
		}
	}

	var matched int
	for _, m := range result.Matches {
		matched += m.Count
	}
	result.KeywordPercentage = math.Round(float64(matched)/float64(result.TotalWords)*1000) / 10
	result.TopKeywords = topKeywords(result.Matches, order)

	return result, order
}

func insidePhrase(span []int, phraseSpans [][]int) bool {
	for _, ps := range phraseSpans {
		if span[0] >= ps[0] && span[1] <= ps[1] {
			return true
		}
	}
	return false
}

// topKeywords orders matches by count descending, breaking ties by first
// encounter, and truncates to maxTopKeywords.
func topKeywords(matches map[string]models.KeywordMatch, order []string) []models.KeywordMatch {
	top := make([]models.KeywordMatch, 0, len(order))
	for _, term := range order {
		top = append(top, matches[term])
	}
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Count > top[j].Count
	})
	if len(top) > maxTopKeywords {
		top = top[:maxTopKeywords]
	}
	return top
}
