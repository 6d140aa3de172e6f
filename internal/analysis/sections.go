package analysis

import (
	"math"
	"strings"
)

const sectionCount = 12

// sectionKeywords is the fixed section vocabulary. Detection reports the
// capitalized form, in this order.
var sectionKeywords = []string{
	"summary", "contact", "education", "skills", "projects", "experience",
	"certificates", "objective", "achievements", "activities", "languages",
	"hobbies",
}

// DetectSections returns the canonical section names whose keyword appears
// anywhere in the text, case-insensitively.
func DetectSections(text string) []string {
	lower := strings.ToLower(text)
	found := make([]string, 0, len(sectionKeywords))
	for _, keyword := range sectionKeywords {
		if strings.Contains(lower, keyword) {
			found = append(found, capitalize(keyword))
		}
	}
	return found
}

// StructureScore maps detected sections to a [0,100] score against the fixed
// 12-entry vocabulary.
func StructureScore(sections []string) int {
	return clampScore(int(math.Round(100 * float64(len(sections)) / sectionCount)))
}

func capitalize(word string) string {
	if word == "" {
		return word
	}
	return strings.ToUpper(word[:1]) + word[1:]
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
