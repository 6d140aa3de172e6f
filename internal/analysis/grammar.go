package analysis

import (
	"regexp"
	"strings"
)

// GrammarReport holds the findings of the three grammar heuristics. All
// lists empty means the text passed every check.
type GrammarReport struct {
	SpellingErrors    []string `json:"spellingErrors"`
	TenseIssues       []string `json:"tenseIssues"`
	PunctuationIssues []string `json:"punctuationIssues"`
}

// Clean reports whether no heuristic fired.
func (r GrammarReport) Clean() bool {
	return len(r.SpellingErrors) == 0 && len(r.TenseIssues) == 0 && len(r.PunctuationIssues) == 0
}

var commonMisspellings = []string{
	"expereince", "proffesional", "recieve", "acheive", "teh", "enviroment",
}

var baseFormVerbs = regexp.MustCompile(`\b(build|create|lead)\b`)

var continuousForms = []string{"working", "creating", "leading"}

const (
	tenseMismatchFinding = "Tense mismatch between action verbs."
	missingPeriodFinding = "Missing sentence-ending punctuation."
)

// CheckGrammar runs three independent deterministic checks: known
// misspellings, a base-form/continuous-form co-occurrence heuristic for
// tense, and a terminal-punctuation check. None of this is real grammar
// analysis; each check is a fixed heuristic.
func CheckGrammar(text string) GrammarReport {
	lower := strings.ToLower(text)
	report := GrammarReport{
		SpellingErrors:    []string{},
		TenseIssues:       []string{},
		PunctuationIssues: []string{},
	}

	for _, word := range commonMisspellings {
		if strings.Contains(lower, word) {
			report.SpellingErrors = append(report.SpellingErrors, word)
		}
	}

	if baseFormVerbs.MatchString(lower) && containsAny(lower, continuousForms) {
		report.TenseIssues = append(report.TenseIssues, tenseMismatchFinding)
	}

	if !strings.Contains(strings.TrimSpace(text), ".") {
		report.PunctuationIssues = append(report.PunctuationIssues, missingPeriodFinding)
	}

	return report
}

// GrammarFindings renders a grammar report as narrative findings, one fail
// entry per non-empty list, or a single success entry for a clean report.
func GrammarFindings(report GrammarReport) []Finding {
	if report.Clean() {
		return []Finding{{
			Type:  FindingSuccess,
			Title: "Grammar & Spelling",
			Desc:  "No major grammar or spelling issues detected.",
		}}
	}
	findings := make([]Finding, 0, 3)
	if len(report.SpellingErrors) > 0 {
		findings = append(findings, Finding{
			Type:  FindingFail,
			Title: "Spelling Issues",
			Desc:  "Check spelling for: " + strings.Join(report.SpellingErrors, ", "),
		})
	}
	if len(report.TenseIssues) > 0 {
		findings = append(findings, Finding{
			Type:  FindingFail,
			Title: "Verb/Tense Issues",
			Desc:  strings.Join(report.TenseIssues, ", "),
		})
	}
	if len(report.PunctuationIssues) > 0 {
		findings = append(findings, Finding{
			Type:  FindingFail,
			Title: "Formatting/Punctuation",
			Desc:  strings.Join(report.PunctuationIssues, ", "),
		})
	}
	return findings
}

func containsAny(text string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(text, needle) {
			return true
		}
	}
	return false
}
