package analysis

import "strings"

// defaultVocabulary lists the canonical skills the extractor knows about.
// Order is significant: extracted skill lists follow vocabulary order so
// reports are reproducible run to run.
var defaultVocabulary = []string{
	"React", "Node.js", "REST", "Docker", "CI/CD", "Python", "Java", "AWS",
	"TypeScript", "C++", "SQL", "Redux", "Kubernetes", "Git", "HTML", "CSS",
	"JavaScript", "MongoDB", "Firebase", "Express", "Flask", "Tailwind", "SASS",
}

// DefaultVocabulary returns a copy of the built-in skill vocabulary.
func DefaultVocabulary() []string {
	return append([]string(nil), defaultVocabulary...)
}

// MergeVocabulary unions extra entries into base, preserving base order first
// and first-seen order of extras after. Identity is case-insensitive; the
// first casing seen wins.
func MergeVocabulary(base []string, extra []string) []string {
	seen := make(map[string]struct{}, len(base)+len(extra))
	out := make([]string, 0, len(base)+len(extra))
	for _, entry := range base {
		key := strings.ToLower(strings.TrimSpace(entry))
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, entry)
	}
	for _, entry := range extra {
		trimmed := strings.TrimSpace(entry)
		key := strings.ToLower(trimmed)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, trimmed)
	}
	return out
}
