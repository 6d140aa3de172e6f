package analysis

import "strings"

// ExtractSkills returns the vocabulary entries that appear in text, in
// vocabulary order and vocabulary casing. Matching is case-insensitive
// substring containment: "Java" matches inside "JavaScript". That
// over-matching is a deliberate property of the scoring calibration, not a
// bug; do not tighten it to word boundaries.
func ExtractSkills(text string, vocabulary []string) []string {
	lower := strings.ToLower(text)
	found := make([]string, 0, len(vocabulary))
	for _, skill := range vocabulary {
		if skill == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(skill)) {
			found = append(found, skill)
		}
	}
	return found
}

// MatchSkills splits jdSkills into the entries the resume also has and the
// entries it lacks. Both results keep jdSkills order and are always disjoint.
func MatchSkills(jdSkills, resumeSkills []string) (matched, missing []string) {
	have := make(map[string]struct{}, len(resumeSkills))
	for _, skill := range resumeSkills {
		have[strings.ToLower(skill)] = struct{}{}
	}
	matched = make([]string, 0, len(jdSkills))
	missing = make([]string, 0, len(jdSkills))
	for _, skill := range jdSkills {
		if _, ok := have[strings.ToLower(skill)]; ok {
			matched = append(matched, skill)
		} else {
			missing = append(missing, skill)
		}
	}
	return matched, missing
}
