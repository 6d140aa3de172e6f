package analysis

import "strings"

// Suggestion is one actionable improvement with a fixed action tag.
type Suggestion struct {
	Desc   string `json:"desc"`
	Action string `json:"action"`
}

const (
	ActionHighlightSkills     = "highlight-skills"
	ActionImproveAchievements = "improve-achievements"
	ActionAddSkillsSection    = "add-skills-section"
	ActionImproveATS          = "improve-ats"
	ActionShortenResume       = "shorten-resume"
)

// suggestionInput carries everything the suggestion rules inspect.
type suggestionInput struct {
	missing   []string
	breakdown Breakdown
	sections  []string
	atsScore  int
	wordCount int
}

// suggestionRule is one entry of the suggestion cascade. Unlike the role
// cascade, every matching rule fires; output order equals rule order and is
// presentation-significant.
type suggestionRule struct {
	matches func(suggestionInput) bool
	build   func(suggestionInput) Suggestion
}

var suggestionRules = []suggestionRule{
	{
		matches: func(in suggestionInput) bool { return len(in.missing) > 0 },
		build: func(in suggestionInput) Suggestion {
			return Suggestion{
				Desc:   "Add these missing skills: " + strings.Join(in.missing, ", "),
				Action: ActionHighlightSkills,
			}
		},
	},
	{
		matches: func(in suggestionInput) bool { return in.breakdown.Content < 50 },
		build: func(suggestionInput) Suggestion {
			return Suggestion{
				Desc:   "Add 2–3 measurable achievements to each job/project. Use numbers if possible.",
				Action: ActionImproveAchievements,
			}
		},
	},
	{
		matches: func(in suggestionInput) bool { return !containsString(in.sections, "Skills") },
		build: func(suggestionInput) Suggestion {
			return Suggestion{
				Desc:   "Create a clear 'Skills' section and add all technologies/tools relevant to the role.",
				Action: ActionAddSkillsSection,
			}
		},
	},
	{
		matches: func(in suggestionInput) bool { return in.atsScore < 70 },
		build: func(suggestionInput) Suggestion {
			return Suggestion{
				Desc:   "Improve ATS score by adding keywords, removing tables/images, using simple formatting.",
				Action: ActionImproveATS,
			}
		},
	},
	{
		matches: func(in suggestionInput) bool { return in.wordCount > 600 },
		build: func(suggestionInput) Suggestion {
			return Suggestion{
				Desc:   "Resume should be max 1 page if you have < 3 years experience.",
				Action: ActionShortenResume,
			}
		},
	},
}

// Suggest evaluates the suggestion rules in order and collects every match.
func Suggest(missing []string, breakdown Breakdown, sections []string, atsScore, wordCount int) []Suggestion {
	in := suggestionInput{
		missing:   missing,
		breakdown: breakdown,
		sections:  sections,
		atsScore:  atsScore,
		wordCount: wordCount,
	}
	out := make([]Suggestion, 0, len(suggestionRules))
	for _, rule := range suggestionRules {
		if rule.matches(in) {
			out = append(out, rule.build(in))
		}
	}
	return out
}

func containsString(items []string, target string) bool {
	for _, item := range items {
		if item == target {
			return true
		}
	}
	return false
}
