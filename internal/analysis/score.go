package analysis

import (
	"math"
	"strings"
)

// Finding is one entry of a narrative analysis block.
type Finding struct {
	Type  string `json:"type"`
	Title string `json:"title"`
	Desc  string `json:"desc"`
}

const (
	FindingSuccess = "success"
	FindingFail    = "fail"
)

// Breakdown is the four-way sub-score decomposition of the evaluation.
// Every field is clamped to [0,100].
type Breakdown struct {
	ToneAndStyle int `json:"toneAndStyle"`
	Content      int `json:"content"`
	Structure    int `json:"structure"`
	Skills       int `json:"skills"`
}

var toneKeywords = []string{"collaborate", "team", "drive", "lead", "initiative", "agile"}

var contentKeywords = []string{
	"increase", "reduce", "manage", "deliver", "optimize", "create", "build", "improve",
}

// keywordScore is the share of keywords present in text as a [0,100] score.
func keywordScore(text string, keywords []string) int {
	lower := strings.ToLower(text)
	present := 0
	for _, keyword := range keywords {
		if strings.Contains(lower, keyword) {
			present++
		}
	}
	total := len(keywords)
	if total < 1 {
		total = 1
	}
	return clampScore(int(math.Round(100 * float64(present) / float64(total))))
}

// SkillsScore is the matched share of the job description's skills. An empty
// job description scores 0 by definition rather than dividing by zero.
func SkillsScore(matched, jdSkills []string) int {
	if len(jdSkills) == 0 {
		return 0
	}
	return clampScore(int(math.Round(100 * float64(len(matched)) / float64(len(jdSkills)))))
}

// Aggregate fuses the extractor outputs into the sub-score breakdown and the
// narrative findings. Finding order is fixed: skills match, structure, tone,
// then a content finding that is only emitted on failure.
func Aggregate(resumeText string, matched, jdSkills, sections []string) (Breakdown, []Finding) {
	breakdown := Breakdown{
		ToneAndStyle: keywordScore(resumeText, toneKeywords),
		Content:      keywordScore(resumeText, contentKeywords),
		Structure:    StructureScore(sections),
		Skills:       SkillsScore(matched, jdSkills),
	}

	findings := make([]Finding, 0, 4)

	if len(matched) > 0 {
		findings = append(findings, Finding{
			Type:  FindingSuccess,
			Title: "Relevant Skills",
			Desc:  "Skills " + strings.Join(matched, ", ") + " match the job requirements.",
		})
	} else {
		findings = append(findings, Finding{
			Type:  FindingFail,
			Title: "Missing Key Technical Skills",
			Desc:  "No skills from your resume matched the job description. Please add relevant technical skills.",
		})
	}

	if breakdown.Structure > 80 {
		findings = append(findings, Finding{
			Type:  FindingSuccess,
			Title: "Resume Structure",
			Desc:  "Your resume is well-organized with most standard sections included.",
		})
	} else {
		findings = append(findings, Finding{
			Type:  FindingFail,
			Title: "Resume Structure Issues",
			Desc:  "Some important resume sections (Skills, Education, Projects, Experience) are missing or hard to find.",
		})
	}

	if breakdown.ToneAndStyle < 50 {
		findings = append(findings, Finding{
			Type:  FindingFail,
			Title: "Tone & Professionalism",
			Desc:  "The resume tone is too generic or vague. Add confident, energetic wording and avoid clichés.",
		})
	} else {
		findings = append(findings, Finding{
			Type:  FindingSuccess,
			Title: "Professional Tone",
			Desc:  "The resume tone is highly professional and fits industry standards.",
		})
	}

	if breakdown.Content < 50 {
		findings = append(findings, Finding{
			Type:  FindingFail,
			Title: "Achievements & Action Verbs",
			Desc:  "Add results, achievements (numbers), and use more action verbs for experience/projects.",
		})
	}

	return breakdown, findings
}
