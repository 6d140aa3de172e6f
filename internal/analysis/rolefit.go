package analysis

import "strings"

// FitPrediction is the rule-based role, level and industry classification.
type FitPrediction struct {
	Roles           []string `json:"roles"`
	ExperienceLevel string   `json:"experienceLevel"`
	IndustryFit     string   `json:"industryFit"`
}

const (
	LevelIntern = "Intern"
	LevelJunior = "Junior"

	IndustryIT          = "IT"
	IndustryDataScience = "Data Science"
	IndustryDevOps      = "DevOps"
	IndustryDesign      = "Design"
)

// roleRule is one entry of the primary prediction cascade. Rules are
// evaluated in order and the first match wins. juniorAt is the skill count
// at which the level moves from Intern to Junior.
type roleRule struct {
	anyOf    []string
	roles    []string
	juniorAt int
	industry string
}

var roleRules = []roleRule{
	{
		anyOf:    []string{"react", "node.js", "redux"},
		roles:    []string{"Frontend Intern", "Junior React Developer", "UI Developer"},
		juniorAt: 4,
		industry: IndustryIT,
	},
	{
		anyOf:    []string{"flask", "python", "mongo"},
		roles:    []string{"Backend Intern", "Python Developer", "Data Engineer"},
		juniorAt: 5,
		industry: IndustryDataScience,
	},
	{
		anyOf:    []string{"devops", "docker", "ci/cd"},
		roles:    []string{"DevOps Intern", "Junior DevOps"},
		juniorAt: 3,
		industry: IndustryDevOps,
	},
}

// PredictFit classifies a skill set and target role into candidate roles, an
// experience level and an industry. The primary cascade is first-match-wins
// with an explicit Frontend Intern fallback; the designer override then
// stacks on top of whatever the primary phase produced.
func PredictFit(skills []string, jobRole string) FitPrediction {
	skillSet := make(map[string]struct{}, len(skills))
	for _, skill := range skills {
		skillSet[strings.ToLower(skill)] = struct{}{}
	}

	pred := FitPrediction{
		Roles:           []string{"Frontend Intern"},
		ExperienceLevel: LevelIntern,
		IndustryFit:     IndustryIT,
	}
	for _, rule := range roleRules {
		if !setContainsAny(skillSet, rule.anyOf) {
			continue
		}
		pred.Roles = append([]string(nil), rule.roles...)
		pred.IndustryFit = rule.industry
		if len(skills) >= rule.juniorAt {
			pred.ExperienceLevel = LevelJunior
		}
		break
	}

	role := strings.ToLower(jobRole)
	if strings.Contains(role, "design") || strings.Contains(role, "ux") ||
		setContainsAny(skillSet, []string{"design", "ui"}) {
		pred.Roles = append(pred.Roles, "UI/UX Designer")
		pred.IndustryFit = IndustryDesign
	}

	return pred
}

func setContainsAny(set map[string]struct{}, keys []string) bool {
	for _, key := range keys {
		if _, ok := set[key]; ok {
			return true
		}
	}
	return false
}
