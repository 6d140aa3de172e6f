package analysis

// Entity is one span tagged by the external entity extractor.
type Entity struct {
	Type string `json:"entityType"`
	Span string `json:"span"`
}

// EntitySummary groups extracted spans by entity type. It is produced by the
// collaborator and passed through to the report unmodified.
type EntitySummary map[string][]string

// SkillEntityType is the entity label whose spans seed the skill vocabulary.
const SkillEntityType = "SKILL"

// SummarizeEntities folds a tagged span sequence into a per-type summary,
// preserving span order within each type.
func SummarizeEntities(entities []Entity) EntitySummary {
	summary := make(EntitySummary)
	for _, entity := range entities {
		summary[entity.Type] = append(summary[entity.Type], entity.Span)
	}
	return summary
}

// Report is the complete evaluation of one resume against one job
// description. Field names are the service's wire contract.
type Report struct {
	ATSScore         int           `json:"atsScore"`
	Issues           int           `json:"issues"`
	SkillsMatched    []string      `json:"skillsMatched"`
	SkillsMissing    []string      `json:"skillsMissing"`
	Entities         EntitySummary `json:"entities"`
	Breakdown        Breakdown     `json:"breakdown"`
	SectionsDetected []string      `json:"sectionsDetected"`
	NLPAnalysis      []Finding     `json:"nlpAnalysis"`
	FitPrediction    FitPrediction `json:"fitPrediction"`
	GrammarAnalysis  []Finding     `json:"grammarAnalysis"`
	Suggestions      []Suggestion  `json:"suggestions"`
}
