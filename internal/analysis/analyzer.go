package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// EntityExtractor tags spans of free text with entity labels. Implemented by
// the NER collaborator client.
type EntityExtractor interface {
	ExtractEntities(ctx context.Context, text string) ([]Entity, error)
}

// SimilarityScorer measures semantic similarity between two texts on [-1,1].
// Implemented by the embedding collaborator client.
type SimilarityScorer interface {
	Similarity(ctx context.Context, textA, textB string) (float64, error)
}

// ErrCollaborator marks a failed external model call. A collaborator failure
// is fatal for the request; there is no degraded-mode report.
var ErrCollaborator = errors.New("collaborator unavailable")

// Input is one analysis request. Missing fields are treated as empty text,
// never as errors.
type Input struct {
	ResumeText string `json:"resumeText"`
	JobDesc    string `json:"jobDesc"`
	JobRole    string `json:"jobRole"`
}

// Analyzer runs the full signal-fusion pipeline. It holds no per-request
// state: the collaborators are long-lived, read-only handles shared across
// concurrent calls, and every Analyze invocation is a pure transform of its
// input.
type Analyzer struct {
	Entities   EntityExtractor
	Similarity SimilarityScorer
	Vocabulary []string
}

// NewAnalyzer constructs an Analyzer with the default skill vocabulary.
func NewAnalyzer(entities EntityExtractor, similarity SimilarityScorer) *Analyzer {
	return &Analyzer{
		Entities:   entities,
		Similarity: similarity,
		Vocabulary: DefaultVocabulary(),
	}
}

// Analyze produces the structured evaluation report for one request.
func (a *Analyzer) Analyze(ctx context.Context, in Input) (Report, error) {
	entities, err := a.Entities.ExtractEntities(ctx, in.ResumeText)
	if err != nil {
		return Report{}, fmt.Errorf("%w: extract entities: %v", ErrCollaborator, err)
	}
	summary := SummarizeEntities(entities)

	vocabulary := a.Vocabulary
	if len(vocabulary) == 0 {
		vocabulary = DefaultVocabulary()
	}
	vocabulary = MergeVocabulary(vocabulary, summary[SkillEntityType])

	resumeSkills := ExtractSkills(in.ResumeText, vocabulary)
	jdSkills := ExtractSkills(in.JobDesc, vocabulary)
	matched, missing := MatchSkills(jdSkills, resumeSkills)

	sections := DetectSections(in.ResumeText)
	grammar := CheckGrammar(in.ResumeText)
	fit := PredictFit(resumeSkills, in.JobRole)

	similarity, err := a.Similarity.Similarity(ctx, in.ResumeText, in.JobDesc)
	if err != nil {
		return Report{}, fmt.Errorf("%w: similarity: %v", ErrCollaborator, err)
	}
	// Scale and truncate toward zero, then clamp.
	atsScore := clampScore(int(similarity * 100))

	breakdown, narrative := Aggregate(in.ResumeText, matched, jdSkills, sections)
	wordCount := len(strings.Fields(in.ResumeText))
	suggestions := Suggest(missing, breakdown, sections, atsScore, wordCount)

	return Report{
		ATSScore:         atsScore,
		Issues:           len(missing),
		SkillsMatched:    matched,
		SkillsMissing:    missing,
		Entities:         summary,
		Breakdown:        breakdown,
		SectionsDetected: sections,
		NLPAnalysis:      narrative,
		FitPrediction:    fit,
		GrammarAnalysis:  GrammarFindings(grammar),
		Suggestions:      suggestions,
	}, nil
}
