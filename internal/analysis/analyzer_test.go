package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"
)

type stubExtractor struct {
	entities []Entity
	err      error
}

func (s stubExtractor) ExtractEntities(ctx context.Context, text string) ([]Entity, error) {
	return s.entities, s.err
}

type stubScorer struct {
	score float64
	err   error
}

func (s stubScorer) Similarity(ctx context.Context, a, b string) (float64, error) {
	return s.score, s.err
}

func newTestAnalyzer(entities []Entity, score float64) *Analyzer {
	return NewAnalyzer(stubExtractor{entities: entities}, stubScorer{score: score})
}

func TestAnalyzeFrontendScenario(t *testing.T) {
	analyzer := newTestAnalyzer(nil, 0.85)
	report, err := analyzer.Analyze(context.Background(), Input{
		ResumeText: "Skills: React and Redux. Built SPAs.",
		JobDesc:    "Looking for React experience and Docker knowledge.",
		JobRole:    "Frontend Developer",
	})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if want := []string{"React"}; !reflect.DeepEqual(report.SkillsMatched, want) {
		t.Fatalf("skillsMatched = %v, want %v", report.SkillsMatched, want)
	}
	if want := []string{"Docker"}; !reflect.DeepEqual(report.SkillsMissing, want) {
		t.Fatalf("skillsMissing = %v, want %v", report.SkillsMissing, want)
	}
	if report.Issues != 1 {
		t.Fatalf("issues = %d, want 1", report.Issues)
	}
	if report.ATSScore != 85 {
		t.Fatalf("atsScore = %d, want 85", report.ATSScore)
	}
	if report.FitPrediction.Roles[0] != "Frontend Intern" {
		t.Fatalf("roles = %v", report.FitPrediction.Roles)
	}
	if report.FitPrediction.ExperienceLevel != LevelIntern {
		t.Fatalf("level = %q, want Intern", report.FitPrediction.ExperienceLevel)
	}
}

func TestAnalyzeEmptyJobDescription(t *testing.T) {
	analyzer := newTestAnalyzer(nil, 0.2)
	report, err := analyzer.Analyze(context.Background(), Input{
		ResumeText: "Skills: React. Experience with Docker.",
	})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(report.SkillsMissing) != 0 {
		t.Fatalf("skillsMissing = %v, want empty", report.SkillsMissing)
	}
	if report.Breakdown.Skills != 0 {
		t.Fatalf("skills score = %d, want 0", report.Breakdown.Skills)
	}
	if report.Issues != 0 {
		t.Fatalf("issues = %d, want 0", report.Issues)
	}
}

func TestAnalyzeScoresClamped(t *testing.T) {
	cases := []struct {
		similarity float64
		want       int
	}{
		{1.5, 100},
		{1.0, 100},
		{0.856, 85}, // truncated, not rounded
		{0.0, 0},
		{-0.4, 0},
	}
	for _, tc := range cases {
		analyzer := newTestAnalyzer(nil, tc.similarity)
		report, err := analyzer.Analyze(context.Background(), Input{ResumeText: "x", JobDesc: "y"})
		if err != nil {
			t.Fatalf("Analyze: %v", err)
		}
		if report.ATSScore != tc.want {
			t.Fatalf("atsScore(%v) = %d, want %d", tc.similarity, report.ATSScore, tc.want)
		}
	}
}

func TestAnalyzeEntitiesExtendVocabulary(t *testing.T) {
	entities := []Entity{
		{Type: SkillEntityType, Span: "GraphQL"},
		{Type: "TITLE", Span: "Engineer"},
	}
	analyzer := newTestAnalyzer(entities, 0.5)
	report, err := analyzer.Analyze(context.Background(), Input{
		ResumeText: "Worked with GraphQL APIs.",
		JobDesc:    "Must know GraphQL.",
	})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if want := []string{"GraphQL"}; !reflect.DeepEqual(report.SkillsMatched, want) {
		t.Fatalf("skillsMatched = %v, want %v", report.SkillsMatched, want)
	}
	if want := []string{"GraphQL"}; !reflect.DeepEqual(report.Entities[SkillEntityType], want) {
		t.Fatalf("entities = %v", report.Entities)
	}
	if want := []string{"Engineer"}; !reflect.DeepEqual(report.Entities["TITLE"], want) {
		t.Fatalf("entity passthrough lost: %v", report.Entities)
	}
}

func TestAnalyzeDeterministicOutput(t *testing.T) {
	analyzer := newTestAnalyzer([]Entity{{Type: SkillEntityType, Span: "Terraform"}}, 0.42)
	in := Input{
		ResumeText: "Summary. Skills: React, Redux, Terraform. I lead while working.",
		JobDesc:    "React, Docker, Terraform, CI/CD.",
		JobRole:    "Platform Engineer",
	}

	first, err := analyzer.Analyze(context.Background(), in)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	second, err := analyzer.Analyze(context.Background(), in)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	firstJSON, err := json.Marshal(first)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	secondJSON, err := json.Marshal(second)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !bytes.Equal(firstJSON, secondJSON) {
		t.Fatalf("reports differ across runs:\n%s\n%s", firstJSON, secondJSON)
	}
}

func TestAnalyzePunctuationFinding(t *testing.T) {
	analyzer := newTestAnalyzer(nil, 0.9)
	report, err := analyzer.Analyze(context.Background(), Input{
		ResumeText: "resume without any terminal punctuation",
	})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	var found bool
	for _, f := range report.GrammarAnalysis {
		if f.Title == "Formatting/Punctuation" && f.Type == FindingFail {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected punctuation fail finding, got %v", report.GrammarAnalysis)
	}
}

func TestAnalyzeLongResumeSuggestionOrder(t *testing.T) {
	resume := strings.Repeat("word ", 650) + "React."
	analyzer := newTestAnalyzer(nil, 0.3)
	report, err := analyzer.Analyze(context.Background(), Input{
		ResumeText: resume,
		JobDesc:    "React and Docker.",
	})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	last := report.Suggestions[len(report.Suggestions)-1]
	if last.Action != ActionShortenResume {
		t.Fatalf("shorten-resume must come last, got %v", report.Suggestions)
	}
	for _, s := range report.Suggestions[:len(report.Suggestions)-1] {
		if s.Action == ActionShortenResume {
			t.Fatalf("duplicate shorten-resume: %v", report.Suggestions)
		}
	}
}

func TestAnalyzeCollaboratorFailureIsFatal(t *testing.T) {
	boom := errors.New("model offline")

	entityFail := NewAnalyzer(stubExtractor{err: boom}, stubScorer{score: 0.5})
	if _, err := entityFail.Analyze(context.Background(), Input{ResumeText: "x"}); !errors.Is(err, ErrCollaborator) {
		t.Fatalf("expected ErrCollaborator, got %v", err)
	}

	scorerFail := NewAnalyzer(stubExtractor{}, stubScorer{err: boom})
	if _, err := scorerFail.Analyze(context.Background(), Input{ResumeText: "x"}); !errors.Is(err, ErrCollaborator) {
		t.Fatalf("expected ErrCollaborator, got %v", err)
	}
}

func TestAnalyzeEmptyInputs(t *testing.T) {
	analyzer := newTestAnalyzer(nil, 0)
	report, err := analyzer.Analyze(context.Background(), Input{})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if report.ATSScore != 0 || report.Issues != 0 {
		t.Fatalf("unexpected report %+v", report)
	}
	if len(report.SkillsMatched) != 0 || len(report.SkillsMissing) != 0 {
		t.Fatalf("expected empty skill sets, got %+v", report)
	}
	// Empty text still produces the full narrative blocks.
	if len(report.NLPAnalysis) == 0 || len(report.GrammarAnalysis) == 0 {
		t.Fatalf("narrative blocks missing: %+v", report)
	}
}
