package main

// Run one analysis from the command line:
//   echo '{"resumeText":"...","jobDesc":"...","jobRole":"..."}' | go run ./cmd/analyze

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"resume-insight/internal/analysis"
	"resume-insight/internal/nlp"
	"resume-insight/internal/shared/config"
)

func main() {
	cfg := config.Load()

	var in analysis.Input
	if err := json.NewDecoder(os.Stdin).Decode(&in); err != nil {
		log.Fatalf("decode input: %v", err)
	}

	client, err := nlp.NewClient(cfg.NLPBaseURL, cfg.NLPTimeout)
	if err != nil {
		log.Fatalf("nlp client: %v", err)
	}

	engine := analysis.NewAnalyzer(client, client)
	if len(cfg.SkillVocabulary) > 0 {
		engine.Vocabulary = analysis.MergeVocabulary(engine.Vocabulary, cfg.SkillVocabulary)
	}

	report, err := engine.Analyze(context.Background(), in)
	if err != nil {
		log.Fatalf("analyze: %v", err)
	}

	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		log.Fatalf("encode report: %v", err)
	}
	fmt.Println(string(out))
}
