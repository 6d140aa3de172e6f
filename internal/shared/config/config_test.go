package config

import (
	"reflect"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"ENV", "PORT", "OBJECT_STORE", "NLP_BASE_URL", "NLP_TIMEOUT_SECONDS", "SKILL_VOCABULARY", "RI_SQS_QUEUE_URL"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.Env != "dev" {
		t.Fatalf("Env = %q, want dev", cfg.Env)
	}
	if cfg.ObjectStoreType != "local" {
		t.Fatalf("ObjectStoreType = %q, want local", cfg.ObjectStoreType)
	}
	if cfg.NLPBaseURL != "http://localhost:5001" {
		t.Fatalf("NLPBaseURL = %q", cfg.NLPBaseURL)
	}
	if cfg.NLPTimeout != 30*time.Second {
		t.Fatalf("NLPTimeout = %v, want 30s", cfg.NLPTimeout)
	}
	if len(cfg.SkillVocabulary) != 0 {
		t.Fatalf("SkillVocabulary = %v, want empty", cfg.SkillVocabulary)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ENV", "Prod")
	t.Setenv("OBJECT_STORE", "S3")
	t.Setenv("NLP_TIMEOUT_SECONDS", "5")
	t.Setenv("SKILL_VOCABULARY", "Rust, Zig ,Go")
	t.Setenv("RI_SQS_QUEUE_URL", "https://sqs.us-east-1.amazonaws.com/123/analysis-jobs")

	cfg := Load()
	if cfg.Env != "production" {
		t.Fatalf("Env = %q, want production", cfg.Env)
	}
	if cfg.ObjectStoreType != "s3" {
		t.Fatalf("ObjectStoreType = %q, want s3", cfg.ObjectStoreType)
	}
	if cfg.NLPTimeout != 5*time.Second {
		t.Fatalf("NLPTimeout = %v, want 5s", cfg.NLPTimeout)
	}
	if want := []string{"Rust", "Zig", "Go"}; !reflect.DeepEqual(cfg.SkillVocabulary, want) {
		t.Fatalf("SkillVocabulary = %v, want %v", cfg.SkillVocabulary, want)
	}
	if cfg.QueueURL == "" {
		t.Fatalf("expected QueueURL to be set")
	}
}

func TestEnvSecondsInvalidFallsBack(t *testing.T) {
	t.Setenv("NLP_TIMEOUT_SECONDS", "not-a-number")
	if got := envSeconds("NLP_TIMEOUT_SECONDS", 30*time.Second); got != 30*time.Second {
		t.Fatalf("envSeconds = %v, want 30s", got)
	}
	t.Setenv("NLP_TIMEOUT_SECONDS", "-2")
	if got := envSeconds("NLP_TIMEOUT_SECONDS", 30*time.Second); got != 30*time.Second {
		t.Fatalf("envSeconds = %v, want 30s", got)
	}
}

func TestSplitAndTrim(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{" , ,", nil},
		{"a,b , c", []string{"a", "b", "c"}},
	}
	for _, tc := range cases {
		if got := splitAndTrim(tc.in); !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("splitAndTrim(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
