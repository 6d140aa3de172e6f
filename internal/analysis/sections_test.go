package analysis

import (
	"reflect"
	"strings"
	"testing"
)

func TestDetectSectionsAllTwelve(t *testing.T) {
	text := strings.Join([]string{
		"Summary", "Contact", "Education", "Skills", "Projects", "Experience",
		"Certificates", "Objective", "Achievements", "Activities", "Languages", "Hobbies",
	}, "\n")

	sections := DetectSections(text)
	if len(sections) != 12 {
		t.Fatalf("expected 12 sections, got %d: %v", len(sections), sections)
	}
	if got := StructureScore(sections); got != 100 {
		t.Fatalf("StructureScore = %d, want 100", got)
	}
}

func TestDetectSectionsKeywordOrder(t *testing.T) {
	// Output order follows the fixed keyword vocabulary, not text order.
	text := "Hobbies first, then my Education, finally a Summary."
	got := DetectSections(text)
	want := []string{"Summary", "Education", "Hobbies"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("DetectSections = %v, want %v", got, want)
	}
}

func TestDetectSectionsEmptyText(t *testing.T) {
	sections := DetectSections("")
	if len(sections) != 0 {
		t.Fatalf("expected no sections, got %v", sections)
	}
	if got := StructureScore(sections); got != 0 {
		t.Fatalf("StructureScore = %d, want 0", got)
	}
}

func TestStructureScoreRounding(t *testing.T) {
	cases := []struct {
		count int
		want  int
	}{
		{0, 0},
		{1, 8},
		{5, 42},
		{6, 50},
		{11, 92},
		{12, 100},
	}
	for _, tc := range cases {
		sections := make([]string, tc.count)
		if got := StructureScore(sections); got != tc.want {
			t.Fatalf("StructureScore(%d sections) = %d, want %d", tc.count, got, tc.want)
		}
	}
}
