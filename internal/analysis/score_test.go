package analysis

import "testing"

func TestKeywordScoreRounding(t *testing.T) {
	// 1 of 6 tone keywords: 16.67 rounds to 17.
	if got := keywordScore("we collaborate daily", toneKeywords); got != 17 {
		t.Fatalf("keywordScore = %d, want 17", got)
	}
	// 3 of 8 content keywords: 37.5 rounds to 38.
	if got := keywordScore("increase, reduce, manage", contentKeywords); got != 38 {
		t.Fatalf("keywordScore = %d, want 38", got)
	}
	if got := keywordScore("", toneKeywords); got != 0 {
		t.Fatalf("keywordScore(empty) = %d, want 0", got)
	}
}

func TestSkillsScoreEmptyJobDescription(t *testing.T) {
	if got := SkillsScore(nil, nil); got != 0 {
		t.Fatalf("SkillsScore = %d, want 0 for empty jd", got)
	}
}

func TestSkillsScoreShare(t *testing.T) {
	cases := []struct {
		matched int
		jd      int
		want    int
	}{
		{0, 3, 0},
		{1, 3, 33},
		{2, 3, 67},
		{3, 3, 100},
	}
	for _, tc := range cases {
		matched := make([]string, tc.matched)
		jd := make([]string, tc.jd)
		if got := SkillsScore(matched, jd); got != tc.want {
			t.Fatalf("SkillsScore(%d/%d) = %d, want %d", tc.matched, tc.jd, got, tc.want)
		}
	}
}

func TestAggregateFindingOrder(t *testing.T) {
	resume := "Skills: React. Education, Projects, Experience, Summary, Contact, " +
		"Certificates, Objective, Achievements, Activities, Languages, Hobbies. " +
		"I collaborate with my team, drive initiatives, lead agile delivery. " +
		"Managed to increase and improve results."

	breakdown, findings := Aggregate(resume, []string{"React"}, []string{"React"}, DetectSections(resume))

	if breakdown.Skills != 100 {
		t.Fatalf("skills = %d, want 100", breakdown.Skills)
	}
	if breakdown.Structure != 100 {
		t.Fatalf("structure = %d, want 100", breakdown.Structure)
	}

	if len(findings) < 3 {
		t.Fatalf("expected at least 3 findings, got %v", findings)
	}
	if findings[0].Title != "Relevant Skills" || findings[0].Type != FindingSuccess {
		t.Fatalf("finding[0] = %+v", findings[0])
	}
	if findings[1].Title != "Resume Structure" || findings[1].Type != FindingSuccess {
		t.Fatalf("finding[1] = %+v", findings[1])
	}
	if findings[2].Title != "Professional Tone" || findings[2].Type != FindingSuccess {
		t.Fatalf("finding[2] = %+v", findings[2])
	}
}

func TestAggregateFailurePath(t *testing.T) {
	breakdown, findings := Aggregate("plain text", nil, []string{"Docker"}, nil)

	if breakdown.Skills != 0 || breakdown.Structure != 0 {
		t.Fatalf("breakdown = %+v", breakdown)
	}

	wantTitles := []string{
		"Missing Key Technical Skills",
		"Resume Structure Issues",
		"Tone & Professionalism",
		"Achievements & Action Verbs",
	}
	if len(findings) != len(wantTitles) {
		t.Fatalf("expected %d findings, got %v", len(wantTitles), findings)
	}
	for i, title := range wantTitles {
		if findings[i].Title != title || findings[i].Type != FindingFail {
			t.Fatalf("finding[%d] = %+v, want fail %q", i, findings[i], title)
		}
	}
}

func TestAggregateContentSuccessHasNoFinding(t *testing.T) {
	// 4 of 8 content keywords puts content at 50, which suppresses the
	// content finding entirely; there is no success counterpart.
	resume := "increase reduce manage deliver"
	_, findings := Aggregate(resume, nil, nil, nil)
	for _, f := range findings {
		if f.Title == "Achievements & Action Verbs" {
			t.Fatalf("content finding should not be emitted at score >= 50: %v", findings)
		}
	}
}
