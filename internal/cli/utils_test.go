package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/hyperjump/careermatch/internal/catalog"
	"github.com/hyperjump/careermatch/internal/models"
)

func sampleStudent() *models.StudentResult {
	return &models.StudentResult{
		StudentID:   "s1",
		StudentName: "Ada",
		Department:  "CS",
		Career:      "Cloud",
		TargetJob:   "Cloud Engineer",
		Comment:     "You are a 80% match to Cloud Engineer roles.",
		JobMatches:  []models.JobMatch{{JobID: "j1", Title: "Cloud Engineer", Company: "Nimbus", MatchPercentage: 80.5}},
		Gap: models.SkillGapProfile{
			StudentID:      "s1",
			MissingSkills:  []string{"aws", "docker"},
			MatchingSkills: []string{"python"},
		},
		Skills: []models.SkillRecommendation{{Skill: "aws", Priority: 10}},
		Focus:  models.Focus{Immediate: []string{"aws"}, CareerPaths: []string{"Cloud Engineer"}},
		Courses: []models.CourseRecommendation{
			{CourseID: "c1", Title: "AWS Basics", Provider: "Coursera", Level: "Beginner", Score: 0.7, CoveredSkills: []string{"aws"}},
		},
		Projects:          []models.ProjectSuggestion{{Title: "Cloud Engineer Portfolio", Description: "Build things", Difficulty: "Intermediate"}},
		Internships:       []models.InternshipCandidate{{JobID: "j9", Role: "Cloud Intern", Company: "Nimbus", Location: "Remote", Match: 0.6}},
		Cluster:           &models.ClusterAssignment{StudentID: "s1", ClusterID: 2, Label: "Cloud"},
		SimilarStudentIDs: []string{"s4", "s7"},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    OutputFormat
		wantErr bool
	}{
		{"", OutputText, false},
		{"text", OutputText, false},
		{"JSON", OutputJSON, false},
		{"yaml", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v", tt.in, got, err)
		}
	}
}

func TestWriteStudent_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteStudent(&buf, sampleStudent(), OutputJSON); err != nil {
		t.Fatalf("WriteStudent(json): %v", err)
	}
	var decoded models.StudentResult
	if err := json.NewDecoder(&buf).Decode(&decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.StudentID != "s1" || len(decoded.Courses) != 1 || decoded.Cluster.ClusterID != 2 {
		t.Errorf("decoded: %+v", decoded)
	}
}

func TestWriteStudent_text(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteStudent(&buf, sampleStudent(), OutputText); err != nil {
		t.Fatalf("WriteStudent(text): %v", err)
	}
	out := buf.String()
	for _, sub := range []string{
		"Ada (s1) | CS",
		"Target job: Cloud Engineer",
		"Cluster: 2 (Cloud)",
		"1. Cloud Engineer @ Nimbus  80.50%",
		"Missing skills:  aws, docker",
		"Secondary:       -",
		"[Coursera] AWS Basics (Beginner)",
		"Cloud Intern @ Nimbus",
		"Similar students: s4, s7",
	} {
		if !strings.Contains(out, sub) {
			t.Errorf("text output missing %q:\n%s", sub, out)
		}
	}
}

func TestWriteStudent_textMinimal(t *testing.T) {
	var buf bytes.Buffer
	r := &models.StudentResult{StudentID: "s9", Comment: "Keep building your skills!"}
	if err := WriteStudent(&buf, r, OutputText); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "s9 (s9)") || !strings.Contains(out, "Keep building your skills!") {
		t.Errorf("unexpected output:\n%s", out)
	}
	if strings.Contains(out, "Courses:") || strings.Contains(out, "Cluster:") {
		t.Errorf("empty sections should be omitted:\n%s", out)
	}
}

func TestWriteClusters(t *testing.T) {
	run := &models.RunInfo{ID: "run-1", Quality: models.ClusterQuality{Silhouette: 0.42}}
	clusters := []models.ClusterProfile{
		{ClusterID: 0, Label: "Data", MemberCount: 2, AvgGPA: 3.1, TopMissingSkills: []string{"sql"}, Members: []string{"s1", "s2"}},
	}

	var buf bytes.Buffer
	if err := WriteClusters(&buf, run, clusters, OutputText); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, sub := range []string{"run-1: 1 clusters", "silhouette 0.420", "Cluster 0: Data | 2 members", "Members: s1, s2"} {
		if !strings.Contains(out, sub) {
			t.Errorf("text output missing %q:\n%s", sub, out)
		}
	}

	buf.Reset()
	if err := WriteClusters(&buf, run, clusters, OutputJSON); err != nil {
		t.Fatal(err)
	}
	var decoded struct {
		RunID    string                  `json:"run_id"`
		Clusters []models.ClusterProfile `json:"clusters"`
	}
	if err := json.NewDecoder(&buf).Decode(&decoded); err != nil {
		t.Fatal(err)
	}
	if decoded.RunID != "run-1" || len(decoded.Clusters) != 1 {
		t.Errorf("decoded: %+v", decoded)
	}
}

func TestWriteRun_text(t *testing.T) {
	run := &models.RunInfo{
		ID:         "run-2",
		FinishedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Seed:       42,
		Students:   3,
		Clusters:   2,
		Summary: models.PopulationSummary{
			TopMissingSkills: []models.SkillCount{{Skill: "aws", Count: 2}},
			Departments:      []models.DepartmentStats{{Department: "CS", Students: 3, AvgMatchPercentage: 71.5}},
		},
	}
	var buf bytes.Buffer
	if err := WriteRun(&buf, run, OutputText); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, sub := range []string{"Run run-2 finished 2026-01-02 03:04:05 (seed 42)", "Students: 3 | Clusters: 2", "aws (2)", "avg match 71.50%"} {
		if !strings.Contains(out, sub) {
			t.Errorf("text output missing %q:\n%s", sub, out)
		}
	}
}

func TestWriteCatalogHits(t *testing.T) {
	hits := []catalog.Hit{{ID: "c1", Kind: catalog.KindCourse, Title: "Docker Basics", Score: 1.25}}

	var buf bytes.Buffer
	if err := WriteCatalogHits(&buf, "docker", hits, "", OutputText); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, `Found 1 catalog entries for "docker"`) || !strings.Contains(out, "[course] c1  Docker Basics") {
		t.Errorf("unexpected output:\n%s", out)
	}
	if strings.Contains(out, "Did you mean") {
		t.Errorf("no suggestion expected:\n%s", out)
	}

	buf.Reset()
	if err := WriteCatalogHits(&buf, "dokcer", nil, "docker", OutputText); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "Did you mean: docker") {
		t.Errorf("missing suggestion:\n%s", buf.String())
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name   string
		s      string
		maxLen int
		want   string
	}{
		{"empty", "", 5, ""},
		{"short", "hi", 5, "hi"},
		{"exact", "hello", 5, "hello"},
		{"long", "hello world", 5, "hello..."},
		{"maxLen zero", "ab", 0, "ab"},
		{"maxLen negative", "ab", -1, "ab"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.s, tt.maxLen); got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.s, tt.maxLen, got, tt.want)
			}
		})
	}
}
