package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperjump/careermatch/internal/models"
)

func TestNewRanker(t *testing.T) {
	r := NewRanker(nil, nil)
	require.NotNil(t, r)
	assert.Equal(t, 0.60, r.config.SimilarityWeight)
	assert.Equal(t, 5, r.config.CoursesPerProvider)

	r = NewRanker(&RankingConfig{SimilarityWeight: 0.5, Providers: []string{"aws", " AWS ", "Huawei"}}, nil)
	assert.Equal(t, 0.5, r.config.SimilarityWeight)
	assert.Equal(t, 0.30, r.config.CoverageWeight)
	assert.Equal(t, []string{"AWS", "HUAWEI"}, r.providers)
}

func TestLevelFit(t *testing.T) {
	tests := map[string]float64{
		"Beginner":      0.5,
		" intermediate": 0.8,
		"ADVANCED":      1.0,
		"Expert":        0.5,
		"":              0.5,
	}
	for level, want := range tests {
		assert.Equal(t, want, LevelFit(level), level)
	}
}

func newCourseCorpus() *Corpus {
	courses := []models.Course{
		{ID: "c1", Title: "Docker Basics", Provider: "AWS", Level: "Beginner", SkillsGained: []string{"docker"}},
		{ID: "c2", Title: "AWS Cloud Practitioner", Provider: "AWS", Level: "Intermediate", SkillsGained: []string{"aws", "docker"}},
		{ID: "c3", Title: "HCIA Cloud", Provider: "Huawei", Level: "Advanced", SkillsGained: []string{"cloud"}},
		{ID: "c4", Title: "Kubernetes", Provider: "Huawei", Level: "Advanced", SkillsGained: []string{"kubernetes", "aws"}},
	}
	emb := [][]float32{{1, 0}, {1, 0}, {0, 1}, {0.7, 0.7}}
	return NewCorpus(courses, emb, nil, nil)
}

func TestScoreCourses_ComponentsAndOrder(t *testing.T) {
	r := NewRanker(nil, nil)
	student := &models.Student{ID: "s1"}
	gap := models.SkillGapProfile{MissingSkills: []string{"aws", "docker"}}
	ctx := NewStudentContext(student, []float32{1, 0}, gap, "")

	recs := r.ScoreCourses(ctx, newCourseCorpus())
	require.Len(t, recs, 4)

	for i := 1; i < len(recs); i++ {
		assert.GreaterOrEqual(t, recs[i-1].Score, recs[i].Score, "sorted non-increasing")
	}
	for _, rec := range recs {
		assert.GreaterOrEqual(t, rec.Coverage, 0.0)
		assert.LessOrEqual(t, rec.Coverage, 1.0)
	}

	best := recs[0]
	assert.Equal(t, "c2", best.CourseID)
	assert.InDelta(t, 1.0, best.Similarity, 1e-9)
	assert.Equal(t, 1.0, best.Coverage)
	assert.Equal(t, 0.8, best.LevelFit)
	assert.InDelta(t, 0.6+0.3+0.08, best.Score, 1e-9)
	assert.Equal(t, []string{"aws", "docker"}, best.CoveredSkills)
}

func TestScoreCourses_ExcludesCompleted(t *testing.T) {
	r := NewRanker(nil, nil)
	student := &models.Student{CompletedCourses: []string{"  aws cloud PRACTITIONER "}}
	gap := models.SkillGapProfile{MissingSkills: []string{"aws", "docker"}}
	ctx := NewStudentContext(student, []float32{1, 0}, gap, "")

	recs := r.ScoreCourses(ctx, newCourseCorpus())
	for _, rec := range recs {
		assert.NotEqual(t, "c2", rec.CourseID)
	}
	assert.Len(t, recs, 3)
}

func TestScoreCourses_PerProviderLimit(t *testing.T) {
	var courses []models.Course
	var emb [][]float32
	for i := 0; i < 8; i++ {
		courses = append(courses,
			models.Course{ID: string(rune('a'+i)) + "-aws", Title: string(rune('a'+i)) + " aws", Provider: "AWS"},
			models.Course{ID: string(rune('a'+i)) + "-hw", Title: string(rune('a'+i)) + " hw", Provider: "Huawei"},
		)
		emb = append(emb, []float32{1, float32(i)}, []float32{1, float32(i)})
	}
	corpus := NewCorpus(courses, emb, nil, nil)
	ctx := NewStudentContext(&models.Student{}, []float32{1, 0}, models.SkillGapProfile{}, "")

	recs := NewRanker(nil, nil).ScoreCourses(ctx, corpus)
	require.Len(t, recs, 10)
	counts := map[string]int{}
	for _, rec := range recs {
		counts[rec.Provider]++
	}
	assert.Equal(t, 5, counts["AWS"])
	assert.Equal(t, 5, counts["Huawei"])

	only := NewRanker(&RankingConfig{Providers: []string{"huawei"}, CoursesPerProvider: 2}, nil)
	recs = only.ScoreCourses(ctx, corpus)
	require.Len(t, recs, 2)
	for _, rec := range recs {
		assert.Equal(t, "Huawei", rec.Provider)
	}
}

func TestScoreCourses_NoMissingSkills(t *testing.T) {
	ctx := NewStudentContext(&models.Student{}, []float32{0, 0}, models.SkillGapProfile{}, "")
	recs := NewRanker(nil, nil).ScoreCourses(ctx, newCourseCorpus())
	for _, rec := range recs {
		assert.Zero(t, rec.Coverage)
		assert.Zero(t, rec.Similarity, "zero embedding has no similarity")
		assert.Empty(t, rec.CoveredSkills)
	}
}

func TestScoreProjects(t *testing.T) {
	r := NewRanker(nil, nil)
	gap := models.SkillGapProfile{PrioritySkills: []models.PrioritySkill{
		{Skill: "docker", PriorityScore: 10},
		{Skill: "aws", PriorityScore: 8},
		{Skill: "machine learning", PriorityScore: 6},
		{Skill: "sql", PriorityScore: 2},
	}}
	projects := r.ScoreProjects(NewStudentContext(nil, nil, gap, "Data Engineer"))

	require.Len(t, projects, 3)
	assert.Equal(t, "Build a Data Engineer Pipeline using Docker & Aws & Machine Learning", projects[0].Title)
	assert.Equal(t, "Intermediate", projects[0].Difficulty)
	assert.Equal(t, "Advanced", projects[1].Difficulty)
	assert.Equal(t, "Docker & Aws & Machine Learning Integration Lab", projects[2].Title)
	assert.Equal(t, "Beginner", projects[2].Difficulty)
	assert.Equal(t, []string{"docker", "aws", "machine learning"}, projects[0].SkillsCovered)
}

func TestScoreProjects_Fallbacks(t *testing.T) {
	r := NewRanker(nil, nil)
	projects := r.ScoreProjects(NewStudentContext(nil, nil, models.SkillGapProfile{}, ""))

	require.Len(t, projects, 3)
	assert.Equal(t, "Build a Cloud Engineer Pipeline using Advanced Architecture & Optimization", projects[0].Title)
	assert.Equal(t, []string{"Advanced Architecture", "Optimization"}, projects[1].SkillsCovered)
}

func TestScoreInternships(t *testing.T) {
	jobs := []models.Job{
		{ID: "j1", Title: "Senior Cloud Architect", Company: "A"},
		{ID: "j2", Title: "Junior Data Analyst", Company: "B"},
		{ID: "j3", Title: "Cloud Intern", Company: "C"},
	}
	emb := [][]float32{{1, 0}, {0, 1}, {1, 0.1}}
	corpus := NewCorpus(nil, nil, jobs, emb)
	ctx := NewStudentContext(&models.Student{}, []float32{1, 0}, models.SkillGapProfile{}, "")

	got := NewRanker(nil, nil).ScoreInternships(ctx, corpus)
	require.Len(t, got, 2)
	assert.Equal(t, "j3", got[0].JobID)
	assert.Equal(t, "Cloud Intern", got[0].Role)
	assert.Equal(t, "j2", got[1].JobID)
}

func TestScoreInternships_FallsBackToFullCorpus(t *testing.T) {
	jobs := []models.Job{
		{ID: "j1", Title: "Senior Cloud Architect"},
		{ID: "j2", Title: "Staff Engineer"},
	}
	corpus := NewCorpus(nil, nil, jobs, [][]float32{{0, 1}, {1, 0}})
	ctx := NewStudentContext(&models.Student{}, []float32{1, 0}, models.SkillGapProfile{}, "")

	got := NewRanker(nil, nil).ScoreInternships(ctx, corpus)
	require.Len(t, got, 2)
	assert.Equal(t, "j2", got[0].JobID)

	assert.Empty(t, NewRanker(nil, nil).ScoreInternships(ctx, NewCorpus(nil, nil, nil, nil)))
}

func TestIsEntryLevel(t *testing.T) {
	kw := DefaultRankingConfig().EntryLevelKeywords
	assert.True(t, IsEntryLevel("Software Engineering INTERN", kw))
	assert.True(t, IsEntryLevel("Fresh Graduate Developer", kw))
	assert.True(t, IsEntryLevel("Internal Tools Engineer", kw), "substring match")
	assert.False(t, IsEntryLevel("Senior Engineer", kw))
}
