package ranking

import (
	"sort"

	"github.com/hyperjump/careermatch/internal/models"
	"github.com/hyperjump/careermatch/internal/vector"
)

// CourseScorer scores one component of a course recommendation.
type CourseScorer interface {
	Name() string
	Score(ctx *StudentContext, corpus *Corpus, course int) float64
}

// SimilarityScorer scores the cosine similarity of student and course embeddings.
type SimilarityScorer struct{}

// Name returns the scorer name.
func (SimilarityScorer) Name() string { return "similarity" }

// Score returns a value in [-1, 1].
func (SimilarityScorer) Score(ctx *StudentContext, corpus *Corpus, course int) float64 {
	return vector.Cosine(ctx.Embedding, corpus.courseEmbedding(course))
}

// CoverageScorer scores the share of the student's missing skills a course teaches.
type CoverageScorer struct{}

// Name returns the scorer name.
func (CoverageScorer) Name() string { return "coverage" }

// Score returns |missing ∩ course skills| / |missing|, or 0 when nothing is missing.
func (CoverageScorer) Score(ctx *StudentContext, corpus *Corpus, course int) float64 {
	if len(ctx.missing) == 0 {
		return 0
	}
	return float64(len(coveredSkills(ctx, corpus, course))) / float64(len(ctx.missing))
}

// LevelScorer scores the course level.
type LevelScorer struct{}

// Name returns the scorer name.
func (LevelScorer) Name() string { return "level" }

// Score returns the level fit of the course.
func (LevelScorer) Score(_ *StudentContext, corpus *Corpus, course int) float64 {
	return LevelFit(corpus.Courses[course].Level)
}

func coveredSkills(ctx *StudentContext, corpus *Corpus, course int) []string {
	covered := []string{}
	for s := range corpus.courseSkills[course] {
		if _, ok := ctx.missing[s]; ok {
			covered = append(covered, s)
		}
	}
	sort.Strings(covered)
	return covered
}

// ScoreCourses scores every course the student has not completed, keeps the
// best CoursesPerProvider of each provider and returns them best first.
func (r *Ranker) ScoreCourses(ctx *StudentContext, corpus *Corpus) []models.CourseRecommendation {
	byProvider := make(map[string][]models.CourseRecommendation)
	var order []string
	for i, course := range corpus.Courses {
		if ctx.HasCompleted(course.Title) {
			continue
		}
		rec := r.scoreCourse(ctx, corpus, i)
		key := providerKey(course.Provider)
		if _, ok := byProvider[key]; !ok {
			order = append(order, key)
		}
		byProvider[key] = append(byProvider[key], rec)
	}

	if len(r.providers) > 0 {
		order = r.providers
	}
	out := []models.CourseRecommendation{}
	for _, key := range order {
		recs := byProvider[key]
		sortCourses(recs)
		if len(recs) > r.config.CoursesPerProvider {
			recs = recs[:r.config.CoursesPerProvider]
		}
		out = append(out, recs...)
	}
	sortCourses(out)
	return out
}

func (r *Ranker) scoreCourse(ctx *StudentContext, corpus *Corpus, i int) models.CourseRecommendation {
	course := corpus.Courses[i]
	sim := r.similarity.Score(ctx, corpus, i)
	cov := r.coverage.Score(ctx, corpus, i)
	lvl := r.level.Score(ctx, corpus, i)

	// Score = (Ws * similarity) + (Wc * coverage) + (Wl * level)
	final := r.config.SimilarityWeight*sim +
		r.config.CoverageWeight*cov +
		r.config.LevelWeight*lvl

	return models.CourseRecommendation{
		CourseID:      course.ID,
		Title:         course.Title,
		Provider:      course.Provider,
		Level:         course.Level,
		Score:         final,
		Similarity:    sim,
		Coverage:      cov,
		LevelFit:      lvl,
		CoveredSkills: coveredSkills(ctx, corpus, i),
	}
}

// sortCourses orders by score descending, then course id.
func sortCourses(recs []models.CourseRecommendation) {
	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].Score != recs[j].Score {
			return recs[i].Score > recs[j].Score
		}
		return recs[i].CourseID < recs[j].CourseID
	})
}
