package ranking

import (
	"strings"

	"go.uber.org/zap"

	"github.com/hyperjump/careermatch/internal/models"
)

// Recommendations are the scored suggestions for one student.
type Recommendations struct {
	Courses     []models.CourseRecommendation
	Projects    []models.ProjectSuggestion
	Internships []models.InternshipCandidate
}

// Ranker combines the course scorers and the rule-based project and
// internship recommenders. It is safe for concurrent use.
type Ranker struct {
	config     *RankingConfig
	similarity CourseScorer
	coverage   CourseScorer
	level      CourseScorer
	providers  []string
	logger     *zap.Logger
}

// NewRanker creates a new Ranker with the given configuration.
func NewRanker(config *RankingConfig, logger *zap.Logger) *Ranker {
	if config == nil {
		config = DefaultRankingConfig()
	}
	config.ApplyDefaults()
	if logger == nil {
		logger = zap.NewNop()
	}

	r := &Ranker{
		config:     config,
		similarity: SimilarityScorer{},
		coverage:   CoverageScorer{},
		level:      LevelScorer{},
		logger:     logger,
	}
	seen := make(map[string]struct{})
	for _, p := range config.Providers {
		key := providerKey(p)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		r.providers = append(r.providers, key)
	}
	return r
}

// Config returns the effective configuration.
func (r *Ranker) Config() *RankingConfig {
	return r.config
}

// Recommend scores courses, projects and internships for one student.
func (r *Ranker) Recommend(ctx *StudentContext, corpus *Corpus) Recommendations {
	return Recommendations{
		Courses:     r.ScoreCourses(ctx, corpus),
		Projects:    r.ScoreProjects(ctx),
		Internships: r.ScoreInternships(ctx, corpus),
	}
}

func providerKey(provider string) string {
	return strings.ToUpper(strings.TrimSpace(provider))
}
