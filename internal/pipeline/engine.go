// Package pipeline runs the batch matching, recommendation and clustering
// stages over one population snapshot.
package pipeline

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/hyperjump/careermatch/internal/career"
	"github.com/hyperjump/careermatch/internal/cluster"
	"github.com/hyperjump/careermatch/internal/gap"
	"github.com/hyperjump/careermatch/internal/models"
	"github.com/hyperjump/careermatch/internal/ranking"
	"github.com/hyperjump/careermatch/internal/vector"
)

// Config holds the tunables of a run.
type Config struct {
	// Dimensions is the expected embedding length; 0 accepts any.
	Dimensions int
	TopKJobs   int
	Workers    int
	Ranking    *ranking.RankingConfig
	Cluster    *cluster.Config
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// WithClock overrides the time source used for run timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// Engine executes batch runs. It holds no state between runs.
type Engine struct {
	config    Config
	ranker    *ranking.Ranker
	clusterer *cluster.Engine
	logger    *zap.Logger
	now       func() time.Time
}

// NewEngine creates a pipeline engine.
func NewEngine(cfg Config, opts ...Option) *Engine {
	e := &Engine{now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = zap.NewNop()
	}
	if cfg.TopKJobs <= 0 {
		cfg.TopKJobs = gap.DefaultTopK
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	e.config = cfg
	e.ranker = ranking.NewRanker(cfg.Ranking, e.logger.Named("ranking"))
	e.clusterer = cluster.NewEngine(cfg.Cluster, e.logger.Named("cluster"))
	return e
}

// Run computes every per-student and population output for in.
func (e *Engine) Run(ctx context.Context, in *Input) (*models.RunResult, error) {
	started := e.now()
	runID := uuid.New().String()
	log := e.logger.With(zap.String("run_id", runID))

	dims, err := in.Validate(e.config.Dimensions)
	if err != nil {
		return nil, err
	}

	studentIDs := make([]string, len(in.Students))
	for i, s := range in.Students {
		studentIDs[i] = s.ID
	}
	jobIDs := make([]string, len(in.Jobs))
	for i, j := range in.Jobs {
		jobIDs[i] = j.ID
	}
	courseIDs := make([]string, len(in.Courses))
	for i, c := range in.Courses {
		courseIDs[i] = c.ID
	}
	studentVecs, missing := align(in.StudentEmbeddings, studentIDs, dims)
	warnMissing(log, "student", missing)
	jobVecs, missing := align(in.JobEmbeddings, jobIDs, dims)
	warnMissing(log, "job", missing)
	courseVecs, missing := align(in.CourseEmbeddings, courseIDs, dims)
	warnMissing(log, "course", missing)

	// Matching needs the whole job set, so it completes before fan-out.
	stageStart := time.Now()
	sim, err := vector.Similarity(studentVecs, jobVecs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStructuralMismatch, err)
	}
	matches := make([][]models.JobMatch, len(in.Students))
	for i := range in.Students {
		matches[i] = gap.MatchJobs(sim.Row(i), in.Jobs, e.config.TopKJobs)
	}
	log.Info("job matching complete",
		zap.Int("students", len(in.Students)),
		zap.Int("jobs", len(in.Jobs)),
		zap.Duration("elapsed", time.Since(stageStart)))

	if len(in.Jobs) > 0 && !hasEntryLevel(in.Jobs, e.ranker.Config().EntryLevelKeywords) {
		log.Warn("no entry-level job titles, internships fall back to the full corpus")
	}

	stageStart = time.Now()
	results, err := e.recommend(ctx, in, studentVecs, courseVecs, jobVecs, matches)
	if err != nil {
		return nil, err
	}
	log.Info("recommendations complete",
		zap.Int("students", len(results)),
		zap.Int("workers", e.config.Workers),
		zap.Duration("elapsed", time.Since(stageStart)))

	members := make([]cluster.Member, len(results))
	for i := range results {
		members[i] = newMember(&in.Students[i], studentVecs[i], &results[i])
	}
	clusters, err := e.clusterer.Run(ctx, members)
	if err != nil {
		return nil, fmt.Errorf("clustering: %w", err)
	}
	for i := range results {
		a := clusters.Assignments[i]
		results[i].Cluster = &a
		results[i].SimilarStudentIDs = clusters.Network[i].Similar
	}

	run := &models.RunResult{
		ID:          runID,
		StartedAt:   started,
		Seed:        e.clusterer.Config().Seed,
		Students:    results,
		Assignments: clusters.Assignments,
		Clusters:    clusters.Profiles,
		Network:     clusters.Network,
		Quality:     clusters.Quality,
		Summary:     Summarize(results),
	}
	run.FinishedAt = e.now()
	log.Info("run complete",
		zap.Int("students", len(results)),
		zap.Int("clusters", len(run.Clusters)),
		zap.Duration("elapsed", run.FinishedAt.Sub(started)))
	return run, nil
}

// recommend fans out per-student work. Each worker writes only its own slot.
func (e *Engine) recommend(ctx context.Context, in *Input, studentVecs, courseVecs, jobVecs [][]float32, matches [][]models.JobMatch) ([]models.StudentResult, error) {
	lookup := gap.NewJobIndex(in.Jobs)
	analyzer := gap.NewAnalyzer(lookup, gap.WithLogger(e.logger.Named("gap")))
	corpus := ranking.NewCorpus(in.Courses, courseVecs, in.Jobs, jobVecs)
	rcfg := e.ranker.Config()

	results := make([]models.StudentResult, len(in.Students))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.config.Workers)
	for i := range in.Students {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			s := &in.Students[i]
			m := matches[i]
			profile := analyzer.Analyze(s.ID, s.Skills, m)
			cat, confidence := studentCareer(s, m)
			target := gap.TargetJob(m, rcfg.DefaultTargetJob)

			sctx := ranking.NewStudentContext(s, studentVecs[i], profile, target)
			recs := e.ranker.Recommend(sctx, corpus)

			results[i] = models.StudentResult{
				StudentID:        s.ID,
				StudentName:      s.Name,
				Department:       s.Department,
				Career:           cat.String(),
				CareerConfidence: confidence,
				TargetJob:        target,
				Comment:          gap.Comment(m),
				JobMatches:       m,
				Gap:              profile,
				Focus:            gap.Focus(profile, m),
				Skills:           gap.RecommendSkills(profile, rcfg.RecommendedSkillLimit),
				Courses:          recs.Courses,
				Projects:         recs.Projects,
				Internships:      recs.Internships,
			}
			e.logger.Debug("student scored",
				zap.String("student_id", s.ID),
				zap.Int("missing", len(profile.MissingSkills)),
				zap.Int("courses", len(recs.Courses)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// studentCareer uses the classifier's label when present and otherwise
// classifies the best match's title with zero confidence.
func studentCareer(s *models.Student, matches []models.JobMatch) (career.Category, float64) {
	if s.PredictedCareer != "" {
		return career.Parse(s.PredictedCareer), s.CareerConfidence
	}
	if len(matches) > 0 {
		return career.Classify(matches[0].Title), 0
	}
	return career.Other, 0
}

func newMember(s *models.Student, emb []float32, r *models.StudentResult) cluster.Member {
	missing := make([]string, len(r.Gap.PrioritySkills))
	for i, p := range r.Gap.PrioritySkills {
		missing[i] = p.Skill
	}
	return cluster.Member{
		ID:                s.ID,
		GPA:               s.GPA,
		Attendance:        s.Attendance,
		Failed:            s.FailedCourses,
		Completed:         len(s.CompletedCourses),
		Embedding:         emb,
		Missing:           len(r.Gap.MissingSkills),
		TopPriority:       r.Gap.TopPriority(),
		Career:            career.Category(r.Career),
		MissingByPriority: missing,
	}
}

func hasEntryLevel(jobs []models.Job, keywords []string) bool {
	for _, j := range jobs {
		if ranking.IsEntryLevel(j.Title, keywords) {
			return true
		}
	}
	return false
}

func warnMissing(log *zap.Logger, kind string, ids []string) {
	if len(ids) == 0 {
		return
	}
	log.Warn("embeddings missing, using zero vectors",
		zap.String("kind", kind),
		zap.Int("count", len(ids)),
		zap.Strings("ids", ids))
}
