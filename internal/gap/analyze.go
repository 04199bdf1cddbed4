package gap

import (
	"sort"

	"go.uber.org/zap"

	"github.com/hyperjump/careermatch/internal/models"
	"github.com/hyperjump/careermatch/internal/skills"
)

// MaxPriority is the score of a skill required by every matched job.
const MaxPriority = 10.0

// SkillLookup resolves a job's required skills.
type SkillLookup interface {
	JobSkills(jobID string) ([]string, bool)
}

// JobIndex is an in-memory SkillLookup keyed by job id.
type JobIndex map[string][]string

// NewJobIndex indexes the normalized required skills of jobs.
func NewJobIndex(jobs []models.Job) JobIndex {
	idx := make(JobIndex, len(jobs))
	for _, j := range jobs {
		idx[j.ID] = skills.MergeSets(j.RequiredSkills)
	}
	return idx
}

// JobSkills implements SkillLookup.
func (idx JobIndex) JobSkills(jobID string) ([]string, bool) {
	s, ok := idx[jobID]
	return s, ok
}

// AnalyzerOption configures an Analyzer.
type AnalyzerOption func(*Analyzer)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) AnalyzerOption {
	return func(a *Analyzer) {
		a.logger = l
	}
}

// Analyzer computes skill gap profiles against matched jobs.
type Analyzer struct {
	lookup SkillLookup
	logger *zap.Logger
}

// NewAnalyzer creates an analyzer reading job skills from lookup.
func NewAnalyzer(lookup SkillLookup, opts ...AnalyzerOption) *Analyzer {
	a := &Analyzer{lookup: lookup}
	for _, opt := range opts {
		opt(a)
	}
	if a.logger == nil {
		a.logger = zap.NewNop()
	}
	return a
}

// Analyze builds the gap profile of a student from their job matches.
// Missing and matching skills are unions across all matched jobs. A missing
// skill's priority is the share of matched jobs requiring it, scaled to 0-10.
// Matches whose job is unknown to the lookup are skipped and do not count
// towards the priority denominator.
func (a *Analyzer) Analyze(studentID string, studentSkills []string, matches []models.JobMatch) models.SkillGapProfile {
	current := skills.MergeSets(studentSkills)
	profile := models.SkillGapProfile{
		StudentID:      studentID,
		CurrentSkills:  current,
		MissingSkills:  []string{},
		MatchingSkills: []string{},
		PrioritySkills: []models.PrioritySkill{},
	}

	jobSkills := make([][]string, 0, len(matches))
	for _, m := range matches {
		s, ok := a.lookup.JobSkills(m.JobID)
		if !ok {
			a.logger.Warn("matched job not found, skipping",
				zap.String("student_id", studentID),
				zap.String("job_id", m.JobID))
			continue
		}
		jobSkills = append(jobSkills, skills.MergeSets(s))
	}
	if len(jobSkills) == 0 {
		return profile
	}

	have := skills.Set(current)
	freq := skills.Frequency(jobSkills)
	k := float64(len(jobSkills))
	for skill, n := range freq {
		if _, ok := have[skill]; ok {
			profile.MatchingSkills = append(profile.MatchingSkills, skill)
			continue
		}
		profile.MissingSkills = append(profile.MissingSkills, skill)
		profile.PrioritySkills = append(profile.PrioritySkills, models.PrioritySkill{
			Skill:         skill,
			PriorityScore: skills.Round(float64(n)/k*MaxPriority, 2),
			JobFrequency:  n,
		})
	}
	sort.Strings(profile.MissingSkills)
	sort.Strings(profile.MatchingSkills)
	sort.Slice(profile.PrioritySkills, func(i, j int) bool {
		pi, pj := profile.PrioritySkills[i], profile.PrioritySkills[j]
		if pi.PriorityScore != pj.PriorityScore {
			return pi.PriorityScore > pj.PriorityScore
		}
		return pi.Skill < pj.Skill
	})
	return profile
}
