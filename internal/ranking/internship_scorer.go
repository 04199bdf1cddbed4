package ranking

import (
	"strings"

	"go.uber.org/zap"

	"github.com/hyperjump/careermatch/internal/models"
	"github.com/hyperjump/careermatch/internal/vector"
)

// IsEntryLevel reports whether a job title contains one of the keywords.
func IsEntryLevel(title string, keywords []string) bool {
	t := strings.ToLower(title)
	for _, k := range keywords {
		if k != "" && strings.Contains(t, strings.ToLower(k)) {
			return true
		}
	}
	return false
}

// ScoreInternships ranks entry-level jobs by similarity to the student.
// When the corpus has no entry-level titles every job is a candidate.
func (r *Ranker) ScoreInternships(ctx *StudentContext, corpus *Corpus) []models.InternshipCandidate {
	var candidates []int
	for i, job := range corpus.Jobs {
		if IsEntryLevel(job.Title, r.config.EntryLevelKeywords) {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 && len(corpus.Jobs) > 0 {
		r.logger.Debug("no entry-level jobs, falling back to full corpus",
			zap.Int("jobs", len(corpus.Jobs)))
		candidates = make([]int, len(corpus.Jobs))
		for i := range candidates {
			candidates[i] = i
		}
	}

	scores := make([]float64, len(candidates))
	for i, j := range candidates {
		scores[i] = vector.Cosine(ctx.Embedding, corpus.jobEmbedding(j))
	}
	hits := vector.TopK(scores, r.config.InternshipLimit)

	out := make([]models.InternshipCandidate, 0, len(hits))
	for _, h := range hits {
		job := corpus.Jobs[candidates[h.Index]]
		out = append(out, models.InternshipCandidate{
			JobID:    job.ID,
			Company:  job.Company,
			Role:     job.Title,
			Location: job.Location,
			Match:    h.Score,
		})
	}
	return out
}
