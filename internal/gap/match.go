// Package gap matches students to jobs and derives their skill gaps.
package gap

import (
	"math"

	"github.com/hyperjump/careermatch/internal/models"
	"github.com/hyperjump/careermatch/internal/skills"
	"github.com/hyperjump/careermatch/internal/vector"
)

// DefaultTopK is the number of job matches kept per student.
const DefaultTopK = 5

// MatchJobs ranks jobs for one student given the student's row of the
// student x job similarity matrix. Columns map to jobs by position.
func MatchJobs(row []float64, jobs []models.Job, k int) []models.JobMatch {
	if k <= 0 {
		k = DefaultTopK
	}
	n := len(row)
	if len(jobs) < n {
		n = len(jobs)
	}
	hits := vector.TopK(row[:n], k)
	out := make([]models.JobMatch, 0, len(hits))
	for _, h := range hits {
		job := jobs[h.Index]
		score := math.Max(0, h.Score)
		out = append(out, models.JobMatch{
			JobID:           job.ID,
			Title:           job.Title,
			Company:         job.Company,
			Location:        job.Location,
			Department:      job.Department,
			Level:           job.Level,
			Score:           score,
			MatchPercentage: skills.Round(score*100, 2),
		})
	}
	return out
}
