package cluster

import (
	"strconv"

	"github.com/hyperjump/careermatch/internal/career"
)

// Member is one student as seen by the clustering engine.
type Member struct {
	ID          string
	GPA         float64
	Attendance  float64
	Failed      int
	Completed   int
	Embedding   []float32
	Missing     int
	TopPriority float64
	Career      career.Category
	// MissingByPriority lists missing skills best first.
	MissingByPriority []string
}

// academic + gap scalars
const scalarFeatures = 6

// FeatureNames returns the column names of assembled feature rows.
func FeatureNames(components int) []string {
	names := []string{"gpa", "attendance", "failed_courses", "completed_courses"}
	for i := 0; i < components; i++ {
		names = append(names, "pc"+strconv.Itoa(i+1))
	}
	names = append(names, "missing_skills", "top_priority")
	for _, c := range career.Categories() {
		names = append(names, "career="+c.String())
	}
	return names
}

// AssembleFeatures builds one raw feature row per member: academic scalars,
// the projected embedding, gap scalars and a one-hot career category.
func AssembleFeatures(members []Member, proj *Projection) [][]float64 {
	cats := len(career.Categories())
	rows := make([][]float64, len(members))
	for i, m := range members {
		row := make([]float64, 0, scalarFeatures+proj.Size+cats)
		row = append(row, m.GPA, m.Attendance, float64(m.Failed), float64(m.Completed))
		row = append(row, proj.Transform(m.Embedding)...)
		row = append(row, float64(m.Missing), m.TopPriority)
		onehot := make([]float64, cats)
		onehot[m.Career.Index()] = 1
		rows[i] = append(row, onehot...)
	}
	return rows
}
