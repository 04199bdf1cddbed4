package pipeline

import (
	"errors"
	"fmt"

	"github.com/hyperjump/careermatch/internal/models"
	"github.com/hyperjump/careermatch/internal/vector"
)

// ErrStructuralMismatch means embeddings cannot be aligned with their
// records. A run never proceeds past it.
var ErrStructuralMismatch = errors.New("structural mismatch")

// Input is one population snapshot.
type Input struct {
	Students []models.Student
	Jobs     []models.Job
	Courses  []models.Course

	StudentEmbeddings *vector.Set
	JobEmbeddings     *vector.Set
	CourseEmbeddings  *vector.Set
}

// Validate checks that every embedding set has one vector per record and
// that all sets share the expected dimension. dims <= 0 accepts any shared
// dimension.
func (in *Input) Validate(dims int) (int, error) {
	sets := []struct {
		name    string
		set     *vector.Set
		records int
	}{
		{"student", in.StudentEmbeddings, len(in.Students)},
		{"job", in.JobEmbeddings, len(in.Jobs)},
		{"course", in.CourseEmbeddings, len(in.Courses)},
	}
	for _, s := range sets {
		n := 0
		if s.set != nil {
			n = s.set.Len()
		}
		if n != s.records {
			return 0, fmt.Errorf("%w: %d %s embeddings for %d %s records", ErrStructuralMismatch, n, s.name, s.records, s.name)
		}
		if s.set == nil {
			continue
		}
		if dims <= 0 {
			dims = s.set.Dimensions
		}
		if s.set.Dimensions != dims {
			return 0, fmt.Errorf("%w: %s embeddings have dimension %d, expected %d", ErrStructuralMismatch, s.name, s.set.Dimensions, dims)
		}
	}
	return dims, nil
}

// align returns vectors in record order; ids without an embedding get a
// zero vector of length dims.
func align(set *vector.Set, ids []string, dims int) ([][]float32, []string) {
	if set == nil {
		out := make([][]float32, len(ids))
		for i := range out {
			out[i] = make([]float32, dims)
		}
		return out, nil
	}
	return set.Align(ids)
}
