package ingest

import (
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/hyperjump/careermatch/internal/pipeline"
	"github.com/hyperjump/careermatch/internal/vector"
)

// Sources names the files of one population snapshot. Relative paths are
// resolved against Directory.
type Sources struct {
	Directory         string
	Students          string
	Jobs              string
	Courses           string
	StudentEmbeddings string
	JobEmbeddings     string
	CourseEmbeddings  string
	Separator         string
	// Dimensions, when positive, is enforced on every embedding file.
	Dimensions int
}

// Paths returns every configured file path, resolved.
func (s Sources) Paths() []string {
	var out []string
	for _, p := range []string{s.Students, s.Jobs, s.Courses, s.StudentEmbeddings, s.JobEmbeddings, s.CourseEmbeddings} {
		if p != "" {
			out = append(out, s.resolve(p))
		}
	}
	return out
}

func (s Sources) resolve(p string) string {
	if p == "" || filepath.IsAbs(p) || s.Directory == "" {
		return p
	}
	return filepath.Join(s.Directory, p)
}

// Load reads records and embeddings into a pipeline input. A source left
// empty yields no records for that entity.
func Load(src Sources, logger *zap.Logger) (*pipeline.Input, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	in := &pipeline.Input{}

	if src.Students != "" {
		t, err := ReadTable(src.resolve(src.Students))
		if err != nil {
			return nil, fmt.Errorf("load students: %w", err)
		}
		in.Students = Students(t, src.Separator)
	}
	if src.Jobs != "" {
		t, err := ReadTable(src.resolve(src.Jobs))
		if err != nil {
			return nil, fmt.Errorf("load jobs: %w", err)
		}
		in.Jobs = Jobs(t, src.Separator)
	}
	if src.Courses != "" {
		t, err := ReadTable(src.resolve(src.Courses))
		if err != nil {
			return nil, fmt.Errorf("load courses: %w", err)
		}
		in.Courses = Courses(t, src.Separator)
	}

	var err error
	if in.StudentEmbeddings, err = loadEmbeddings(src.resolve(src.StudentEmbeddings), src.Dimensions); err != nil {
		return nil, fmt.Errorf("load student embeddings: %w", err)
	}
	if in.JobEmbeddings, err = loadEmbeddings(src.resolve(src.JobEmbeddings), src.Dimensions); err != nil {
		return nil, fmt.Errorf("load job embeddings: %w", err)
	}
	if in.CourseEmbeddings, err = loadEmbeddings(src.resolve(src.CourseEmbeddings), src.Dimensions); err != nil {
		return nil, fmt.Errorf("load course embeddings: %w", err)
	}

	logger.Info("input loaded",
		zap.Int("students", len(in.Students)),
		zap.Int("jobs", len(in.Jobs)),
		zap.Int("courses", len(in.Courses)))
	return in, nil
}

func loadEmbeddings(path string, dims int) (*vector.Set, error) {
	if path == "" {
		return nil, nil
	}
	return vector.LoadSet(path, dims)
}
