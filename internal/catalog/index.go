// Package catalog provides a full-text index over job postings and courses.
package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/hyperjump/careermatch/internal/models"
)

// Kind identifies the record type of a catalog entry.
type Kind string

const (
	KindJob    Kind = "job"
	KindCourse Kind = "course"
)

// ParseKind maps a user supplied kind onto Kind. Empty means both kinds.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all", "any":
		return "", nil
	case "job", "jobs":
		return KindJob, nil
	case "course", "courses":
		return KindCourse, nil
	}
	return "", fmt.Errorf("unknown catalog kind %q", s)
}

// SearchOptions optional parameters for catalog search. Nil means use defaults.
type SearchOptions struct {
	// TitleBoost multiplies the score contribution from matches in the title field.
	TitleBoost float64
	// FuzzyEnabled enables typo tolerant matching.
	FuzzyEnabled bool
	// Fuzziness is the maximum edit distance for fuzzy matching (1 or 2).
	Fuzziness int
}

// Index defines catalog indexing and search operations.
type Index interface {
	IndexJobs(ctx context.Context, jobs []models.Job) error
	IndexCourses(ctx context.Context, courses []models.Course) error
	// Rebuild drops every entry and indexes the given records.
	Rebuild(ctx context.Context, jobs []models.Job, courses []models.Course) error
	Search(ctx context.Context, query string, kind Kind, limit int, opts *SearchOptions) ([]Hit, error)
	DocCount() (uint64, error)
	Close() error
}

// Hit is a single catalog search result.
type Hit struct {
	ID    string  `json:"id"`
	Kind  Kind    `json:"kind"`
	Title string  `json:"title,omitempty"`
	Score float64 `json:"score"`
}

// TermDictionary provides access to indexed terms for spelling suggestions.
type TermDictionary interface {
	// Terms returns every indexed term with its document frequency.
	Terms() (map[string]int, error)
}
