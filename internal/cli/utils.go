// Package cli provides output formatting for the careermatch command line.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/hyperjump/careermatch/internal/catalog"
	"github.com/hyperjump/careermatch/internal/models"
)

// OutputFormat is the format for command output.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

// ParseFormat validates a --format value. Empty means text.
func ParseFormat(s string) (OutputFormat, error) {
	switch OutputFormat(strings.ToLower(strings.TrimSpace(s))) {
	case "", OutputText:
		return OutputText, nil
	case OutputJSON:
		return OutputJSON, nil
	}
	return "", fmt.Errorf("unknown output format %q (want text or json)", s)
}

const rule = "─────────────────────────────────────────────────────────"

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// WriteRun writes the header and population summary of a stored run.
func WriteRun(w io.Writer, run *models.RunInfo, format OutputFormat) error {
	if format == OutputJSON {
		return writeJSON(w, run)
	}
	fmt.Fprintf(w, "Run %s finished %s (seed %d)\n", run.ID, run.FinishedAt.Format("2006-01-02 15:04:05"), run.Seed)
	fmt.Fprintf(w, "Students: %d | Clusters: %d | Silhouette: %.3f | Davies-Bouldin: %.3f\n",
		run.Students, run.Clusters, run.Quality.Silhouette, run.Quality.DaviesBouldin)
	s := run.Summary
	fmt.Fprintf(w, "Avg skills/student: %.2f | Avg missing: %.2f | Avg matching: %.2f\n",
		s.AvgSkillsPerStudent, s.AvgMissingSkills, s.AvgMatchingSkills)
	if len(s.TopMissingSkills) > 0 {
		top := s.TopMissingSkills
		if len(top) > 10 {
			top = top[:10]
		}
		parts := make([]string, len(top))
		for i, sc := range top {
			parts[i] = fmt.Sprintf("%s (%d)", sc.Skill, sc.Count)
		}
		fmt.Fprintf(w, "Top missing skills: %s\n", strings.Join(parts, ", "))
	}
	for _, d := range s.Departments {
		fmt.Fprintf(w, "  %-24s %4d students  avg match %.2f%%\n", d.Department, d.Students, d.AvgMatchPercentage)
	}
	return nil
}

// WriteStudent writes one student's result in the given format.
func WriteStudent(w io.Writer, r *models.StudentResult, format OutputFormat) error {
	if format == OutputJSON {
		return writeJSON(w, r)
	}
	name := r.StudentName
	if name == "" {
		name = r.StudentID
	}
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "%s (%s)", name, r.StudentID)
	if r.Department != "" {
		fmt.Fprintf(w, " | %s", r.Department)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Career: %s | Target job: %s\n", r.Career, r.TargetJob)
	if r.Cluster != nil {
		fmt.Fprintf(w, "Cluster: %d (%s)\n", r.Cluster.ClusterID, r.Cluster.Label)
	}
	fmt.Fprintln(w, r.Comment)

	fmt.Fprintln(w, "\nBest job matches:")
	for i, m := range r.JobMatches {
		fmt.Fprintf(w, "  %d. %s", i+1, m.Title)
		if m.Company != "" {
			fmt.Fprintf(w, " @ %s", m.Company)
		}
		fmt.Fprintf(w, "  %.2f%%\n", m.MatchPercentage)
	}

	fmt.Fprintf(w, "\nMatching skills: %s\n", joinOrNone(r.Gap.MatchingSkills))
	fmt.Fprintf(w, "Missing skills:  %s\n", joinOrNone(r.Gap.MissingSkills))
	if len(r.Skills) > 0 {
		fmt.Fprintln(w, "Priority skills:")
		for _, s := range r.Skills {
			fmt.Fprintf(w, "  %-24s %5.2f\n", s.Skill, s.Priority)
		}
	}
	fmt.Fprintf(w, "Immediate focus: %s\n", joinOrNone(r.Focus.Immediate))
	fmt.Fprintf(w, "Secondary:       %s\n", joinOrNone(r.Focus.Secondary))
	fmt.Fprintf(w, "Career paths:    %s\n", joinOrNone(r.Focus.CareerPaths))

	if len(r.Courses) > 0 {
		fmt.Fprintln(w, "\nCourses:")
		for _, c := range r.Courses {
			fmt.Fprintf(w, "  [%s] %s (%s) score %.3f covers %s\n",
				c.Provider, c.Title, c.Level, c.Score, joinOrNone(c.CoveredSkills))
		}
	}
	if len(r.Projects) > 0 {
		fmt.Fprintln(w, "\nProjects:")
		for _, p := range r.Projects {
			fmt.Fprintf(w, "  %s [%s]\n    %s\n", p.Title, p.Difficulty, Truncate(p.Description, 160))
		}
	}
	if len(r.Internships) > 0 {
		fmt.Fprintln(w, "\nInternships:")
		for _, in := range r.Internships {
			fmt.Fprintf(w, "  %s @ %s (%s) match %.3f\n", in.Role, in.Company, in.Location, in.Match)
		}
	}
	if len(r.SimilarStudentIDs) > 0 {
		fmt.Fprintf(w, "\nSimilar students: %s\n", strings.Join(r.SimilarStudentIDs, ", "))
	}
	return nil
}

// WriteClusters writes the cluster profiles of a run.
func WriteClusters(w io.Writer, run *models.RunInfo, clusters []models.ClusterProfile, format OutputFormat) error {
	if format == OutputJSON {
		return writeJSON(w, struct {
			RunID    string                  `json:"run_id"`
			Quality  models.ClusterQuality   `json:"quality"`
			Clusters []models.ClusterProfile `json:"clusters"`
		}{run.ID, run.Quality, clusters})
	}
	fmt.Fprintf(w, "Run %s: %d clusters (silhouette %.3f, Davies-Bouldin %.3f)\n",
		run.ID, len(clusters), run.Quality.Silhouette, run.Quality.DaviesBouldin)
	for _, c := range clusters {
		fmt.Fprintln(w, rule)
		fmt.Fprintf(w, "Cluster %d: %s | %d members | avg GPA %.2f | avg attendance %.2f\n",
			c.ClusterID, c.Label, c.MemberCount, c.AvgGPA, c.AvgAttendance)
		fmt.Fprintf(w, "Top missing skills: %s\n", joinOrNone(c.TopMissingSkills))
		fmt.Fprintf(w, "Members: %s\n", Truncate(strings.Join(c.Members, ", "), 200))
	}
	return nil
}

// WriteCatalogHits writes catalog search results. suggestion may be empty.
func WriteCatalogHits(w io.Writer, query string, hits []catalog.Hit, suggestion string, format OutputFormat) error {
	if format == OutputJSON {
		return writeJSON(w, struct {
			Query      string        `json:"query"`
			Hits       []catalog.Hit `json:"hits"`
			Suggestion string        `json:"suggestion,omitempty"`
		}{query, hits, suggestion})
	}
	fmt.Fprintf(w, "\nFound %d catalog entries for %q\n\n", len(hits), query)
	for i, h := range hits {
		fmt.Fprintf(w, "%2d. [%s] %s  %s  (score %.4f)\n", i+1, h.Kind, h.ID, h.Title, h.Score)
	}
	if suggestion != "" {
		fmt.Fprintf(w, "Did you mean: %s\n", suggestion)
	}
	return nil
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}

// Truncate truncates s to maxLen and appends "..." if truncated.
func Truncate(s string, maxLen int) string {
	if maxLen <= 0 || len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
