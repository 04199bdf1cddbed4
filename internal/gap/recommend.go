package gap

import (
	"fmt"

	"github.com/hyperjump/careermatch/internal/models"
)

// Focus list sizes.
const (
	ImmediateFocus  = 3
	SecondaryFocus  = 5
	CareerPathJobs  = 3
	DefaultSkillCap = 10
)

// RecommendSkills returns the n highest-priority missing skills.
func RecommendSkills(profile models.SkillGapProfile, n int) []models.SkillRecommendation {
	if n <= 0 {
		n = DefaultSkillCap
	}
	out := make([]models.SkillRecommendation, 0, n)
	for _, p := range profile.PrioritySkills {
		if len(out) == n {
			break
		}
		out = append(out, models.SkillRecommendation{Skill: p.Skill, Priority: p.PriorityScore})
	}
	return out
}

// Focus splits the priority list into immediate and secondary skills and
// lists the distinct titles of the best matches as career paths.
func Focus(profile models.SkillGapProfile, matches []models.JobMatch) models.Focus {
	f := models.Focus{
		Immediate:   []string{},
		Secondary:   []string{},
		CareerPaths: []string{},
	}
	for i, p := range profile.PrioritySkills {
		switch {
		case i < ImmediateFocus:
			f.Immediate = append(f.Immediate, p.Skill)
		case i < ImmediateFocus+SecondaryFocus:
			f.Secondary = append(f.Secondary, p.Skill)
		}
	}
	seen := make(map[string]struct{})
	for i, m := range matches {
		if i == CareerPathJobs {
			break
		}
		if _, ok := seen[m.Title]; ok || m.Title == "" {
			continue
		}
		seen[m.Title] = struct{}{}
		f.CareerPaths = append(f.CareerPaths, m.Title)
	}
	return f
}

// TargetJob is the title of the best match, or fallback without matches.
func TargetJob(matches []models.JobMatch, fallback string) string {
	if len(matches) > 0 && matches[0].Title != "" {
		return matches[0].Title
	}
	return fallback
}

// Comment is a one-line summary of the best match.
func Comment(matches []models.JobMatch) string {
	if len(matches) == 0 {
		return "Keep building your skills!"
	}
	return fmt.Sprintf("You are a %d%% match to %s roles.", int(matches[0].MatchPercentage), matches[0].Title)
}
