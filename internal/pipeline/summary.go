package pipeline

import (
	"sort"

	"github.com/hyperjump/careermatch/internal/models"
	"github.com/hyperjump/careermatch/internal/skills"
)

// SummaryTopSkills is the number of population-wide missing skills reported.
const SummaryTopSkills = 50

// Summarize computes population statistics over student results.
func Summarize(results []models.StudentResult) models.PopulationSummary {
	sum := models.PopulationSummary{
		TotalStudents:    len(results),
		TopMissingSkills: []models.SkillCount{},
		Departments:      []models.DepartmentStats{},
	}
	if len(results) == 0 {
		return sum
	}

	var current, missing, matching int
	lists := make([][]string, 0, len(results))
	type dept struct {
		students int
		match    float64
	}
	depts := make(map[string]*dept)
	for _, r := range results {
		current += len(r.Gap.CurrentSkills)
		missing += len(r.Gap.MissingSkills)
		matching += len(r.Gap.MatchingSkills)
		lists = append(lists, r.Gap.MissingSkills)

		name := r.Department
		if name == "" {
			name = "Unknown"
		}
		d, ok := depts[name]
		if !ok {
			d = &dept{}
			depts[name] = d
		}
		d.students++
		if len(r.JobMatches) > 0 {
			d.match += r.JobMatches[0].MatchPercentage
		}
	}

	n := float64(len(results))
	sum.AvgSkillsPerStudent = skills.Round(float64(current)/n, 2)
	sum.AvgMissingSkills = skills.Round(float64(missing)/n, 2)
	sum.AvgMatchingSkills = skills.Round(float64(matching)/n, 2)
	for _, c := range skills.Top(skills.Frequency(lists), SummaryTopSkills) {
		sum.TopMissingSkills = append(sum.TopMissingSkills, models.SkillCount{Skill: c.Skill, Count: c.Count})
	}

	names := make([]string, 0, len(depts))
	for name := range depts {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		d := depts[name]
		sum.Departments = append(sum.Departments, models.DepartmentStats{
			Department:         name,
			Students:           d.students,
			AvgMatchPercentage: skills.Round(d.match/float64(d.students), 2),
		})
	}
	return sum
}
