package ranking

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/hyperjump/careermatch/internal/models"
)

// fallbackProjectSkills are used when the student has no missing skills.
var fallbackProjectSkills = []string{"Advanced Architecture", "Optimization"}

type projectTemplate struct {
	title       func(target, skills string) string
	description func(skills string) string
	difficulty  string
}

var projectTemplates = []projectTemplate{
	{
		title: func(target, skills string) string {
			return fmt.Sprintf("Build a %s Pipeline using %s", target, skills)
		},
		description: func(skills string) string {
			return fmt.Sprintf("Create a comprehensive project that demonstrates your mastery of %s. Focus on real-world application.", skills)
		},
		difficulty: "Intermediate",
	},
	{
		title: func(_, skills string) string {
			return fmt.Sprintf("Develop a Cloud-Native Application with %s", skills)
		},
		description: func(skills string) string {
			return fmt.Sprintf("Deploy a scalable application integrating %s to solve a specific business problem.", skills)
		},
		difficulty: "Advanced",
	},
	{
		title: func(_, skills string) string {
			return fmt.Sprintf("%s Integration Lab", skills)
		},
		description: func(skills string) string {
			return fmt.Sprintf("Set up a practical lab environment to experiment with %s configurations and troubleshooting.", skills)
		},
		difficulty: "Beginner",
	},
}

// ScoreProjects instantiates the project templates with the student's
// highest-priority missing skills and target job.
func (r *Ranker) ScoreProjects(ctx *StudentContext) []models.ProjectSuggestion {
	target := ctx.TargetJob
	if target == "" {
		target = r.config.DefaultTargetJob
	}

	var chosen []string
	for _, p := range ctx.Gap.PrioritySkills {
		if len(chosen) == r.config.ProjectSkillLimit {
			break
		}
		chosen = append(chosen, p.Skill)
	}
	if len(chosen) == 0 {
		chosen = fallbackProjectSkills
	}

	title := cases.Title(language.English)
	display := make([]string, len(chosen))
	for i, s := range chosen {
		display[i] = title.String(s)
	}
	phrase := strings.Join(display, " & ")

	out := make([]models.ProjectSuggestion, 0, len(projectTemplates))
	for _, t := range projectTemplates {
		covered := make([]string, len(chosen))
		copy(covered, chosen)
		out = append(out, models.ProjectSuggestion{
			Title:         t.title(target, phrase),
			Description:   t.description(phrase),
			Difficulty:    t.difficulty,
			SkillsCovered: covered,
		})
	}
	return out
}
