// Package ranking scores course, project and internship recommendations.
package ranking

import (
	"strings"

	"github.com/hyperjump/careermatch/internal/models"
	"github.com/hyperjump/careermatch/internal/skills"
)

// Corpus is the read-only catalog shared by every student in a run.
// Embeddings align with records by position.
type Corpus struct {
	Courses          []models.Course
	CourseEmbeddings [][]float32
	Jobs             []models.Job
	JobEmbeddings    [][]float32

	courseSkills []map[string]struct{}
}

// NewCorpus builds a corpus and pre-normalizes course skills.
func NewCorpus(courses []models.Course, courseEmb [][]float32, jobs []models.Job, jobEmb [][]float32) *Corpus {
	c := &Corpus{
		Courses:          courses,
		CourseEmbeddings: courseEmb,
		Jobs:             jobs,
		JobEmbeddings:    jobEmb,
		courseSkills:     make([]map[string]struct{}, len(courses)),
	}
	for i, course := range courses {
		c.courseSkills[i] = skills.Set(course.SkillsGained)
	}
	return c
}

func (c *Corpus) courseEmbedding(i int) []float32 {
	if i < len(c.CourseEmbeddings) {
		return c.CourseEmbeddings[i]
	}
	return nil
}

func (c *Corpus) jobEmbedding(i int) []float32 {
	if i < len(c.JobEmbeddings) {
		return c.JobEmbeddings[i]
	}
	return nil
}

// StudentContext carries everything scoring needs about one student.
type StudentContext struct {
	Student   *models.Student
	Embedding []float32
	Gap       models.SkillGapProfile
	TargetJob string

	missing   map[string]struct{}
	completed map[string]struct{}
}

// NewStudentContext creates a scoring context for a student.
func NewStudentContext(student *models.Student, embedding []float32, gap models.SkillGapProfile, targetJob string) *StudentContext {
	ctx := &StudentContext{
		Student:   student,
		Embedding: embedding,
		Gap:       gap,
		TargetJob: targetJob,
		missing:   skills.Set(gap.MissingSkills),
		completed: make(map[string]struct{}),
	}
	if student != nil {
		for _, c := range student.CompletedCourses {
			if key := courseKey(c); key != "" {
				ctx.completed[key] = struct{}{}
			}
		}
	}
	return ctx
}

// HasCompleted reports whether the student completed a course with this title.
// Titles compare case-insensitively.
func (ctx *StudentContext) HasCompleted(title string) bool {
	_, ok := ctx.completed[courseKey(title)]
	return ok
}

func courseKey(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}
