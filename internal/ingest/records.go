package ingest

import (
	"strconv"
	"strings"

	"github.com/hyperjump/careermatch/internal/models"
	"github.com/hyperjump/careermatch/internal/skills"
)

// Header aliases per field. Lookup ignores case and punctuation, so
// "StudentID" also matches "student_id".
var (
	studentID         = []string{"StudentID", "id"}
	studentName       = []string{"FullName", "Name", "StudentName"}
	studentDepartment = []string{"Department", "Track", "Major"}
	studentGPA        = []string{"GPA", "CGPA"}
	studentAttendance = []string{"Attendance", "AttendancePercent", "AttendanceRate"}
	studentFailed     = []string{"FailedCourses", "CoursesFailed"}
	studentCompleted  = []string{"CoursesCompleted", "CompletedCourses"}
	studentSkills     = []string{"Skills"}
	studentTechnical  = []string{"TechnicalSkills"}
	studentSoft       = []string{"SoftSkills"}
	studentCareer     = []string{"PredictedCareer", "CareerLabel"}
	studentConfidence = []string{"CareerConfidence", "PredictedConfidence"}

	jobID         = []string{"JobID", "id"}
	jobTitle      = []string{"JobTitle", "Title"}
	jobCompany    = []string{"Company", "CompanyName"}
	jobLocation   = []string{"Location"}
	jobDepartment = []string{"Department"}
	jobLevel      = []string{"JobLevel", "Level", "SeniorityLevel"}
	jobSkills     = []string{"RequiredSkills", "Skills"}

	courseID       = []string{"CourseID", "id"}
	courseTitle    = []string{"CourseTitle", "CourseName", "Title"}
	courseProvider = []string{"CourseProvider", "Provider"}
	courseLevel    = []string{"Level", "CourseLevel"}
	courseSkills   = []string{"SkillsGained", "Skills"}
)

// Students maps table rows to student records. Rows without an id get a
// positional one.
func Students(t *Table, sep string) []models.Student {
	cols := struct {
		id, name, dept, gpa, att, failed, completed, skills, tech, soft, career, conf int
	}{
		t.Column(studentID...), t.Column(studentName...), t.Column(studentDepartment...),
		t.Column(studentGPA...), t.Column(studentAttendance...), t.Column(studentFailed...),
		t.Column(studentCompleted...), t.Column(studentSkills...), t.Column(studentTechnical...),
		t.Column(studentSoft...), t.Column(studentCareer...), t.Column(studentConfidence...),
	}
	out := make([]models.Student, 0, len(t.Rows))
	for i, row := range t.Rows {
		s := models.Student{
			ID:               t.Value(row, cols.id),
			Name:             t.Value(row, cols.name),
			Department:       t.Value(row, cols.dept),
			GPA:              parseFloat(t.Value(row, cols.gpa)),
			Attendance:       parseFloat(t.Value(row, cols.att)),
			FailedCourses:    int(parseFloat(t.Value(row, cols.failed))),
			CompletedCourses: splitNames(t.Value(row, cols.completed), sep),
			Skills: skills.MergeSets(
				skills.ParseList(t.Value(row, cols.skills), sep),
				skills.ParseList(t.Value(row, cols.tech), sep),
				skills.ParseList(t.Value(row, cols.soft), sep),
			),
			PredictedCareer:  t.Value(row, cols.career),
			CareerConfidence: parseFloat(t.Value(row, cols.conf)),
		}
		if s.ID == "" {
			s.ID = "student-" + strconv.Itoa(i+1)
		}
		out = append(out, s)
	}
	return out
}

// Jobs maps table rows to job records.
func Jobs(t *Table, sep string) []models.Job {
	id, title, company := t.Column(jobID...), t.Column(jobTitle...), t.Column(jobCompany...)
	loc, dept, level, req := t.Column(jobLocation...), t.Column(jobDepartment...), t.Column(jobLevel...), t.Column(jobSkills...)
	out := make([]models.Job, 0, len(t.Rows))
	for i, row := range t.Rows {
		j := models.Job{
			ID:             t.Value(row, id),
			Title:          t.Value(row, title),
			Company:        t.Value(row, company),
			Location:       t.Value(row, loc),
			Department:     t.Value(row, dept),
			Level:          t.Value(row, level),
			RequiredSkills: skills.ParseList(t.Value(row, req), sep),
		}
		if j.ID == "" {
			j.ID = "job-" + strconv.Itoa(i+1)
		}
		out = append(out, j)
	}
	return out
}

// Courses maps table rows to course records.
func Courses(t *Table, sep string) []models.Course {
	id, title, provider := t.Column(courseID...), t.Column(courseTitle...), t.Column(courseProvider...)
	level, gained := t.Column(courseLevel...), t.Column(courseSkills...)
	out := make([]models.Course, 0, len(t.Rows))
	for i, row := range t.Rows {
		c := models.Course{
			ID:           t.Value(row, id),
			Title:        t.Value(row, title),
			Provider:     t.Value(row, provider),
			Level:        t.Value(row, level),
			SkillsGained: skills.ParseList(t.Value(row, gained), sep),
		}
		if c.ID == "" {
			c.ID = "course-" + strconv.Itoa(i+1)
		}
		out = append(out, c)
	}
	return out
}

// parseFloat reads a number, tolerating a trailing percent sign. Invalid or
// empty values are 0.
func parseFloat(s string) float64 {
	s = strings.TrimSuffix(strings.TrimSpace(s), "%")
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

// splitNames splits a list of course names, keeping their spelling.
func splitNames(text, sep string) []string {
	if sep == "" {
		sep = skills.DefaultSeparator
	}
	out := []string{}
	for _, part := range strings.Split(text, sep) {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
