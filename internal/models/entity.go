// Package models defines the records the matching engine consumes and produces.
package models

// Student is a normalized student record produced by the ingestion adapter.
type Student struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Department       string   `json:"department"`
	GPA              float64  `json:"gpa"`
	Attendance       float64  `json:"attendance"`
	FailedCourses    int      `json:"failed_courses"`
	CompletedCourses []string `json:"completed_courses"`
	// Skills is the merged, normalized union of all skill columns.
	Skills []string `json:"skills"`
	// PredictedCareer is the downstream classifier's label; empty when unknown.
	PredictedCareer  string  `json:"predicted_career,omitempty"`
	CareerConfidence float64 `json:"career_confidence,omitempty"`
}

// Job is a normalized job posting.
type Job struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Company        string   `json:"company"`
	Location       string   `json:"location"`
	Department     string   `json:"department"`
	Level          string   `json:"level"`
	RequiredSkills []string `json:"required_skills"`
}

// Course is a normalized course catalog entry.
type Course struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Provider     string   `json:"provider"`
	Level        string   `json:"level"`
	SkillsGained []string `json:"skills_gained"`
}
