package models

import "time"

// JobMatch is one candidate job for a student, denormalized for consumers.
type JobMatch struct {
	JobID           string  `json:"job_id"`
	Title           string  `json:"job_title"`
	Company         string  `json:"company"`
	Location        string  `json:"location"`
	Department      string  `json:"department"`
	Level           string  `json:"job_level"`
	Score           float64 `json:"similarity_score"`
	MatchPercentage float64 `json:"match_percentage"`
}

// PrioritySkill is a missing skill weighted by how many top-matched jobs require it.
type PrioritySkill struct {
	Skill         string  `json:"skill"`
	PriorityScore float64 `json:"priority_score"`
	JobFrequency  int     `json:"appears_in_jobs"`
}

// SkillGapProfile summarizes what a student lacks relative to their best job matches.
// MissingSkills and MatchingSkills are disjoint and sorted.
type SkillGapProfile struct {
	StudentID      string          `json:"student_id"`
	CurrentSkills  []string        `json:"current_skills"`
	MissingSkills  []string        `json:"missing_skills"`
	MatchingSkills []string        `json:"matching_skills"`
	PrioritySkills []PrioritySkill `json:"priority_skills"`
}

// TopPriority returns the highest priority score, or 0 when nothing is missing.
func (p *SkillGapProfile) TopPriority() float64 {
	if p == nil || len(p.PrioritySkills) == 0 {
		return 0
	}
	return p.PrioritySkills[0].PriorityScore
}

// CourseRecommendation is a scored course suggestion with its score components.
type CourseRecommendation struct {
	CourseID      string   `json:"course_id"`
	Title         string   `json:"course_name"`
	Provider      string   `json:"provider"`
	Level         string   `json:"level"`
	Score         float64  `json:"score"`
	Similarity    float64  `json:"similarity"`
	Coverage      float64  `json:"coverage"`
	LevelFit      float64  `json:"level_fit"`
	CoveredSkills []string `json:"covers_skills"`
}

// ProjectSuggestion is a template-generated project idea.
type ProjectSuggestion struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Difficulty    string   `json:"difficulty"`
	SkillsCovered []string `json:"skills_covered"`
}

// InternshipCandidate is an entry-level role ranked by similarity to the student.
type InternshipCandidate struct {
	JobID    string  `json:"job_id"`
	Company  string  `json:"company"`
	Role     string  `json:"role"`
	Location string  `json:"location"`
	Match    float64 `json:"match"`
}

// SkillRecommendation is one of the student's top-priority skills to learn.
type SkillRecommendation struct {
	Skill    string  `json:"skill"`
	Priority float64 `json:"priority"`
}

// Focus groups the next learning steps derived from a gap profile.
type Focus struct {
	Immediate   []string `json:"immediate_focus"`
	Secondary   []string `json:"secondary_skills"`
	CareerPaths []string `json:"career_paths"`
}

// StudentResult is everything the engine computes for one student in a run.
type StudentResult struct {
	StudentID         string                 `json:"student_id"`
	StudentName       string                 `json:"student_name"`
	Department        string                 `json:"department"`
	Career            string                 `json:"career"`
	CareerConfidence  float64                `json:"career_confidence"`
	TargetJob         string                 `json:"target_job"`
	Comment           string                 `json:"comment"`
	JobMatches        []JobMatch             `json:"best_job_matches"`
	Gap               SkillGapProfile        `json:"skill_gaps"`
	Focus             Focus                  `json:"recommendations"`
	Skills            []SkillRecommendation  `json:"recommended_skills"`
	Courses           []CourseRecommendation `json:"recommended_courses"`
	Projects          []ProjectSuggestion    `json:"recommended_projects"`
	Internships       []InternshipCandidate  `json:"recommended_internships"`
	Cluster           *ClusterAssignment     `json:"cluster,omitempty"`
	SimilarStudentIDs []string               `json:"similar_students"`
}

// ClusterAssignment is a student's group membership.
type ClusterAssignment struct {
	StudentID string `json:"student_id"`
	ClusterID int    `json:"cluster_id"`
	Label     string `json:"cluster_label"`
}

// ClusterProfile summarizes one cluster's members.
type ClusterProfile struct {
	ClusterID        int      `json:"cluster_id"`
	Label            string   `json:"career_label"`
	MemberCount      int      `json:"member_count"`
	AvgGPA           float64  `json:"avg_gpa"`
	AvgAttendance    float64  `json:"avg_attendance"`
	TopMissingSkills []string `json:"top_missing_skills"`
	Members          []string `json:"members"`
}

// SimilarityEdge lists the students most similar to StudentID, best first.
type SimilarityEdge struct {
	StudentID string   `json:"student_id"`
	Similar   []string `json:"similar_students"`
}

// ClusterQuality holds diagnostic clustering scores. They never gate a run.
type ClusterQuality struct {
	Silhouette    float64 `json:"silhouette"`
	DaviesBouldin float64 `json:"davies_bouldin"`
	Inertia       float64 `json:"inertia"`
}

// SkillCount is a skill with an occurrence count.
type SkillCount struct {
	Skill string `json:"skill"`
	Count int    `json:"count"`
}

// DepartmentStats aggregates students of one department.
type DepartmentStats struct {
	Department         string  `json:"department"`
	Students           int     `json:"students"`
	AvgMatchPercentage float64 `json:"avg_match_percentage"`
}

// PopulationSummary holds run-wide statistics.
type PopulationSummary struct {
	TotalStudents       int               `json:"total_students"`
	AvgSkillsPerStudent float64           `json:"average_skills_per_student"`
	AvgMissingSkills    float64           `json:"average_missing_skills"`
	AvgMatchingSkills   float64           `json:"average_matching_skills"`
	TopMissingSkills    []SkillCount      `json:"top_missing_skills"`
	Departments         []DepartmentStats `json:"departments"`
}

// RunResult is the complete output of one batch run.
type RunResult struct {
	ID          string              `json:"id"`
	StartedAt   time.Time           `json:"started_at"`
	FinishedAt  time.Time           `json:"finished_at"`
	Seed        int64               `json:"seed"`
	Students    []StudentResult     `json:"students"`
	Assignments []ClusterAssignment `json:"cluster_assignments"`
	Clusters    []ClusterProfile    `json:"cluster_profiles"`
	Network     []SimilarityEdge    `json:"similarity_network"`
	Quality     ClusterQuality      `json:"quality"`
	Summary     PopulationSummary   `json:"summary"`
}

// RunInfo is the stored header of a run, without per-student payloads.
type RunInfo struct {
	ID         string            `json:"id"`
	StartedAt  time.Time         `json:"started_at"`
	FinishedAt time.Time         `json:"finished_at"`
	Seed       int64             `json:"seed"`
	Students   int               `json:"students"`
	Clusters   int               `json:"clusters"`
	Quality    ClusterQuality    `json:"quality"`
	Summary    PopulationSummary `json:"summary"`
}
