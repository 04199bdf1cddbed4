package ranking

// RankingConfig holds all configuration for recommendation scoring.
type RankingConfig struct {
	// Weights for course scoring components
	SimilarityWeight float64 `yaml:"similarity_weight"` // default: 0.60
	CoverageWeight   float64 `yaml:"coverage_weight"`   // default: 0.30
	LevelWeight      float64 `yaml:"level_weight"`      // default: 0.10

	// Course selection
	CoursesPerProvider int      `yaml:"courses_per_provider"` // default: 5
	Providers          []string `yaml:"providers"`            // default: every provider in the catalog

	// Internships
	InternshipLimit    int      `yaml:"internship_limit"`     // default: 5
	EntryLevelKeywords []string `yaml:"entry_level_keywords"` // default: intern, junior, trainee, fresh

	// Projects and skills
	ProjectSkillLimit     int    `yaml:"project_skill_limit"`     // default: 3
	RecommendedSkillLimit int    `yaml:"recommended_skill_limit"` // default: 10
	DefaultTargetJob      string `yaml:"default_target_job"`      // default: Cloud Engineer
}

// DefaultRankingConfig returns the default ranking configuration.
func DefaultRankingConfig() *RankingConfig {
	return &RankingConfig{
		// Weights
		SimilarityWeight: 0.60,
		CoverageWeight:   0.30,
		LevelWeight:      0.10,

		// Courses
		CoursesPerProvider: 5,

		// Internships
		InternshipLimit:    5,
		EntryLevelKeywords: []string{"intern", "junior", "trainee", "fresh"},

		// Projects and skills
		ProjectSkillLimit:     3,
		RecommendedSkillLimit: 10,
		DefaultTargetJob:      "Cloud Engineer",
	}
}

// ApplyDefaults fills in zero values with defaults. Zero means unset, so a
// component cannot be switched off with weight 0; use a tiny weight instead.
func (c *RankingConfig) ApplyDefaults() {
	defaults := DefaultRankingConfig()

	if c.SimilarityWeight == 0 {
		c.SimilarityWeight = defaults.SimilarityWeight
	}
	if c.CoverageWeight == 0 {
		c.CoverageWeight = defaults.CoverageWeight
	}
	if c.LevelWeight == 0 {
		c.LevelWeight = defaults.LevelWeight
	}

	if c.CoursesPerProvider == 0 {
		c.CoursesPerProvider = defaults.CoursesPerProvider
	}

	if c.InternshipLimit == 0 {
		c.InternshipLimit = defaults.InternshipLimit
	}
	if len(c.EntryLevelKeywords) == 0 {
		c.EntryLevelKeywords = defaults.EntryLevelKeywords
	}

	if c.ProjectSkillLimit == 0 {
		c.ProjectSkillLimit = defaults.ProjectSkillLimit
	}
	if c.RecommendedSkillLimit == 0 {
		c.RecommendedSkillLimit = defaults.RecommendedSkillLimit
	}
	if c.DefaultTargetJob == "" {
		c.DefaultTargetJob = defaults.DefaultTargetJob
	}
}
