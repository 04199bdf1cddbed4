// Package cluster groups the student population and builds a similarity
// network over standardized student features.
package cluster

// Config controls feature projection, k-means and profiling.
type Config struct {
	Clusters             int     `yaml:"clusters"`              // default: 7
	Seed                 int64   `yaml:"seed"`                  // default: 42
	Restarts             int     `yaml:"restarts"`              // default: 10
	MaxIterations        int     `yaml:"max_iterations"`        // default: 300
	Tolerance            float64 `yaml:"tolerance"`             // default: 1e-4
	ProjectionComponents int     `yaml:"projection_components"` // default: 32
	Neighbors            int     `yaml:"neighbors"`             // default: 10
	ProfileTopSkills     int     `yaml:"profile_top_skills"`    // default: 10
	MemberSkillCap       int     `yaml:"member_skill_cap"`      // default: 5
}

// DefaultConfig returns the default clustering configuration.
func DefaultConfig() *Config {
	return &Config{
		Clusters:             7,
		Seed:                 42,
		Restarts:             10,
		MaxIterations:        300,
		Tolerance:            1e-4,
		ProjectionComponents: 32,
		Neighbors:            10,
		ProfileTopSkills:     10,
		MemberSkillCap:       5,
	}
}

// ApplyDefaults fills in zero values with defaults. Zero means unset, so
// seed 0 cannot be configured; pick any other seed.
func (c *Config) ApplyDefaults() {
	d := DefaultConfig()
	if c.Clusters == 0 {
		c.Clusters = d.Clusters
	}
	if c.Seed == 0 {
		c.Seed = d.Seed
	}
	if c.Restarts == 0 {
		c.Restarts = d.Restarts
	}
	if c.MaxIterations == 0 {
		c.MaxIterations = d.MaxIterations
	}
	if c.Tolerance == 0 {
		c.Tolerance = d.Tolerance
	}
	if c.ProjectionComponents == 0 {
		c.ProjectionComponents = d.ProjectionComponents
	}
	if c.Neighbors == 0 {
		c.Neighbors = d.Neighbors
	}
	if c.ProfileTopSkills == 0 {
		c.ProfileTopSkills = d.ProfileTopSkills
	}
	if c.MemberSkillCap == 0 {
		c.MemberSkillCap = d.MemberSkillCap
	}
}
