package ranking

import "strings"

// Level fit values. Unknown levels score like Beginner.
const (
	BeginnerFit     = 0.5
	IntermediateFit = 0.8
	AdvancedFit     = 1.0
	DefaultLevelFit = BeginnerFit
)

// LevelFit maps a course level to its fit score.
func LevelFit(level string) float64 {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "beginner":
		return BeginnerFit
	case "intermediate":
		return IntermediateFit
	case "advanced":
		return AdvancedFit
	default:
		return DefaultLevelFit
	}
}
