package types

import "strings"

// Difficulty is the canonical difficulty vocabulary enforced by the
// videos_new CHECK constraint. Input variants (accented spellings, English
// labels) are folded to these values at the boundary via ParseDifficulty.
type Difficulty string

// Canonical difficulty levels.
const (
	DifficultyBeginner     Difficulty = "debutant"
	DifficultyIntermediate Difficulty = "intermediaire"
	DifficultyAdvanced     Difficulty = "avance"
	// DifficultyUndetermined marks rows whose metadata was withheld after an
	// equipment conflict and awaits manual review.
	DifficultyUndetermined Difficulty = "indéfini"
)

var difficultyAliases = map[string]Difficulty{
	"debutant":      DifficultyBeginner,
	"débutant":      DifficultyBeginner,
	"beginner":      DifficultyBeginner,
	"intermediaire": DifficultyIntermediate,
	"intermédiaire": DifficultyIntermediate,
	"intermediate":  DifficultyIntermediate,
	"tout niveau":   DifficultyIntermediate,
	"avance":        DifficultyAdvanced,
	"avancé":        DifficultyAdvanced,
	"advanced":      DifficultyAdvanced,
	"indéfini":      DifficultyUndetermined,
	"indefini":      DifficultyUndetermined,
	"undefined":     DifficultyUndetermined,
}

// ParseDifficulty canonicalizes a raw difficulty value. The second return
// is false when the value is not part of the accepted vocabulary.
func ParseDifficulty(s string) (Difficulty, bool) {
	d, ok := difficultyAliases[strings.ToLower(strings.TrimSpace(s))]
	return d, ok
}

// DifficultyFromIntensity derives a difficulty level from the free-text
// intensity field of an authored metadata record. Unrecognized or empty
// intensities default to intermediate, matching how the catalog was
// originally populated.
func DifficultyFromIntensity(intensity string) Difficulty {
	lower := strings.ToLower(intensity)
	switch {
	case strings.Contains(lower, "débutant") || strings.Contains(lower, "debutant") || strings.Contains(lower, "niveau 1"):
		return DifficultyBeginner
	// Mixed values like "Intermédiaire à avancé" stay intermediate.
	case strings.Contains(lower, "intermédiaire") || strings.Contains(lower, "intermediaire") ||
		strings.Contains(lower, "tout niveau"):
		return DifficultyIntermediate
	case strings.Contains(lower, "avancé") || strings.Contains(lower, "avance") ||
		strings.Contains(lower, "niveau 2") || strings.Contains(lower, "niveau 3"):
		return DifficultyAdvanced
	default:
		return DifficultyIntermediate
	}
}
