package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		input string
		want  Difficulty
		ok    bool
	}{
		{"debutant", DifficultyBeginner, true},
		{"Débutant", DifficultyBeginner, true},
		{"beginner", DifficultyBeginner, true},
		{"intermédiaire", DifficultyIntermediate, true},
		{"tout niveau", DifficultyIntermediate, true},
		{"  avancé  ", DifficultyAdvanced, true},
		{"advanced", DifficultyAdvanced, true},
		{"indefini", DifficultyUndetermined, true},
		{"expert", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseDifficulty(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDifficultyFromIntensity(t *testing.T) {
	tests := []struct {
		intensity string
		want      Difficulty
	}{
		{"Débutant", DifficultyBeginner},
		{"niveau 1", DifficultyBeginner},
		{"Avancé, charge lourde", DifficultyAdvanced},
		{"Niveau 2 à 3", DifficultyAdvanced},
		{"Intermédiaire à avancé", DifficultyIntermediate},
		{"Tout niveau, avancé possible", DifficultyIntermediate},
		{"modérée", DifficultyIntermediate},
		{"", DifficultyIntermediate},
	}

	for _, tt := range tests {
		t.Run(tt.intensity, func(t *testing.T) {
			assert.Equal(t, tt.want, DifficultyFromIntensity(tt.intensity))
		})
	}
}

func TestMatchDecisionHasDiffs(t *testing.T) {
	var empty MatchDecision
	assert.False(t, empty.HasDiffs())

	noDiffs := MatchDecision{FieldDiffs: map[string]any{}}
	assert.False(t, noDiffs.HasDiffs())

	withDiffs := MatchDecision{FieldDiffs: map[string]any{FieldMovement: "gainage"}}
	assert.True(t, withDiffs.HasDiffs())
}
