package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const abdosDocument = `### 1. Crunch classique
- Région : abdominaux
- Intensité : debutant
### 2. Gainage planche
- Région : abdominaux
- Intensité : intermediaire
`

func TestParseBasicDocument(t *testing.T) {
	records := Parse(abdosDocument)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, "Crunch classique", first.Title)
	require.NotNil(t, first.NumericIndex)
	assert.InDelta(t, 1, *first.NumericIndex, 1e-9)
	assert.Equal(t, "abdominaux", first.Region)
	assert.Equal(t, "debutant", first.Intensity)

	second := records[1]
	assert.Equal(t, "Gainage planche", second.Title)
	require.NotNil(t, second.NumericIndex)
	assert.InDelta(t, 2, *second.NumericIndex, 1e-9)
	assert.Equal(t, "intermediaire", second.Intensity)
}

func TestParseFullRecord(t *testing.T) {
	doc := `**3. Extension triceps poulie haute**
**Muscles ciblés** : triceps, avant-bras
Position départ :
Debout face à la poulie haute
pieds largeur de hanches
Mouvement :
Tendre les bras vers le bas
Intensité : intermediaire
Série : 3 x 12
Contre-indication : douleurs au coude
Thème : renforcement
`
	records := Parse(doc)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, "Extension triceps poulie haute", rec.Title)
	require.NotNil(t, rec.NumericIndex)
	assert.InDelta(t, 3, *rec.NumericIndex, 1e-9)
	assert.Equal(t, []string{"triceps", "avant-bras"}, rec.TargetedMuscles)
	assert.Equal(t, "Debout face à la poulie haute\npieds largeur de hanches", rec.StartingPosition)
	assert.Equal(t, "Tendre les bras vers le bas", rec.Movement)
	assert.Equal(t, "intermediaire", rec.Intensity)
	assert.Equal(t, "3 x 12", rec.Series)
	assert.Equal(t, "douleurs au coude", rec.Constraints)
	assert.Equal(t, "renforcement", rec.Theme)
}

func TestParseDecimalIndexHeading(t *testing.T) {
	doc := `10.1 Rowing poulie basse
Mouvement : tirer la barre vers soi
10.2 Rowing unilatéral
Mouvement : tirer avec un seul bras
`
	records := Parse(doc)
	require.Len(t, records, 2)
	require.NotNil(t, records[0].NumericIndex)
	assert.InDelta(t, 10.1, *records[0].NumericIndex, 1e-9)
	assert.Equal(t, "Rowing poulie basse", records[0].Title)
	require.NotNil(t, records[1].NumericIndex)
	assert.InDelta(t, 10.2, *records[1].NumericIndex, 1e-9)
}

func TestParseLastLabelWins(t *testing.T) {
	doc := `### 1. Crunch classique
Intensité : debutant
Intensité : avance
`
	records := Parse(doc)
	require.Len(t, records, 1)
	assert.Equal(t, "avance", records[0].Intensity)
}

func TestParseEmptyAndNoise(t *testing.T) {
	assert.Empty(t, Parse(""))
	assert.Empty(t, Parse("du texte libre\nsans aucune structure\n"))

	// Labels before any heading have no accumulator and are dropped.
	records := Parse("Intensité : debutant\n### 1. Crunch classique\n")
	require.Len(t, records, 1)
	assert.Empty(t, records[0].Intensity)
}

func TestParseProseDoesNotStartHeading(t *testing.T) {
	doc := `### 1. Crunch classique
Série :
3 séries de 10 répétitions
avec 30 secondes de repos
`
	records := Parse(doc)
	require.Len(t, records, 1)
	assert.Equal(t, "3 séries de 10 répétitions\navec 30 secondes de repos", records[0].Series)
}

func TestParseAccentedLabelAliases(t *testing.T) {
	doc := `### 2. Gainage planche
- RÉGION : abdos
- Muscle cible : transverse
- Contrainte : aucune
`
	records := Parse(doc)
	require.Len(t, records, 1)
	assert.Equal(t, "abdos", records[0].Region)
	assert.Equal(t, []string{"transverse"}, records[0].TargetedMuscles)
	assert.Equal(t, "aucune", records[0].Constraints)
}

func TestParseBoldHeadingAndValues(t *testing.T) {
	doc := `**5. Squat sumo**
**Intensité** : **avancé**
`
	records := Parse(doc)
	require.Len(t, records, 1)
	assert.Equal(t, "Squat sumo", records[0].Title)
	assert.Equal(t, "avancé", records[0].Intensity)
}
