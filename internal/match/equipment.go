package match

import (
	"strings"

	"github.com/onlyyou-coaching/catalog-sync/internal/extract"
)

// Equipment is the fixed vocabulary of equipment types recognized in video
// titles and authored metadata text. The list is deliberately centralized
// here; both conflict detection and reporting read from it.
type Equipment string

// Recognized equipment types.
const (
	EquipmentPulley   Equipment = "poulie"
	EquipmentBarbell  Equipment = "barre"
	EquipmentDumbbell Equipment = "haltère"
	EquipmentBand     Equipment = "élastique"
	EquipmentMachine  Equipment = "machine"
)

// equipmentKeywords maps each equipment type to the normalized keywords
// that assert it. Keywords are matched on whole words of the normalized
// text.
var equipmentKeywords = []struct {
	equipment Equipment
	keywords  []string
}{
	{EquipmentPulley, []string{"poulie", "poulies", "cable", "cables"}},
	{EquipmentBarbell, []string{"barre", "barres"}},
	{EquipmentDumbbell, []string{"haltere", "halteres"}},
	{EquipmentBand, []string{"elastique", "elastiques", "bande", "bandes"}},
	{EquipmentMachine, []string{"machine", "machines"}},
}

// DetectEquipment returns the set of equipment types asserted by a piece of
// free text, in vocabulary order. "Barre au sol" is a floor-work position,
// not a barbell, and does not assert equipment.
func DetectEquipment(text string) []Equipment {
	norm := extract.NormalizeTitle(text)
	if norm == "" {
		return nil
	}
	padded := " " + norm + " "

	var found []Equipment
	for _, entry := range equipmentKeywords {
		for _, kw := range entry.keywords {
			if !strings.Contains(padded, " "+kw+" ") {
				continue
			}
			if entry.equipment == EquipmentBarbell && strings.Contains(padded, " barre au sol ") {
				break
			}
			found = append(found, entry.equipment)
			break
		}
	}
	return found
}

// equipmentOverlap reports whether two asserted equipment sets share at
// least one type.
func equipmentOverlap(a, b []Equipment) bool {
	for _, ea := range a {
		for _, eb := range b {
			if ea == eb {
				return true
			}
		}
	}
	return false
}

func equipmentNames(es []Equipment) string {
	names := make([]string, len(es))
	for i, e := range es {
		names[i] = string(e)
	}
	return strings.Join(names, "/")
}
