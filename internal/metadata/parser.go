// Package metadata parses authored exercise documents (Markdown files or
// text extracted from Word documents) into a sequence of ExerciseMetadata
// records. Parsing is lenient: malformed input degrades to fewer records,
// never to an error.
package metadata

import (
	"regexp"
	"strings"

	"github.com/onlyyou-coaching/catalog-sync/internal/extract"
	"github.com/onlyyou-coaching/catalog-sync/internal/types"
)

// field identifies which record attribute a recognized label populates.
type field int

const (
	fieldNone field = iota
	fieldRegion
	fieldTargetedMuscles
	fieldStartingPosition
	fieldMovement
	fieldIntensity
	fieldSeries
	fieldConstraints
	fieldTheme
)

// labelFields maps normalized label text to the record field it populates.
// Keys are matched after accent folding, so "Région", "region" and "RÉGION"
// all resolve identically.
var labelFields = map[string]field{
	"region":             fieldRegion,
	"muscle cible":       fieldTargetedMuscles,
	"muscles cibles":     fieldTargetedMuscles,
	"position depart":    fieldStartingPosition,
	"position de depart": fieldStartingPosition,
	"mouvement":          fieldMovement,
	"intensite":          fieldIntensity,
	"serie":              fieldSeries,
	"series":             fieldSeries,
	"contre indication":  fieldConstraints,
	"contre indications": fieldConstraints,
	"contrainte":         fieldConstraints,
	"contraintes":        fieldConstraints,
	"theme":              fieldTheme,
}

var (
	markdownHeading = regexp.MustCompile(`^#{1,6}\s+(.+)$`)
	boldHeading     = regexp.MustCompile(`^\*\*(\d+(?:\.\d+)?\.?\s*.+?)\*\*$`)
	// bareHeading requires the index to end in a dot or closing paren
	// ("3. Squat", "7) Fente", "10.1 Rowing") so that prose lines starting
	// with a bare count ("3 séries de 10") are not mistaken for headings.
	bareHeading  = regexp.MustCompile(`^(?:\d+\.\d+|\d+[.)])\.?\s+\S.*$`)
	bulletPrefix = regexp.MustCompile(`^[-*•]\s+`)
)

// Parse converts a metadata document into its ordered exercise records.
// Record order reflects authored order. Documents with no recognizable
// headings yield an empty slice; labels appearing before the first heading
// are ignored.
func Parse(documentText string) []types.ExerciseMetadata {
	var records []types.ExerciseMetadata
	var current *types.ExerciseMetadata

	// Continuation target for multi-line label values.
	open := fieldNone

	flush := func() {
		if current != nil && current.Title != "" {
			records = append(records, *current)
		}
		current = nil
	}

	for _, raw := range strings.Split(documentText, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if title, index, ok := headingText(line); ok {
			flush()
			current = &types.ExerciseMetadata{Title: title, NumericIndex: index}
			open = fieldNone
			continue
		}

		if current == nil {
			continue
		}

		stripped := bulletPrefix.ReplaceAllString(line, "")
		if f, value, ok := labelValue(stripped); ok {
			// Last-wins within one record: a repeated label overwrites.
			setField(current, f, value)
			open = f
			continue
		}

		if open != fieldNone {
			appendContinuation(current, open, strings.Trim(stripped, "* "))
		}
	}
	flush()

	return records
}

// headingText reports whether a line opens a new exercise record and
// returns the display title (leading numeric marker stripped) along with
// the numeric index carried by the heading, when present.
func headingText(line string) (string, *float64, bool) {
	text := ""
	switch {
	case markdownHeading.MatchString(line):
		text = markdownHeading.FindStringSubmatch(line)[1]
	case boldHeading.MatchString(line):
		text = boldHeading.FindStringSubmatch(line)[1]
	default:
		// A bare numbered line ("3. Squat avec barre") is a heading as long
		// as it does not carry a recognized label.
		if !bareHeading.MatchString(line) {
			return "", nil, false
		}
		if _, _, ok := labelValue(line); ok {
			return "", nil, false
		}
		text = line
	}

	text = strings.Trim(strings.TrimSpace(text), "*")
	var index *float64
	if n, ok := extract.NumericIndex(text); ok {
		index = &n
	}
	title := extract.CleanDisplayTitle(text, []string{})
	if title == "" {
		return "", nil, false
	}
	return title, index, true
}

// labelValue splits a "label : value" line and resolves the label against
// the recognized set. Unrecognized labels report false and are treated as
// prose by the caller.
func labelValue(line string) (field, string, bool) {
	cleaned := strings.Trim(line, "* ")
	i := strings.IndexByte(cleaned, ':')
	if i < 0 {
		return fieldNone, "", false
	}
	label := extract.NormalizeTitle(cleaned[:i])
	f, ok := labelFields[label]
	if !ok {
		return fieldNone, "", false
	}
	value := strings.TrimSpace(strings.Trim(strings.TrimSpace(cleaned[i+1:]), "*"))
	return f, value, true
}

func setField(rec *types.ExerciseMetadata, f field, value string) {
	switch f {
	case fieldRegion:
		rec.Region = value
	case fieldTargetedMuscles:
		rec.TargetedMuscles = splitMuscles(value)
	case fieldStartingPosition:
		rec.StartingPosition = value
	case fieldMovement:
		rec.Movement = value
	case fieldIntensity:
		rec.Intensity = value
	case fieldSeries:
		rec.Series = value
	case fieldConstraints:
		rec.Constraints = value
	case fieldTheme:
		rec.Theme = value
	}
}

// appendContinuation joins a value's continuation line to the open field
// with a newline separator so authored line structure is preserved.
func appendContinuation(rec *types.ExerciseMetadata, f field, line string) {
	if line == "" {
		return
	}
	join := func(existing string) string {
		if existing == "" {
			return line
		}
		return existing + "\n" + line
	}
	switch f {
	case fieldRegion:
		rec.Region = join(rec.Region)
	case fieldTargetedMuscles:
		rec.TargetedMuscles = append(rec.TargetedMuscles, splitMuscles(line)...)
	case fieldStartingPosition:
		rec.StartingPosition = join(rec.StartingPosition)
	case fieldMovement:
		rec.Movement = join(rec.Movement)
	case fieldIntensity:
		rec.Intensity = join(rec.Intensity)
	case fieldSeries:
		rec.Series = join(rec.Series)
	case fieldConstraints:
		rec.Constraints = join(rec.Constraints)
	case fieldTheme:
		rec.Theme = join(rec.Theme)
	}
}

func splitMuscles(value string) []string {
	var muscles []string
	for _, part := range strings.FieldsFunc(value, func(r rune) bool {
		return r == ',' || r == ';'
	}) {
		m := strings.TrimSpace(strings.Trim(strings.TrimSpace(part), "*"))
		if m != "" {
			muscles = append(muscles, m)
		}
	}
	return muscles
}
