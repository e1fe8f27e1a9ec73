package match

import (
	"time"

	"github.com/onlyyou-coaching/catalog-sync/internal/types"
)

// ApplyDiffs writes a decision's proposed field values onto an in-memory
// video record and refreshes its update timestamp. The catalog layer
// performs the same mapping against the database row; this in-memory form
// backs dry-run previews and the idempotence guarantee's tests.
func ApplyDiffs(video *types.VideoRecord, diffs map[string]any) {
	if len(diffs) == 0 {
		return
	}
	for field, value := range diffs {
		switch field {
		case types.FieldStartingPosition:
			video.StartingPosition = value.(string)
		case types.FieldMovement:
			video.Movement = value.(string)
		case types.FieldIntensity:
			video.Intensity = value.(string)
		case types.FieldSeries:
			video.Series = value.(string)
		case types.FieldConstraints:
			video.Constraints = value.(string)
		case types.FieldTheme:
			video.Theme = value.(string)
		case types.FieldRegion:
			video.Region = value.(string)
		case types.FieldDifficulty:
			video.Difficulty = value.(string)
		case types.FieldTargetedMuscles:
			video.TargetedMuscles = append([]string(nil), value.([]string)...)
		}
	}
	video.UpdatedAt = time.Now()
}
